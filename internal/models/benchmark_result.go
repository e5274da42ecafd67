package models

import "time"

// BenchmarkResult holds the repeated-execution statistics of one test case
type BenchmarkResult struct {
	TestCase    TestCase `json:"testCase"`
	Iterations  int      `json:"iterations"`
	Concurrency int      `json:"concurrency"`
	WarmupRuns  int      `json:"warmup_runs"`

	Latency LatencyStats `json:"latency"`

	// Throughput
	TotalDuration  time.Duration `json:"total_duration_ns"`
	RequestsPerSec float64       `json:"requests_per_sec"`

	// Outcomes
	Passed       int         `json:"passed"`
	Failed       int         `json:"failed"`
	ErrorCount   int         `json:"error_count"`
	ErrorRate    float64     `json:"error_rate"`
	StatusCodes  map[int]int `json:"status_codes"`
	SampleErrors []string    `json:"sample_errors,omitempty"`
}
