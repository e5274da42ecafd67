package models

import (
	"sort"
	"time"
)

// TestResult represents the outcome of executing a single test case once
type TestResult struct {
	TestCase TestCase `json:"testCase"`

	// Response details
	Status     int   `json:"status"`
	OK         bool  `json:"ok"`
	Response   any   `json:"response"`
	DurationMS int64 `json:"duration"`

	// Transport failure, empty when a response was received
	Error string `json:"error,omitempty"`

	// Differences against TestCase.ExpectedResponse. Informational only, OK ignores them.
	Mismatches []ValidationError `json:"mismatches,omitempty"`
}

// Duration returns the elapsed time as a time.Duration
func (r TestResult) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// ValidationError represents a specific difference between expected and actual response
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// LatencyStats summarizes request durations of a run
type LatencyStats struct {
	Min time.Duration `json:"min_ns"`
	Max time.Duration `json:"max_ns"`
	Avg time.Duration `json:"avg_ns"`
	P50 time.Duration `json:"p50_ns"`
	P90 time.Duration `json:"p90_ns"`
	P99 time.Duration `json:"p99_ns"`
}

// TestSummary represents the overall test results of one run
type TestSummary struct {
	TotalTests int          `json:"total_tests"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Results    []TestResult `json:"results"`
	Latency    LatencyStats `json:"latency"`
}

// AddResult adds a test result to the summary
func (s *TestSummary) AddResult(result TestResult) {
	s.TotalTests++
	s.Results = append(s.Results, result)
	if result.OK {
		s.Passed++
	} else {
		s.Failed++
	}
}

// AllPassed reports whether every executed test passed
func (s *TestSummary) AllPassed() bool {
	return s.Failed == 0
}

// Finalize calculates latency statistics over responses that were actually received
func (s *TestSummary) Finalize() {
	var durations []time.Duration
	for _, r := range s.Results {
		if r.Error != "" {
			continue
		}
		durations = append(durations, r.Duration())
	}
	s.Latency = NewLatencyStats(durations)
}

// NewLatencyStats computes min, max, mean and percentiles. The input is sorted in place.
func NewLatencyStats(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}

	sort.Slice(durations, func(i, j int) bool {
		return durations[i] < durations[j]
	})

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	return LatencyStats{
		Min: durations[0],
		Max: durations[len(durations)-1],
		Avg: total / time.Duration(len(durations)),
		P50: percentile(durations, 50),
		P90: percentile(durations, 90),
		P99: percentile(durations, 99),
	}
}

// percentile calculates the p-th percentile from sorted durations
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	index := float64(len(sorted)-1) * float64(p) / 100.0
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[lower]
	}

	// Linear interpolation
	weight := index - float64(lower)
	return time.Duration(float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight)
}
