package benchmarker

import (
	"context"
	"sync"
	"time"

	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/tester"
)

// EventType represents the type of benchmark event
type EventType int

const (
	// EventBenchmarkStarting indicates a test case is about to be benchmarked
	EventBenchmarkStarting EventType = iota
	// EventBenchmarkProgress indicates benchmark progress (periodic updates)
	EventBenchmarkProgress
	// EventBenchmarkCompleted indicates benchmark completed for a test case
	EventBenchmarkCompleted
)

// BenchmarkEvent represents an event during benchmark execution
type BenchmarkEvent struct {
	Type     EventType
	TestCase models.TestCase
	Result   *models.BenchmarkResult // nil until completed
	Index    int                     // current case index (0-based)
	Total    int                     // total number of cases
	Progress int                     // completed iterations
	MaxIter  int
}

// OnBenchmarkEvent is a callback function for benchmark events
type OnBenchmarkEvent func(event BenchmarkEvent)

// Config holds benchmark configuration
type Config struct {
	Iterations  int // Number of executions per test case
	Concurrency int // Number of concurrent workers
	WarmupRuns  int // Number of warmup executions (discarded)
}

// DefaultConfig returns default benchmark configuration
func DefaultConfig() Config {
	return Config{
		Iterations:  100,
		Concurrency: 1,
		WarmupRuns:  5,
	}
}

const maxSampleErrors = 5

// Benchmarker repeats test cases through an engine and collects latency statistics
type Benchmarker struct {
	config Config
	engine *tester.Engine
}

// NewBenchmarker creates a new benchmarker instance
func NewBenchmarker(engine *tester.Engine, config Config) *Benchmarker {
	if config.Iterations < 1 {
		config.Iterations = 1
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	if config.WarmupRuns < 0 {
		config.WarmupRuns = 0
	}
	return &Benchmarker{config: config, engine: engine}
}

// BenchmarkCase executes tc Iterations times after the warmup runs
func (b *Benchmarker) BenchmarkCase(
	ctx context.Context,
	tc models.TestCase,
	baseURL string,
	token *models.AuthToken,
	onEvent OnBenchmarkEvent,
	index, total int,
) models.BenchmarkResult {
	result := models.BenchmarkResult{
		TestCase:    tc,
		Iterations:  b.config.Iterations,
		Concurrency: b.config.Concurrency,
		WarmupRuns:  b.config.WarmupRuns,
		StatusCodes: make(map[int]int),
	}

	for i := 0; i < b.config.WarmupRuns && ctx.Err() == nil; i++ {
		b.engine.RunOne(ctx, tc, baseURL, token)
	}

	if onEvent != nil {
		onEvent(BenchmarkEvent{
			Type:     EventBenchmarkStarting,
			TestCase: tc,
			Index:    index,
			Total:    total,
			MaxIter:  b.config.Iterations,
		})
	}

	start := time.Now()
	runs := b.runConcurrent(ctx, tc, baseURL, token, func(done int) {
		if onEvent != nil {
			onEvent(BenchmarkEvent{
				Type:     EventBenchmarkProgress,
				TestCase: tc,
				Index:    index,
				Total:    total,
				Progress: done,
				MaxIter:  b.config.Iterations,
			})
		}
	})
	result.TotalDuration = time.Since(start)

	result = processResults(result, runs)
	logger.L().Debug("benchmarker.case_done",
		"name", tc.Name,
		"iterations", len(runs),
		"error_rate", result.ErrorRate,
	)

	if onEvent != nil {
		onEvent(BenchmarkEvent{
			Type:     EventBenchmarkCompleted,
			TestCase: tc,
			Result:   &result,
			Index:    index,
			Total:    total,
		})
	}
	return result
}

// BenchmarkCases benchmarks each case in turn. A cancelled context stops before the next case.
func (b *Benchmarker) BenchmarkCases(
	ctx context.Context,
	cases []models.TestCase,
	baseURL string,
	token *models.AuthToken,
	onEvent OnBenchmarkEvent,
) []models.BenchmarkResult {
	results := make([]models.BenchmarkResult, 0, len(cases))
	for i, tc := range cases {
		if ctx.Err() != nil {
			break
		}
		results = append(results, b.BenchmarkCase(ctx, tc, baseURL, token, onEvent, i, len(cases)))
	}
	return results
}

// runConcurrent executes the iterations with a worker pool
func (b *Benchmarker) runConcurrent(
	ctx context.Context,
	tc models.TestCase,
	baseURL string,
	token *models.AuthToken,
	progress func(done int),
) []models.TestResult {
	results := make([]models.TestResult, b.config.Iterations)
	executed := make([]bool, b.config.Iterations)
	jobs := make(chan int, b.config.Iterations)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var completed int

	// Progress reporting interval
	progressInterval := max(1, b.config.Iterations/20) // ~5% intervals

	for w := 0; w < b.config.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}

				results[i] = b.engine.RunOne(ctx, tc, baseURL, token)

				mu.Lock()
				executed[i] = true
				completed++
				done := completed
				mu.Unlock()

				if done%progressInterval == 0 {
					progress(done)
				}
			}
		}()
	}

	for i := 0; i < b.config.Iterations; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Drop iterations skipped after cancellation
	out := make([]models.TestResult, 0, len(results))
	for i, r := range results {
		if executed[i] {
			out = append(out, r)
		}
	}
	return out
}

// processResults calculates statistics from raw results
func processResults(result models.BenchmarkResult, runs []models.TestResult) models.BenchmarkResult {
	if len(runs) == 0 {
		return result
	}

	var durations []time.Duration
	seen := make(map[string]bool)

	for _, r := range runs {
		if r.OK {
			result.Passed++
		} else {
			result.Failed++
		}

		if r.Error != "" {
			result.ErrorCount++
			if len(result.SampleErrors) < maxSampleErrors && !seen[r.Error] {
				result.SampleErrors = append(result.SampleErrors, r.Error)
				seen[r.Error] = true
			}
			continue
		}

		durations = append(durations, r.Duration())
		result.StatusCodes[r.Status]++
	}

	// Timing stats only cover requests that got a response
	result.Latency = models.NewLatencyStats(durations)

	if result.TotalDuration > 0 {
		result.RequestsPerSec = float64(len(runs)) / result.TotalDuration.Seconds()
	}
	result.ErrorRate = float64(result.ErrorCount) / float64(len(runs)) * 100

	return result
}
