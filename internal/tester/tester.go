package tester

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
)

// EventType represents the type of test event
type EventType int

const (
	// EventStarting indicates a test is about to start
	EventStarting EventType = iota
	// EventCompleted indicates a test has completed
	EventCompleted
)

// TestEvent represents an event during test execution
type TestEvent struct {
	Type     EventType
	TestCase models.TestCase
	Result   *models.TestResult // nil for Starting events
	Index    int                // current test index (0-based)
	Total    int                // total number of tests
}

// OnTestEvent is a callback function for test events
type OnTestEvent func(event TestEvent)

const defaultTimeout = 30 * time.Second

// Engine executes test cases against a live API, one request at a time
type Engine struct {
	client  *http.Client
	limiter *rate.Limiter

	running atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	runSeq uint64
}

type Option func(*Engine)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.client.Timeout = timeout
		}
	}
}

// WithRate limits requests to rps per second. Zero or less disables pacing.
func WithRate(rps float64) Option {
	return func(e *Engine) {
		if rps > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			e.limiter = nil
		}
	}
}

// WithClient replaces the HTTP client
func WithClient(client *http.Client) Option {
	return func(e *Engine) {
		if client != nil {
			e.client = client
		}
	}
}

// NewEngine creates a new engine with a 30s request timeout
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		client: &http.Client{Timeout: defaultTimeout},
	}
	e.running.Store(-1)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunningIndex returns the index of the test currently executing, or -1 when idle
func (e *Engine) RunningIndex() int {
	return int(e.running.Load())
}

// RunOne executes a single test case. Transport failures are reported in the result,
// never as an error.
func (e *Engine) RunOne(ctx context.Context, tc models.TestCase, baseURL string, token *models.AuthToken) models.TestResult {
	result := models.TestResult{TestCase: tc}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			result.Error = fmt.Sprintf("request failed: %v", err)
			return result
		}
	}

	req, err := newRequest(ctx, tc, baseURL, token)
	if err != nil {
		result.Error = fmt.Sprintf("failed to build request: %v", err)
		return result
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		result.DurationMS = time.Since(start).Milliseconds()
		result.Error = fmt.Sprintf("request failed: %v", err)
		logger.L().Debug("tester.request_failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	result.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		// A response cut off mid-body counts as a transport failure
		result.Error = fmt.Sprintf("failed to read response: %v", err)
		logger.L().Debug("tester.read_failed", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "error", err)
		return result
	}

	result.Status = resp.StatusCode
	result.OK = resp.StatusCode == tc.ExpectedStatus

	result.Response = decodeBody(body)
	if tc.ExpectedResponse != nil {
		result.Mismatches = CompareResponse(tc.ExpectedResponse, result.Response)
	}

	logger.L().Debug("tester.request_done",
		"method", req.Method,
		"url", req.URL.String(),
		"status", result.Status,
		"duration_ms", result.DurationMS,
	)
	return result
}

// decodeBody returns the body as decoded JSON, or as text when it is not JSON
func decodeBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(body)
}

// RunAll executes cases in order and returns a fresh summary. Starting a new run cancels
// the one in progress: its in-flight request fails and its remaining cases never start.
func (e *Engine) RunAll(ctx context.Context, cases []models.TestCase, baseURL string, token *models.AuthToken, onEvent OnTestEvent) models.TestSummary {
	runCtx, cancel := context.WithCancel(ctx)
	seq := e.begin(cancel)
	defer e.end(seq, cancel)

	summary := models.TestSummary{
		Results: make([]models.TestResult, 0, len(cases)),
	}
	total := len(cases)

	for i, tc := range cases {
		if runCtx.Err() != nil {
			logger.L().Debug("tester.run_stopped", "run", seq, "remaining", total-i)
			break
		}
		e.setRunning(seq, i)

		if onEvent != nil {
			onEvent(TestEvent{Type: EventStarting, TestCase: tc, Index: i, Total: total})
		}

		result := e.RunOne(runCtx, tc, baseURL, token)
		summary.AddResult(result)

		if onEvent != nil {
			onEvent(TestEvent{Type: EventCompleted, TestCase: tc, Result: &result, Index: i, Total: total})
		}
	}

	summary.Finalize()
	logger.L().Info("tester.run_done", "run", seq, "message", Tally(summary))
	return summary
}

// Tally renders the pass count of a run
func Tally(summary models.TestSummary) string {
	if summary.TotalTests > 0 && summary.AllPassed() {
		return fmt.Sprintf("All %d tests passed", summary.TotalTests)
	}
	return fmt.Sprintf("%d/%d tests passed", summary.Passed, summary.TotalTests)
}

func (e *Engine) begin(cancel context.CancelFunc) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	e.runSeq++
	return e.runSeq
}

func (e *Engine) end(seq uint64, cancel context.CancelFunc) {
	cancel()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runSeq == seq {
		e.cancel = nil
		e.running.Store(-1)
	}
}

func (e *Engine) setRunning(seq uint64, i int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runSeq == seq {
		e.running.Store(int64(i))
	}
}
