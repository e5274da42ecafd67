package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryAddResult(t *testing.T) {
	var s TestSummary
	s.AddResult(TestResult{OK: true, Status: 200})
	s.AddResult(TestResult{OK: false, Status: 0, Error: "connection refused"})
	s.AddResult(TestResult{OK: false, Status: 500})

	assert.Equal(t, 3, s.TotalTests)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 2, s.Failed)
	assert.False(t, s.AllPassed())
	assert.Len(t, s.Results, 3)
}

func TestSummaryFinalizeSkipsTransportErrors(t *testing.T) {
	var s TestSummary
	s.AddResult(TestResult{DurationMS: 10, OK: true})
	s.AddResult(TestResult{DurationMS: 30, OK: true})
	s.AddResult(TestResult{DurationMS: 20})
	s.AddResult(TestResult{DurationMS: 5000, Error: "timeout"})
	s.Finalize()

	assert.Equal(t, 10*time.Millisecond, s.Latency.Min)
	assert.Equal(t, 30*time.Millisecond, s.Latency.Max)
	assert.Equal(t, 20*time.Millisecond, s.Latency.Avg)
	assert.Equal(t, 20*time.Millisecond, s.Latency.P50)
}

func TestSummaryFinalizeEmpty(t *testing.T) {
	var s TestSummary
	s.Finalize()
	assert.Equal(t, LatencyStats{}, s.Latency)
	assert.True(t, s.AllPassed())
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5}
	assert.Equal(t, time.Duration(1), percentile(sorted, 0))
	assert.Equal(t, time.Duration(5), percentile(sorted, 100))
	assert.Equal(t, time.Duration(3), percentile(sorted, 50))
	assert.Equal(t, time.Duration(0), percentile(nil, 50))
}

func TestParseTokenKind(t *testing.T) {
	for in, want := range map[string]TokenKind{
		"Bearer":  TokenBearer,
		"API Key": TokenAPIKey,
		"apikey":  TokenAPIKey,
		"basic":   TokenBasic,
	} {
		got, err := ParseTokenKind(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTokenKind("digest")
	assert.Error(t, err)
}

func TestEndpointKey(t *testing.T) {
	op := Operation{Method: "GET", Path: "/users/{id}"}
	assert.Equal(t, "GET:/users/{id}", op.Key())
}
