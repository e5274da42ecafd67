package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/moamenhredeen/oastester/internal/models"
)

// Format represents the output format type
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatSummary Format = "summary"
)

// SummaryEntry is the condensed per-test record written by WriteSummary
type SummaryEntry struct {
	Test     string `json:"test"`
	Status   int    `json:"status"`
	Passed   bool   `json:"passed"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// DefaultExportName returns the file name used when no export path is given
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("api-test-results-%s.json", now.Format("2006-01-02"))
}

// ExportTestSummary exports test results to the specified format. An empty path writes to stdout.
func ExportTestSummary(summary models.TestSummary, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return WriteResults(w, summary.Results)
	case FormatSummary:
		return WriteSummary(w, summary.Results)
	case FormatCSV:
		return WriteCSV(w, summary.Results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// WriteResults writes the full results as an indented JSON array
func WriteResults(w io.Writer, results []models.TestResult) error {
	if results == nil {
		results = []models.TestResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// Summarize condenses results into one entry per test
func Summarize(results []models.TestResult) []SummaryEntry {
	entries := make([]SummaryEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, SummaryEntry{
			Test:     r.TestCase.Name,
			Status:   r.Status,
			Passed:   r.OK,
			Duration: fmt.Sprintf("%dms", r.DurationMS),
			Error:    r.Error,
		})
	}
	return entries
}

// WriteSummary writes the condensed summary as an indented JSON array
func WriteSummary(w io.Writer, results []models.TestResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summarize(results))
}

// WriteCSV writes one row per result
func WriteCSV(w io.Writer, results []models.TestResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{
		"name", "method", "endpoint", "expected_status", "status",
		"passed", "duration_ms", "error",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	// Write rows
	for _, r := range results {
		row := []string{
			r.TestCase.Name,
			r.TestCase.Method,
			r.TestCase.Endpoint,
			strconv.Itoa(r.TestCase.ExpectedStatus),
			strconv.Itoa(r.Status),
			strconv.FormatBool(r.OK),
			strconv.FormatInt(r.DurationMS, 10),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "summary":
		return FormatSummary, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json', 'csv' or 'summary'", s)
	}
}
