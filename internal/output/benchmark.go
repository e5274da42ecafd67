package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/moamenhredeen/oastester/internal/models"
)

// ExportBenchmark exports benchmark results as JSON or CSV. An empty path writes to stdout.
func ExportBenchmark(results []models.BenchmarkResult, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		if results == nil {
			results = []models.BenchmarkResult{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatCSV:
		return writeBenchmarkCSV(w, results)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Microseconds())/1000)
}

func writeBenchmarkCSV(w io.Writer, results []models.BenchmarkResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"name", "method", "endpoint", "iterations", "concurrency",
		"min_ms", "max_ms", "avg_ms", "p50_ms", "p90_ms", "p99_ms",
		"requests_per_sec", "passed", "failed", "error_count", "error_rate",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.TestCase.Name,
			r.TestCase.Method,
			r.TestCase.Endpoint,
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.Concurrency),
			ms(r.Latency.Min),
			ms(r.Latency.Max),
			ms(r.Latency.Avg),
			ms(r.Latency.P50),
			ms(r.Latency.P90),
			ms(r.Latency.P99),
			fmt.Sprintf("%.2f", r.RequestsPerSec),
			strconv.Itoa(r.Passed),
			strconv.Itoa(r.Failed),
			strconv.Itoa(r.ErrorCount),
			fmt.Sprintf("%.2f", r.ErrorRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
