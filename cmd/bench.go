/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/benchmarker"
	"github.com/moamenhredeen/oastester/internal/composer"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/output"
)

var (
	// Benchmark-specific flags
	benchIterations   int
	benchConcurrency  int
	benchWarmup       int
	benchOutputFormat string
	benchOutputFile   string
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench [test-cases-file]",
	Short: "Benchmark test cases",
	Long: `Benchmark test cases by executing each one repeatedly and measuring response times.

Each case runs a number of warmup iterations that are discarded, then the measured
iterations spread over concurrent workers. Latency percentiles (p50, p90, p99),
requests per second and error rates are reported per case. Use --rate to cap the
request rate.

Examples:
  # 100 iterations per case
  oastester bench cases.json --base-url http://localhost:8080

  # High-load benchmark with concurrency
  oastester bench cases.json --base-url http://localhost:8080 -n 1000 -c 10

  # Export results to CSV
  oastester bench cases.json --base-url http://localhost:8080 --output csv --output-file bench.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func runBench(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitf("failed to read test cases: %v", err)
	}
	cases, err := composer.ParseTestCases(data)
	if err != nil {
		exitf("%v", err)
	}

	baseURL := resolveBaseURL(nil)
	if baseURL == "" {
		exitf("no base URL: pass --base-url or set base_url in the config")
	}

	token, err := resolveToken(tokenID)
	if err != nil {
		exitf("failed to load token: %v", err)
	}

	config := benchmarker.Config{
		Iterations:  benchIterations,
		Concurrency: benchConcurrency,
		WarmupRuns:  benchWarmup,
	}

	// Print benchmark info
	fmt.Printf("\n%s\n", white("=== Benchmark Configuration ==="))
	fmt.Printf("Test cases:  %d\n", len(cases))
	fmt.Printf("Iterations:  %d per case\n", config.Iterations)
	fmt.Printf("Concurrency: %d\n", config.Concurrency)
	fmt.Printf("Warmup:      %d iterations\n", config.WarmupRuns)
	if cfg.Rate > 0 {
		fmt.Printf("Rate Limit:  %.0f req/sec\n", cfg.Rate)
	}
	fmt.Printf("Timeout:     %v\n", cfg.Timeout)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var s *spinner.Spinner
	onEvent := func(event benchmarker.BenchmarkEvent) {
		prefix := fmt.Sprintf("[%d/%d]", event.Index+1, event.Total)
		tc := event.TestCase

		switch event.Type {
		case benchmarker.EventBenchmarkStarting:
			if isTTY {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = fmt.Sprintf(" %s %s %s - Benchmarking 0/%d...", prefix, tc.Method, tc.Endpoint, event.MaxIter)
				s.Start()
			} else {
				fmt.Printf("%s %s %s - Running benchmark (%d iterations)...\n", prefix, tc.Method, tc.Endpoint, event.MaxIter)
			}

		case benchmarker.EventBenchmarkProgress:
			if s != nil {
				s.Suffix = fmt.Sprintf(" %s %s %s - %d/%d", prefix, tc.Method, tc.Endpoint, event.Progress, event.MaxIter)
			}

		case benchmarker.EventBenchmarkCompleted:
			if s != nil {
				s.Stop()
				s = nil
			}
			printBenchResult(prefix, event.Result)
		}
	}

	bench := benchmarker.NewBenchmarker(newEngine(), config)
	results := bench.BenchmarkCases(ctx, cases, baseURL, token, onEvent)

	if benchOutputFormat != "" {
		format, err := output.ParseFormat(benchOutputFormat)
		if err != nil {
			exitf("%v", err)
		}
		if err := output.ExportBenchmark(results, format, benchOutputFile); err != nil {
			exitf("exporting results: %v", err)
		}
		if benchOutputFile == "" {
			return
		}
		fmt.Printf("\nResults exported to: %s\n", benchOutputFile)
	}

	displayBenchmarkSummary(results)
}

func printBenchResult(prefix string, result *models.BenchmarkResult) {
	// Status indicator based on error rate
	var status string
	switch {
	case result.Failed == 0:
		status = green("✓")
	case result.ErrorRate < 5:
		status = yellow("●")
	default:
		status = red("✗")
	}

	tc := result.TestCase
	fmt.Printf("%s %s %s %s\n", prefix, status, tc.Method, tc.Endpoint)
	fmt.Printf("    %s avg: %s | p99: %s | %.1f req/s | passed: %d/%d | errors: %d (%.1f%%)\n",
		cyan("→"),
		msString(result.Latency.Avg), msString(result.Latency.P99), result.RequestsPerSec,
		result.Passed, result.Passed+result.Failed, result.ErrorCount, result.ErrorRate)

	if !verbose {
		return
	}

	fmt.Printf("    Latency:  min=%s | p50=%s | p90=%s | max=%s\n",
		msString(result.Latency.Min), msString(result.Latency.P50),
		msString(result.Latency.P90), msString(result.Latency.Max))
	fmt.Printf("    Duration: %v\n", result.TotalDuration.Round(time.Millisecond))

	if len(result.StatusCodes) > 0 {
		codes := make([]int, 0, len(result.StatusCodes))
		for code := range result.StatusCodes {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		parts := make([]string, 0, len(codes))
		for _, code := range codes {
			parts = append(parts, fmt.Sprintf("%d:%d", code, result.StatusCodes[code]))
		}
		fmt.Printf("    Status codes: %s\n", strings.Join(parts, ", "))
	}

	if len(result.SampleErrors) > 0 {
		fmt.Printf("    Sample errors:\n")
		for _, e := range result.SampleErrors {
			fmt.Printf("      - %s\n", red(e))
		}
	}
}

func msString(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

func displayBenchmarkSummary(results []models.BenchmarkResult) {
	fmt.Println()
	fmt.Printf("%s\n", white("=== Benchmark Summary ==="))
	fmt.Printf("%-8s %-40s %10s %10s %10s %10s\n",
		"METHOD", "ENDPOINT", "AVG(ms)", "P99(ms)", "REQ/S", "ERR%")
	fmt.Println(strings.Repeat("-", 90))

	for _, r := range results {
		endpoint := r.TestCase.Endpoint
		if len(endpoint) > 38 {
			endpoint = endpoint[:35] + "..."
		}
		fmt.Printf("%-8s %-40s %10.2f %10.2f %10.1f %10.1f\n",
			r.TestCase.Method, endpoint,
			float64(r.Latency.Avg.Microseconds())/1000,
			float64(r.Latency.P99.Microseconds())/1000,
			r.RequestsPerSec,
			r.ErrorRate)
	}
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVar(&tokenID, "token", "", "ID of a stored auth token to send")
	benchCmd.Flags().IntVarP(&benchIterations, "iterations", "n", 100, "Number of requests per test case")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 1, "Number of concurrent requests")
	benchCmd.Flags().IntVarP(&benchWarmup, "warmup", "w", 5, "Number of warmup iterations (discarded from stats)")

	// Output flags
	benchCmd.Flags().StringVar(&benchOutputFormat, "output", "", "Output format: json, csv")
	benchCmd.Flags().StringVar(&benchOutputFile, "output-file", "", "Write output to file (default: stdout)")
}
