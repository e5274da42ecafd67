/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/composer"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/output"
	"github.com/moamenhredeen/oastester/internal/tester"
)

var (
	tokenID      string
	exportFile   string
	exportFormat string
	saveResults  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [test-cases-file]",
	Short: "Run test cases from a JSON file",
	Long: `Run test cases from a JSON file holding a single test case or an array of them.

Examples:
  # Run generated test cases against a local server
  oastester run cases.json --base-url http://localhost:8080

  # Authenticate with a stored token and save a condensed summary
  oastester run cases.json --base-url http://localhost:8080 --token 1718000000000 --save --format summary`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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
			exitf("no base URL: pass --base-url or set %s in the config", "base_url")
		}

		runAndReport(cases, baseURL)
	},
}

// runAndReport executes cases, exports and prints the results, and exits 1 on failure
func runAndReport(cases []models.TestCase, baseURL string) {
	token, err := resolveToken(tokenID)
	if err != nil {
		exitf("failed to load token: %v", err)
	}

	if len(cases) == 0 {
		fmt.Println("No test cases to run")
		return
	}

	fmt.Printf("Running %d tests against %s\n\n", len(cases), cyan(baseURL))
	summary := runCases(cases, baseURL, token)

	if err := exportResults(summary); err != nil {
		exitf("failed to export results: %v", err)
	}

	displayResults(summary, baseURL, token)

	// Exit with error code if any tests failed
	if !summary.AllPassed() {
		os.Exit(1)
	}
}

func runCases(cases []models.TestCase, baseURL string, token *models.AuthToken) models.TestSummary {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var s *spinner.Spinner
	onEvent := func(event tester.TestEvent) {
		prefix := fmt.Sprintf("[%d/%d]", event.Index+1, event.Total)
		tc := event.TestCase

		switch event.Type {
		case tester.EventStarting:
			if isTTY {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				s.Suffix = fmt.Sprintf(" %s %s %s", prefix, tc.Method, tc.Endpoint)
				s.Start()
			}

		case tester.EventCompleted:
			if s != nil {
				s.Stop()
				s = nil
			}

			r := event.Result
			status := green("✓")
			if !r.OK {
				status = red("✗")
			}
			fmt.Printf("%s %s %s %s %s\n", prefix, status, tc.Method, tc.Endpoint,
				yellow(fmt.Sprintf("(%d, %dms)", r.Status, r.DurationMS)))
		}
	}

	return newEngine().RunAll(ctx, cases, baseURL, token, onEvent)
}

func exportResults(summary models.TestSummary) error {
	path := exportFile
	if path == "" && saveResults {
		path = output.DefaultExportName(time.Now())
	}
	if path == "" {
		return nil
	}

	format, err := output.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if err := output.ExportTestSummary(summary, format, path); err != nil {
		return err
	}
	fmt.Printf("\nResults exported to: %s\n", path)
	return nil
}

func displayResults(summary models.TestSummary, baseURL string, token *models.AuthToken) {
	fmt.Printf("\n%s\n", white("=== Test Results ==="))
	fmt.Printf("Total Tests: %d\n", summary.TotalTests)
	fmt.Printf("Passed: %s\n", green(summary.Passed))
	if summary.Failed > 0 {
		fmt.Printf("Failed: %s\n", red(summary.Failed))
	} else {
		fmt.Printf("Failed: %d\n", summary.Failed)
	}
	fmt.Println()

	if summary.AllPassed() && summary.TotalTests > 0 {
		fmt.Println(green(tester.Tally(summary)))
	} else {
		fmt.Println(red(tester.Tally(summary)))
	}

	if !verbose {
		for _, result := range summary.Results {
			if !result.OK && result.Error != "" {
				fmt.Printf("  %s %s - %s\n", result.TestCase.Method, result.TestCase.Endpoint, result.Error)
			}
		}
		return
	}

	lat := summary.Latency
	fmt.Printf("Latency: min=%v | p50=%v | p90=%v | p99=%v | max=%v\n\n",
		lat.Min, lat.P50, lat.P90, lat.P99, lat.Max)

	for _, result := range summary.Results {
		status := green("✓ PASS")
		if !result.OK {
			status = red("✗ FAIL")
		}

		tc := result.TestCase
		fmt.Printf("%s %s %s\n", status, tc.Method, tc.Endpoint)
		if tc.Name != "" {
			fmt.Printf("  Name: %s\n", tc.Name)
		}
		fmt.Printf("  Status Code: %d (expected %d)\n", result.Status, tc.ExpectedStatus)
		fmt.Printf("  Response Time: %v\n", result.Duration())

		if result.Error != "" {
			fmt.Printf("  Error: %s\n", result.Error)
		}
		if len(result.Mismatches) > 0 {
			fmt.Printf("  Response differences:\n")
			for _, m := range result.Mismatches {
				fmt.Printf("    - %s: %s\n", m.Field, m.Message)
			}
		}
		if !result.OK {
			fmt.Printf("  Reproduce: %s\n", output.CurlCommand(tc, baseURL, token))
		}
		fmt.Println()
	}
}

// addRunFlags registers the flags shared by commands that execute test cases
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tokenID, "token", "", "ID of a stored auth token to send")
	cmd.Flags().StringVar(&exportFile, "export", "", "Write results to file")
	cmd.Flags().StringVarP(&exportFormat, "format", "o", "json", "Export format: json, csv, summary")
	cmd.Flags().BoolVar(&saveResults, "save", false, "Write results to api-test-results-<date>.json when --export is not set")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}
