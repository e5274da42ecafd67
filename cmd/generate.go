/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/composer"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/parser"
)

var (
	selectKeys []string
	selectAll  bool
	samples    bool
	fillParams bool
	outputFile string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [openapi-spec]",
	Short: "Generate test cases for selected endpoints",
	Long: `Generate test cases as JSON for the selected endpoints of a spec.

Examples:
  # Two endpoints
  oastester generate api.yaml --select GET:/pets --select POST:/pets

  # Every endpoint, written to a file for "oastester run"
  oastester generate api.yaml --all --output cases.json

  # Built-in example test cases, no spec needed
  oastester generate --samples`,
	Args: func(cmd *cobra.Command, args []string) error {
		if samples {
			return cobra.MaximumNArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		var cases []models.TestCase

		if samples {
			cases = composer.BuiltInSamples()
		} else {
			p, err := loadSpec(args[0])
			if err != nil {
				exitf("parsing OpenAPI spec: %v", err)
			}
			groups := parser.GroupByTag(p.Operations())

			selected, err := composer.ParseSelection(selectKeys)
			if err != nil {
				exitf("%v", err)
			}
			if selectAll {
				selected = composer.SelectAll(groups)
			}
			if len(selected) == 0 {
				exitf("no endpoints selected: pass --select METHOD:path or --all")
			}

			c := composer.NewComposer(
				composer.WithSynthesizer(newSynthesizer()),
				composer.WithPathParams(fillParams),
			)
			cases = c.FromSelectedEndpoints(groups, selected)
		}

		data, err := composer.MarshalTestCases(cases)
		if err != nil {
			exitf("encoding test cases: %v", err)
		}

		if outputFile == "" {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(outputFile, append(data, '\n'), 0o644); err != nil {
			exitf("writing test cases: %v", err)
		}
		fmt.Printf("Generated %d test cases in %s\n", len(cases), outputFile)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringArrayVar(&selectKeys, "select", nil, "Endpoint key to include (METHOD:path, repeatable)")
	generateCmd.Flags().BoolVar(&selectAll, "all", false, "Include every endpoint")
	generateCmd.Flags().BoolVar(&samples, "samples", false, "Print the built-in example test cases")
	generateCmd.Flags().BoolVar(&fillParams, "fill-params", false, "Replace path parameters with sample values")
	generateCmd.Flags().StringVar(&outputFile, "output", "", "Write test cases to file (default: stdout)")
}
