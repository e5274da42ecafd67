/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/composer"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/parser"
)

var (
	filter string
	tags   []string
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test [openapi-spec]",
	Short: "Test the APIs",
	Long: `Test the APIs described by an OpenAPI spec file or imported spec id.

A test case is composed for every matching endpoint and executed against the
base URL (default: the first server declared in the spec).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := loadSpec(args[0])
		if err != nil {
			exitf("parsing OpenAPI spec: %v", err)
		}

		baseURL := resolveBaseURL(p)
		if baseURL == "" {
			exitf("no base URL: the spec declares no servers, pass --base-url")
		}

		filtered := filterOperations(p.Operations(), filter, tags)
		if len(filtered) == 0 {
			fmt.Println("No operations found matching the criteria")
			return
		}

		groups := parser.GroupByTag(filtered)
		c := composer.NewComposer(
			composer.WithSynthesizer(newSynthesizer()),
			composer.WithPathParams(true),
		)
		cases := c.FromSelectedEndpoints(groups, composer.SelectAll(groups))

		runAndReport(cases, baseURL)
	},
}

func filterOperations(operations []models.Operation, filterStr string, tagFilters []string) []models.Operation {
	filtered := []models.Operation{}

	for _, op := range operations {
		// Filter by path pattern or operation ID
		if filterStr != "" {
			if !strings.Contains(op.Path, filterStr) && !strings.Contains(op.OperationID, filterStr) {
				continue
			}
		}

		// Filter by tags
		if len(tagFilters) > 0 && !slices.ContainsFunc(op.Tags, func(tag string) bool {
			return slices.Contains(tagFilters, tag)
		}) {
			continue
		}

		filtered = append(filtered, op)
	}

	return filtered
}

func init() {
	rootCmd.AddCommand(testCmd)
	addRunFlags(testCmd)

	testCmd.Flags().StringVar(&filter, "filter", "", "Filter endpoints by path pattern or operation ID")
	testCmd.Flags().StringSliceVar(&tags, "tags", []string{}, "Filter by OpenAPI tags (can be specified multiple times)")
}
