/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/parser"
)

var showKey string

// endpointsCmd represents the endpoints command
var endpointsCmd = &cobra.Command{
	Use:   "endpoints [openapi-spec]",
	Short: "List the endpoints of a spec grouped by tag",
	Long: `List the endpoints of an OpenAPI spec file or imported spec id, grouped by tag.

Each endpoint is printed with its key (METHOD:path), which is what generate --select
expects. Use --show KEY to print the details and a sample request body of one endpoint.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := loadSpec(args[0])
		if err != nil {
			exitf("parsing OpenAPI spec: %v", err)
		}

		if showKey != "" {
			showOperation(p, showKey)
			return
		}

		title, version := p.Info()
		if title != "" {
			fmt.Printf("%s %s\n", white(title), version)
		}
		if baseURL := p.BaseURL(); baseURL != "" {
			fmt.Printf("Server: %s\n", cyan(baseURL))
		}
		fmt.Println()

		groups := parser.GroupByTag(p.Operations())
		if len(groups) == 0 {
			fmt.Println("No endpoints found")
			return
		}

		for _, g := range groups {
			fmt.Printf("%s (%d)\n", white(g.Tag), len(g.Operations))
			for _, op := range g.Operations {
				fmt.Printf("  %-8s %-40s %s\n", op.Method, op.Path, yellow(op.Key()))
				if op.Summary != "" {
					fmt.Printf("           %s\n", op.Summary)
				}
			}
			fmt.Println()
		}
	},
}

func showOperation(p *parser.Parser, key string) {
	method, path, ok := strings.Cut(key, ":")
	if !ok {
		exitf("invalid endpoint key '%s': expected METHOD:path", key)
	}

	op, err := p.Operation(method, path)
	if err != nil {
		exitf("%v", err)
	}

	fmt.Printf("%s %s\n", white(op.Method), white(op.Path))
	if op.Summary != "" {
		fmt.Printf("Summary:     %s\n", op.Summary)
	}
	if op.Description != "" {
		fmt.Printf("Description: %s\n", op.Description)
	}
	if op.OperationID != "" {
		fmt.Printf("Operation:   %s\n", op.OperationID)
	}
	fmt.Printf("Tags:        %s\n", strings.Join(op.Tags, ", "))
	fmt.Printf("Expected:    %d\n", parser.ExpectedStatus(op.Responses))

	if len(op.Parameters) > 0 {
		fmt.Println("Parameters:")
		synth := newSynthesizer()
		for _, param := range op.Parameters {
			if param == nil {
				continue
			}
			sample, _ := synth.ParameterValue(param)
			required := ""
			if param.Required != nil && *param.Required {
				required = " (required)"
			}
			fmt.Printf("  %-6s %s%s = %s\n", param.In, param.Name, required, yellow(sample))
		}
	}

	printSampleBody(op)
}

func printSampleBody(op models.Operation) {
	if op.RequestBody == nil {
		return
	}

	body, err := json.MarshalIndent(newSynthesizer().RequestBody(op.RequestBody), "", "  ")
	if err != nil {
		exitf("rendering sample body: %v", err)
	}
	fmt.Println("Sample body:")
	fmt.Println(string(body))
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.Flags().StringVar(&showKey, "show", "", "Show details of one endpoint (METHOD:path)")
}
