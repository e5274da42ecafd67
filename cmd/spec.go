/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/parser"
	"github.com/moamenhredeen/oastester/internal/store"
)

var importID string

// specCmd represents the spec command
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Manage imported OpenAPI specs",
	Long: `Import OpenAPI specs into the local store so endpoints, generate and test
can refer to them by id instead of by file path.`,
}

var specImportCmd = &cobra.Command{
	Use:   "import [openapi-spec-file]",
	Short: "Validate and store a spec",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			exitf("reading spec: %v", err)
		}

		p, err := parser.Parse(data)
		if err != nil {
			exitf("parsing OpenAPI spec: %v", err)
		}

		id := importID
		if id == "" {
			id = specID(args[0])
		}
		if err := openStore().Put(store.KindSpec, id, data); err != nil {
			exitf("storing spec: %v", err)
		}

		title, _ := p.Info()
		fmt.Printf("Imported %s as %s (%d endpoints)\n", white(title), cyan(id), len(p.Operations()))
	},
}

var specListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported specs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		blobs := openStore()
		ids, err := blobs.List(store.KindSpec)
		if err != nil {
			exitf("listing specs: %v", err)
		}
		if len(ids) == 0 {
			fmt.Println("No specs imported")
			return
		}

		for _, id := range ids {
			title, version := "", ""
			if data, err := blobs.Get(store.KindSpec, id); err == nil {
				if p, err := parser.Parse(data); err == nil {
					title, version = p.Info()
				}
			}
			fmt.Printf("%-24s %s %s\n", cyan(id), title, version)
		}
	},
}

var specDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an imported spec",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := openStore().Delete(store.KindSpec, args[0]); err != nil {
			exitf("deleting spec: %v", err)
		}
		fmt.Printf("Spec %s deleted\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(specCmd)
	specCmd.AddCommand(specImportCmd, specListCmd, specDeleteCmd)

	specImportCmd.Flags().StringVar(&importID, "id", "", "Store id (default: file name without extension)")
}
