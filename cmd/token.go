/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moamenhredeen/oastester/internal/auth"
	"github.com/moamenhredeen/oastester/internal/models"
)

var (
	tokenName        string
	tokenSecret      string
	tokenType        string
	tokenDescription string
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage stored auth tokens",
	Long: `Manage the auth tokens that run and test can send with --token ID.

Bearer tokens are sent as "Authorization: Bearer <token>", API keys as
"X-API-Key: <token>" and Basic credentials as "Authorization: Basic <token>".
Basic credentials are sent as stored and must already be base64-encoded.`,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tokens",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tokens, err := auth.NewTokenStore(openStore()).List()
		if err != nil {
			exitf("listing tokens: %v", err)
		}
		if len(tokens) == 0 {
			fmt.Println("No tokens stored")
			return
		}

		fmt.Printf("%-16s %-20s %-8s %-20s %s\n", "ID", "NAME", "TYPE", "CREATED", "DESCRIPTION")
		for _, tok := range tokens {
			fmt.Printf("%-16s %-20s %-8s %-20s %s\n",
				tok.ID, tok.Name, tok.Kind, tok.CreatedAt.Local().Format("2006-01-02 15:04"), tok.Description)
		}
	},
}

var tokenAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := models.ParseTokenKind(tokenType)
		if err != nil {
			exitf("%v", err)
		}

		tok, err := auth.NewTokenStore(openStore()).Add(tokenName, tokenSecret, kind, tokenDescription)
		if err != nil {
			exitf("adding token: %v", err)
		}
		fmt.Printf("Token %s stored with ID %s\n", green(tok.Name), cyan(tok.ID))
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a stored token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := auth.NewTokenStore(openStore()).Delete(args[0]); err != nil {
			exitf("deleting token: %v", err)
		}
		fmt.Printf("Token %s deleted\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenListCmd, tokenAddCmd, tokenDeleteCmd)

	tokenAddCmd.Flags().StringVar(&tokenName, "name", "", "Token name")
	tokenAddCmd.Flags().StringVar(&tokenSecret, "secret", "", "Token value")
	tokenAddCmd.Flags().StringVar(&tokenType, "type", "Bearer", "Token type: Bearer, ApiKey, Basic")
	tokenAddCmd.Flags().StringVar(&tokenDescription, "description", "", "Optional description")
}
