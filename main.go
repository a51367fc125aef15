package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/kowhai/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kowhai",
	Short: "Kowhai - A CLI for pushing environment secrets to GitHub Actions.",
	Long: `Kowhai uploads the secrets in your .env files to GitHub Actions
repository secrets, sealed against the repository's public key so
plaintext never leaves your machine.

Features:
  - Seal and upload .env entries as Actions repository secrets
  - Sign in through GitHub's browser-based device flow; no stored tokens
  - Audit every upload and removal locally, names only

Usage:
  kowhai <command> [flags]

Available Commands:
  secrets    Manage GitHub Actions repository secrets

Run 'kowhai help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Kōwhai! Run 'kowhai --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.SecretsCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
