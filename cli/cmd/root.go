/*-------------------------------------------------------------------------
 *
 * root.go
 *    Root command and global flags for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/root.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL       string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "approvalhub-cli",
	Short: "ApprovalHub CLI - Submit, decide, and search approval requests",
	Long: `ApprovalHub CLI provides commands for working with the approval request service.

Features:
  - Submit approval requests from any source system
  - Approve or reject pending requests
  - List and inspect requests with filters
  - Semantic search over enriched requests
  - Seed sample requests for demos

Examples:
  # Submit a request
  approvalhub-cli create --source workday --requester "Jane Smith" --approver mgr-100 \
    --justification "Requesting PTO for a family wedding"

  # List pending requests for an approver
  approvalhub-cli list --approver mgr-100 --status pending

  # Approve a request
  approvalhub-cli approve <request-id> --decider mgr-100

  # Search semantically
  approvalhub-cli search "travel expenses for conferences"

  # Seed sample data
  approvalhub-cli seed
`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", getEnvOrDefault("APPROVALHUB_URL", "http://localhost:8080"), "ApprovalHub API URL")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")

	// Add all subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(seedCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
