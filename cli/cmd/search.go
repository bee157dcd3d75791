/*-------------------------------------------------------------------------
 *
 * search.go
 *    Semantic search command for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/search.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"strings"

	"github.com/neurondb/ApprovalHub/cli/pkg/client"
	"github.com/spf13/cobra"
)

var (
	searchSource   string
	searchApprover string
	searchStatus   string
	searchMinSim   float64
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Semantic search over enriched requests",
	Long: `Search approval requests by meaning rather than exact keywords.

The query text is embedded and compared against stored request
embeddings. Requests that have not been enriched yet are not
searchable.

Examples:
  approvalhub-cli search "travel expenses for conferences"
  approvalhub-cli search --status pending --min-similarity 0.7 "time off for medical reasons"
`,
	Args: cobra.MinimumNArgs(1),
	RunE: searchRequests,
}

func init() {
	searchCmd.Flags().StringVar(&searchSource, "source", "", "Filter by source system")
	searchCmd.Flags().StringVar(&searchApprover, "approver", "", "Filter by approver identifier")
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "Filter by status")
	searchCmd.Flags().Float64Var(&searchMinSim, "min-similarity", 0, "Minimum cosine similarity threshold")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of matches")
}

func searchRequests(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	apiClient := client.NewClient(apiURL)

	opts := client.SearchOptions{
		Source:     searchSource,
		ApproverID: searchApprover,
		Status:     searchStatus,
		Limit:      searchLimit,
	}
	if cmd.Flags().Changed("min-similarity") {
		opts.MinSimilarity = &searchMinSim
	}

	matches, err := apiClient.Search(query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No matching requests found")
		return nil
	}

	fmt.Printf("\n🔍 Matches for %q:\n", query)
	fmt.Println("─────────────────────────────────────────────────────────")
	for _, match := range matches {
		fmt.Printf("  %.3f  %-36s %-10s %s\n", match.Similarity, match.ID, match.Source, match.RequesterName)
		if match.AISummary != "" {
			fmt.Printf("         %s\n", match.AISummary)
		}
	}
	fmt.Println()

	return nil
}
