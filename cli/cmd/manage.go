/*-------------------------------------------------------------------------
 *
 * manage.go
 *    Request management commands for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/manage.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"

	"github.com/neurondb/ApprovalHub/cli/pkg/client"
	"github.com/spf13/cobra"
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List approval requests",
		RunE:  listRequests,
	}

	showCmd = &cobra.Command{
		Use:   "show [request-id]",
		Short: "Show approval request details",
		Args:  cobra.ExactArgs(1),
		RunE:  showRequest,
	}

	listSource    string
	listApprover  string
	listStatus    string
	listRequester string
	listLimit     int
	listOffset    int
)

func init() {
	listCmd.Flags().StringVar(&listSource, "source", "", "Filter by source system")
	listCmd.Flags().StringVar(&listApprover, "approver", "", "Filter by approver identifier")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, approved, rejected)")
	listCmd.Flags().StringVar(&listRequester, "requester", "", "Filter by requester name (partial match)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Result offset for pagination")
}

func listRequests(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(apiURL)

	requests, err := apiClient.ListRequests(client.ListOptions{
		Source:        listSource,
		ApproverID:    listApprover,
		Status:        listStatus,
		RequesterName: listRequester,
		Limit:         listLimit,
		Offset:        listOffset,
	})
	if err != nil {
		return fmt.Errorf("failed to list requests: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(requests)
	}

	if len(requests) == 0 {
		fmt.Println("No approval requests found")
		return nil
	}

	fmt.Println("\n📋 Approval Requests:")
	fmt.Println("─────────────────────────────────────────────────────────")
	for _, req := range requests {
		fmt.Printf("  %-36s %-10s %-9s %s\n", req.ID, req.Source, req.Status, req.RequesterName)
		if req.AISummary != "" {
			fmt.Printf("    %s\n", req.AISummary)
		}
		if req.RiskScore != nil {
			fmt.Printf("    Risk: %.1f/10\n", *req.RiskScore)
		}
	}
	fmt.Println()

	return nil
}

func showRequest(cmd *cobra.Command, args []string) error {
	requestID := args[0]
	apiClient := client.NewClient(apiURL)

	req, err := apiClient.GetRequest(requestID)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(req)
	}

	fmt.Printf("\n📋 Approval Request: %s\n", req.ID)
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Printf("Source: %s\n", req.Source)
	fmt.Printf("Requester: %s\n", req.RequesterName)
	fmt.Printf("Approver: %s\n", req.ApproverID)
	fmt.Printf("Status: %s\n", req.Status)
	if req.JustificationText != "" {
		fmt.Printf("Justification: %s\n", req.JustificationText)
	}
	if req.AISummary != "" {
		fmt.Printf("AI Summary: %s\n", req.AISummary)
	}
	if req.RiskScore != nil {
		fmt.Printf("Risk Score: %.1f/10\n", *req.RiskScore)
	}
	fmt.Printf("Searchable: %v\n", req.HasEmbedding)
	if req.DecidedBy != "" {
		fmt.Printf("Decided By: %s at %s\n", req.DecidedBy, req.DecidedAt)
	}
	if len(req.Metadata) > 0 {
		fmt.Printf("Metadata: %+v\n", req.Metadata)
	}
	fmt.Printf("Created: %s\n", req.CreatedAt)
	fmt.Println()

	return nil
}
