/*-------------------------------------------------------------------------
 *
 * decide.go
 *    Approve and reject commands for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/decide.go
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
	approveCmd = &cobra.Command{
		Use:   "approve [request-id]",
		Short: "Approve a pending request",
		Args:  cobra.ExactArgs(1),
		RunE:  approveRequest,
	}

	rejectCmd = &cobra.Command{
		Use:   "reject [request-id]",
		Short: "Reject a pending request",
		Args:  cobra.ExactArgs(1),
		RunE:  rejectRequest,
	}

	deciderID string
)

func init() {
	approveCmd.Flags().StringVarP(&deciderID, "decider", "d", "", "Approver identifier making the decision")
	approveCmd.MarkFlagRequired("decider")
	rejectCmd.Flags().StringVarP(&deciderID, "decider", "d", "", "Approver identifier making the decision")
	rejectCmd.MarkFlagRequired("decider")
}

func approveRequest(cmd *cobra.Command, args []string) error {
	return decideRequest(args[0], "approve")
}

func rejectRequest(cmd *cobra.Command, args []string) error {
	return decideRequest(args[0], "reject")
}

func decideRequest(requestID, decision string) error {
	apiClient := client.NewClient(apiURL)

	fmt.Printf("🔄 Recording %s decision for request %s\n", decision, requestID)
	req, err := apiClient.Decide(requestID, deciderID, decision)
	if err != nil {
		return fmt.Errorf("failed to %s request: %w", decision, err)
	}

	if outputFormat == "json" {
		return printJSON(req)
	}

	fmt.Printf("✅ Request %s\n", req.Status)
	fmt.Printf("ID: %s\n", req.ID)
	fmt.Printf("Decided By: %s at %s\n", req.DecidedBy, req.DecidedAt)
	return nil
}
