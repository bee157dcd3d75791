/*-------------------------------------------------------------------------
 *
 * create.go
 *    Request submission command for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/create.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/neurondb/ApprovalHub/cli/pkg/client"
	"github.com/spf13/cobra"
)

var (
	createSource        string
	createRequester     string
	createApprover      string
	createJustification string
	createMetadata      string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new approval request",
	Long: `Submit a new approval request to ApprovalHub.

Examples:
  # PTO request from Workday
  approvalhub-cli create --source workday --requester "Jane Smith" --approver mgr-100 \
    --justification "Requesting 5 days PTO for a family wedding in June"

  # Expense report from Concur with structured metadata
  approvalhub-cli create --source concur --requester "Bob Lee" --approver fin-7 \
    --justification "Conference travel to re:Invent" \
    --metadata '{"amount": 2300.50, "currency": "USD"}'
`,
	RunE: createRequest,
}

func init() {
	createCmd.Flags().StringVarP(&createSource, "source", "s", "", "Source system (workday, concur, salesforce)")
	createCmd.Flags().StringVarP(&createRequester, "requester", "r", "", "Requester display name")
	createCmd.Flags().StringVarP(&createApprover, "approver", "a", "", "Approver identifier")
	createCmd.Flags().StringVarP(&createJustification, "justification", "j", "", "Free-text justification (drives AI enrichment)")
	createCmd.Flags().StringVarP(&createMetadata, "metadata", "m", "", "Request metadata as a JSON object")
	createCmd.MarkFlagRequired("source")
	createCmd.MarkFlagRequired("requester")
	createCmd.MarkFlagRequired("approver")
}

func createRequest(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(apiURL)

	input := &client.CreateInput{
		Source:            createSource,
		RequesterName:     createRequester,
		ApproverID:        createApprover,
		JustificationText: createJustification,
	}

	if createMetadata != "" {
		var metadata map[string]interface{}
		if err := json.Unmarshal([]byte(createMetadata), &metadata); err != nil {
			return fmt.Errorf("failed to parse metadata JSON: %w", err)
		}
		input.Metadata = metadata
	}

	fmt.Printf("🚀 Submitting approval request from %s\n", createSource)
	req, err := apiClient.CreateRequest(input)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(req)
	}

	fmt.Printf("✅ Request created!\n")
	fmt.Printf("ID: %s\n", req.ID)
	fmt.Printf("Status: %s\n", req.Status)
	fmt.Printf("Approver: %s\n", req.ApproverID)
	if req.JustificationText != "" {
		fmt.Println("AI enrichment queued; summary and risk score will appear shortly")
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
