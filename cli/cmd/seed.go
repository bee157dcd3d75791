/*-------------------------------------------------------------------------
 *
 * seed.go
 *    Sample data seeding command for approvalhub-cli
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/cli/cmd/seed.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"

	"github.com/neurondb/ApprovalHub/cli/pkg/client"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed sample approval requests for demos",
	RunE:  seedRequests,
}

func seedRequests(cmd *cobra.Command, args []string) error {
	apiClient := client.NewClient(apiURL)

	samples := []client.CreateInput{
		{
			Source:            "workday",
			RequesterName:     "Jane Smith",
			ApproverID:        "mgr-100",
			JustificationText: "Requesting 5 days of PTO in June for a family wedding out of state",
			Metadata:          map[string]interface{}{"days": 5, "type": "vacation"},
		},
		{
			Source:            "workday",
			RequesterName:     "Carlos Ruiz",
			ApproverID:        "mgr-100",
			JustificationText: "Two days off next week for a medical procedure and recovery",
			Metadata:          map[string]interface{}{"days": 2, "type": "sick"},
		},
		{
			Source:            "concur",
			RequesterName:     "Bob Lee",
			ApproverID:        "fin-7",
			JustificationText: "Expense report for AWS re:Invent conference travel, flights and hotel for 4 nights",
			Metadata:          map[string]interface{}{"amount": 2300.50, "currency": "USD"},
		},
		{
			Source:            "concur",
			RequesterName:     "Priya Patel",
			ApproverID:        "fin-7",
			JustificationText: "Team dinner with the client after closing the renewal, 8 attendees",
			Metadata:          map[string]interface{}{"amount": 640.00, "currency": "USD"},
		},
		{
			Source:            "salesforce",
			RequesterName:     "Dana Kim",
			ApproverID:        "vp-sales-2",
			JustificationText: "Requesting a 25% discount for Acme Corp renewal, competitor is undercutting on price",
			Metadata:          map[string]interface{}{"discount_pct": 25, "account": "Acme Corp"},
		},
		{
			Source:            "salesforce",
			RequesterName:     "Miguel Torres",
			ApproverID:        "vp-sales-2",
			JustificationText: "Non-standard 36 month contract term for Globex with annual true-up clause",
			Metadata:          map[string]interface{}{"term_months": 36, "account": "Globex"},
		},
	}

	fmt.Printf("🌱 Seeding %d sample requests\n", len(samples))
	created := 0
	for _, sample := range samples {
		req, err := apiClient.CreateRequest(&sample)
		if err != nil {
			fmt.Printf("  ⚠️  %s / %s: %v\n", sample.Source, sample.RequesterName, err)
			continue
		}
		fmt.Printf("  ✅ %s  %-10s %s\n", req.ID, req.Source, req.RequesterName)
		created++
	}

	fmt.Printf("Done: %d/%d requests created\n", created, len(samples))
	return nil
}
