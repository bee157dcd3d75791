/*-------------------------------------------------------------------------
 *
 * types.go
 *    API request and response types for ApprovalHub
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/api/types.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/neurondb/ApprovalHub/internal/approval"
)

type CreateRequestRequest struct {
	Source            string                 `json:"request_source"`
	RequesterName     string                 `json:"requester_name"`
	ApproverID        string                 `json:"approver_id"`
	JustificationText string                 `json:"justification_text,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

type DecideRequestRequest struct {
	DeciderID string `json:"decider_id"`
	Decision  string `json:"decision"`
}

type SemanticSearchRequest struct {
	Query         string   `json:"query"`
	Source        string   `json:"request_source,omitempty"`
	ApproverID    string   `json:"approver_id,omitempty"`
	Status        string   `json:"status,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

/* RequestResponse is the external view of an approval request. The raw
 * embedding vector is never exposed, only its presence. */
type RequestResponse struct {
	ID                uuid.UUID              `json:"id"`
	Source            string                 `json:"request_source"`
	RequesterName     string                 `json:"requester_name"`
	ApproverID        string                 `json:"approver_id"`
	Status            string                 `json:"status"`
	JustificationText *string                `json:"justification_text,omitempty"`
	Metadata          map[string]interface{} `json:"metadata"`
	AISummary         *string                `json:"ai_summary,omitempty"`
	RiskScore         *float64               `json:"risk_score,omitempty"`
	HasEmbedding      bool                   `json:"has_embedding"`
	DecidedBy         *string                `json:"decided_by,omitempty"`
	DecidedAt         *time.Time             `json:"decided_at,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
	Count    int               `json:"count"`
}

type SearchMatchResponse struct {
	RequestResponse
	Similarity float64 `json:"similarity"`
}

type SemanticSearchResponse struct {
	Matches []SearchMatchResponse `json:"matches"`
	Count   int                   `json:"count"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version"`
}

func toRequestResponse(r *approval.ApprovalRequest) RequestResponse {
	metadata := make(map[string]interface{})
	if r.Metadata != nil {
		metadata = r.Metadata
	}

	var summary *string
	if s, ok := r.Metadata.Summary(); ok {
		summary = &s
	}
	var riskScore *float64
	if score, ok := r.Metadata.RiskScore(); ok {
		riskScore = &score
	}

	return RequestResponse{
		ID:                r.ID,
		Source:            string(r.Source),
		RequesterName:     r.RequesterName,
		ApproverID:        r.ApproverID,
		Status:            string(r.Status),
		JustificationText: r.JustificationText,
		Metadata:          metadata,
		AISummary:         summary,
		RiskScore:         riskScore,
		HasEmbedding:      r.HasEmbedding(),
		DecidedBy:         r.DecidedBy,
		DecidedAt:         r.DecidedAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toSearchMatchResponse(m *approval.SimilarityMatch) SearchMatchResponse {
	return SearchMatchResponse{
		RequestResponse: toRequestResponse(&m.ApprovalRequest),
		Similarity:      m.Similarity,
	}
}
