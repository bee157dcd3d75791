/*-------------------------------------------------------------------------
 *
 * types.go
 *    Core domain types for ApprovalHub
 *
 * Defines the approval request entity, the closed set of source systems,
 * the status state machine values, and reviewer decisions.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/types.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

/* Source identifies the external system an approval request came from.
 * The set is closed: adding a source is a code change, not a data change. */
type Source string

const (
	SourceWorkday    Source = "workday"
	SourceConcur     Source = "concur"
	SourceSalesforce Source = "salesforce"
)

/* ParseSource parses a source tag, case-insensitively */
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "workday":
		return SourceWorkday, nil
	case "concur":
		return SourceConcur, nil
	case "salesforce":
		return SourceSalesforce, nil
	default:
		return "", NewValidationError("request_source", fmt.Sprintf("unknown source '%s' (must be one of: workday, concur, salesforce)", s))
	}
}

/* Valid reports whether the source is in the known set */
func (s Source) Valid() bool {
	switch s {
	case SourceWorkday, SourceConcur, SourceSalesforce:
		return true
	}
	return false
}

/* Label returns the human display name of the source system */
func (s Source) Label() string {
	switch s {
	case SourceWorkday:
		return "Workday"
	case SourceConcur:
		return "Concur"
	case SourceSalesforce:
		return "Salesforce"
	}
	return string(s)
}

/* Status is the lifecycle state of an approval request. The only legal
 * transitions are pending -> approved and pending -> rejected. */
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

/* Valid reports whether the status is a known lifecycle state */
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

/* Terminal reports whether the status has no outgoing transitions */
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

/* ParseStatus parses a status value, case-insensitively */
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", NewValidationError("status", fmt.Sprintf("unknown status '%s' (must be one of: pending, approved, rejected)", s))
	}
}

/* Decision is a reviewer action on a pending request */
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

/* ParseDecision parses a reviewer decision, case-insensitively */
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved":
		return DecisionApprove, nil
	case "reject", "rejected":
		return DecisionReject, nil
	default:
		return "", NewValidationError("decision", fmt.Sprintf("unknown decision '%s' (must be 'approve' or 'reject')", s))
	}
}

/* Status returns the terminal status this decision transitions to */
func (d Decision) Status() Status {
	if d == DecisionApprove {
		return StatusApproved
	}
	return StatusRejected
}

/* ApprovalRequest is the central entity: a request submitted by an external
 * system, pending a decision by exactly one authorized approver.
 *
 * Embedding is nil until enrichment succeeds; a nil embedding means the
 * request is invisible to similarity search but still visible to exact
 * filtering. It is never a zero-length placeholder. */
type ApprovalRequest struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Source            Source     `db:"request_source" json:"request_source"`
	RequesterName     string     `db:"requester_name" json:"requester_name"`
	ApproverID        string     `db:"approver_id" json:"approver_id"`
	Status            Status     `db:"status" json:"status"`
	JustificationText *string    `db:"justification_text" json:"justification_text,omitempty"`
	Metadata          Metadata   `db:"metadata" json:"metadata"`
	Embedding         *Vector    `db:"embedding" json:"-"`
	DecidedBy         *string    `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt         *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

/* EnrichmentText returns the canonical text fed to the inference service.
 * Empty means the request is not enrichable. */
func (r *ApprovalRequest) EnrichmentText() string {
	if r.JustificationText == nil {
		return ""
	}
	return strings.TrimSpace(*r.JustificationText)
}

/* HasEmbedding reports whether enrichment produced an embedding */
func (r *ApprovalRequest) HasEmbedding() bool {
	return r.Embedding != nil && len(*r.Embedding) > 0
}

/* SimilarityMatch pairs a request with its similarity to a query vector */
type SimilarityMatch struct {
	ApprovalRequest
	Similarity float64 `db:"similarity" json:"similarity"`
}

/* ListFilter selects requests by exact-match criteria. Nil fields match
 * everything. Results are most recent first. */
type ListFilter struct {
	Source        *Source
	ApproverID    *string
	Status        *Status
	RequesterName *string
	Limit         int
	Offset        int
}

/* SimilarityFilter scopes a similarity search. Requests without an
 * embedding are always excluded, not scored as zero. */
type SimilarityFilter struct {
	Source        *Source
	ApproverID    *string
	Status        *Status
	MinSimilarity *float64
	Limit         int
}
