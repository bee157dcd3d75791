/*-------------------------------------------------------------------------
 *
 * coordinator.go
 *    Lifecycle coordinator for approval requests
 *
 * Governs creation -> enrichment -> pending -> terminal. Validation and
 * authorization errors surface synchronously; enrichment scheduling and
 * notification are fire-and-forget and never fail the state change that
 * triggered them. The store's compare-and-swap is the only concurrency
 * control: exactly one decision ever wins per request.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/coordinator.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

const (
	maxRequesterNameLength = 100
	maxApproverIDLength    = 50
	maxJustificationLength = 10000
)

/* Store is the durable keyed storage for approval requests. Decide must
 * be atomic: verify approver, verify status is pending, and write the
 * terminal status in one indivisible operation. */
type Store interface {
	Create(ctx context.Context, req *ApprovalRequest) error
	Get(ctx context.Context, id uuid.UUID) (*ApprovalRequest, error)
	List(ctx context.Context, filter ListFilter) ([]ApprovalRequest, error)
	Decide(ctx context.Context, id uuid.UUID, deciderID string, decision Decision) (*ApprovalRequest, error)
}

/* Scheduler hands a request off to the asynchronous enrichment pipeline.
 * Schedule reports whether the task was accepted; a full queue is not
 * an error for the caller that created the request. */
type Scheduler interface {
	Schedule(id uuid.UUID, text string) bool
}

/* Notifier receives lifecycle events. Calls are fire-and-forget:
 * failures never roll back or retry the state change. */
type Notifier interface {
	OnCreated(ctx context.Context, req *ApprovalRequest)
	OnDecided(ctx context.Context, req *ApprovalRequest, decision Decision)
}

/* CreateInput is the raw ingestion payload for a new approval request */
type CreateInput struct {
	Source            string
	RequesterName     string
	ApproverID        string
	JustificationText string
	Metadata          Metadata
}

/* Coordinator wires the store, enrichment pipeline, and notifier */
type Coordinator struct {
	store     Store
	scheduler Scheduler
	notifier  Notifier
}

/* NewCoordinator creates a lifecycle coordinator */
func NewCoordinator(store Store, scheduler Scheduler, notifier Notifier) *Coordinator {
	return &Coordinator{
		store:     store,
		scheduler: scheduler,
		notifier:  notifier,
	}
}

/* CreateRequest validates and persists a new pending request, schedules
 * enrichment asynchronously, and notifies after successful persistence.
 * The caller gets its response before enrichment necessarily completes. */
func (c *Coordinator) CreateRequest(ctx context.Context, input CreateInput) (*ApprovalRequest, error) {
	source, err := ParseSource(input.Source)
	if err != nil {
		return nil, err
	}

	requesterName := strings.TrimSpace(input.RequesterName)
	if requesterName == "" {
		return nil, NewValidationError("requester_name", "is required and cannot be empty")
	}
	if len(requesterName) > maxRequesterNameLength {
		return nil, NewValidationError("requester_name", "exceeds maximum length")
	}

	approverID := strings.TrimSpace(input.ApproverID)
	if approverID == "" {
		return nil, NewValidationError("approver_id", "is required and cannot be empty")
	}
	if len(approverID) > maxApproverIDLength {
		return nil, NewValidationError("approver_id", "exceeds maximum length")
	}

	if len(input.JustificationText) > maxJustificationLength {
		return nil, NewValidationError("justification_text", "exceeds maximum length")
	}

	metadata := input.Metadata
	if metadata == nil {
		metadata = make(Metadata)
	} else {
		if reserved := metadata.ReservedKeys(); len(reserved) > 0 {
			return nil, NewValidationError("metadata", "reserved keys are pipeline-written and cannot be set at creation: "+strings.Join(reserved, ", "))
		}
		metadata = metadata.Clone()
	}

	req := &ApprovalRequest{
		Source:        source,
		RequesterName: requesterName,
		ApproverID:    approverID,
		Status:        StatusPending,
		Metadata:      metadata,
	}
	if text := strings.TrimSpace(input.JustificationText); text != "" {
		req.JustificationText = &text
	}

	if err := c.store.Create(ctx, req); err != nil {
		return nil, err
	}

	metrics.RecordRequestCreated(string(source))
	metrics.InfoWithContext(ctx, "Approval request created", map[string]interface{}{
		"approval_id": req.ID.String(),
		"source":      string(source),
		"approver_id": approverID,
		"enrichable":  req.EnrichmentText() != "",
	})

	/* Enrichment is best-effort: a skipped or dropped task leaves the
	 * request usable without AI-derived fields */
	if text := req.EnrichmentText(); text != "" && c.scheduler != nil {
		if !c.scheduler.Schedule(req.ID, text) {
			metrics.WarnWithContext(ctx, "Enrichment queue full, request will not be enriched", map[string]interface{}{
				"approval_id": req.ID.String(),
			})
		}
	}

	if c.notifier != nil {
		c.notifier.OnCreated(ctx, req)
	}

	return req, nil
}

/* Decide applies a terminal transition through the store's atomic CAS.
 * Losing the race yields Conflict; a non-matching approver yields
 * Unauthorized; neither mutates state or triggers a notification. */
func (c *Coordinator) Decide(ctx context.Context, id uuid.UUID, deciderID string, decision Decision) (*ApprovalRequest, error) {
	deciderID = strings.TrimSpace(deciderID)
	if deciderID == "" {
		return nil, NewValidationError("decider_id", "is required and cannot be empty")
	}
	switch decision {
	case DecisionApprove, DecisionReject:
	default:
		return nil, NewValidationError("decision", "must be 'approve' or 'reject'")
	}

	req, err := c.store.Decide(ctx, id, deciderID, decision)
	if err != nil {
		metrics.RecordDecision(string(decision), decideOutcome(err))
		return nil, err
	}

	metrics.RecordDecision(string(decision), "success")
	metrics.InfoWithContext(ctx, "Approval request decided", map[string]interface{}{
		"approval_id": id.String(),
		"decision":    string(decision),
		"decided_by":  deciderID,
	})

	if c.notifier != nil {
		c.notifier.OnDecided(ctx, req, decision)
	}

	return req, nil
}

/* Get fetches a single request by id */
func (c *Coordinator) Get(ctx context.Context, id uuid.UUID) (*ApprovalRequest, error) {
	return c.store.Get(ctx, id)
}

/* List fetches requests matching exact filters, most recent first */
func (c *Coordinator) List(ctx context.Context, filter ListFilter) ([]ApprovalRequest, error) {
	return c.store.List(ctx, filter)
}

func decideOutcome(err error) string {
	switch {
	case IsConflict(err):
		return "conflict"
	case IsUnauthorized(err):
		return "unauthorized"
	case IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
