/*-------------------------------------------------------------------------
 *
 * errors.go
 *    Error taxonomy for the approval lifecycle
 *
 * Losing a decision race is an expected, frequent condition, so Conflict
 * is a normal outcome rather than a system fault. Enrichment and search
 * unavailability are distinct from "no matches" so callers can tell an
 * inference outage apart from an empty result set.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/approval/errors.go
 *
 *-------------------------------------------------------------------------
 */

package approval

import (
	"errors"
	"fmt"
)

var (
	/* ErrValidation marks malformed create/decide input; nothing is persisted */
	ErrValidation = errors.New("validation failed")

	/* ErrNotFound marks an unknown request id */
	ErrNotFound = errors.New("approval request not found")

	/* ErrConflict marks a lost terminal-transition race ("already decided") */
	ErrConflict = errors.New("approval request already decided")

	/* ErrUnauthorized marks a decision by a non-matching approver */
	ErrUnauthorized = errors.New("approver is not authorized for this request")

	/* ErrEnrichmentUnavailable marks an inference failure during enrichment */
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	/* ErrSearchUnavailable marks a query-embedding failure; distinct from
	 * an empty result set */
	ErrSearchUnavailable = errors.New("semantic search unavailable")
)

/* ValidationError names the offending field of a malformed input */
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field='%s', reason='%s'", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

/* ConflictError carries the status the request already reached */
type ConflictError struct {
	CurrentStatus Status
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("approval request already decided: current_status='%s'", e.CurrentStatus)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

/* IsValidation reports whether err is a validation failure */
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

/* IsNotFound reports whether err marks an unknown request id */
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

/* IsConflict reports whether err marks a lost decision race */
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

/* IsUnauthorized reports whether err marks a non-matching approver */
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
