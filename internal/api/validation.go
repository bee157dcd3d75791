/*-------------------------------------------------------------------------
 *
 * validation.go
 *    Request validation utilities for ApprovalHub API
 *
 * Provides validation functions for API requests including body size
 * limits, enum checks, pagination, and search query validation.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/api/validation.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"
	"net/http"

	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/validation"
)

/* ValidateCreateRequestRequest validates CreateRequestRequest */
func ValidateCreateRequestRequest(req *CreateRequestRequest) error {
	if err := validation.ValidateRequired(req.Source, "request_source"); err != nil {
		return err
	}
	if _, err := approval.ParseSource(req.Source); err != nil {
		return err
	}

	if err := validation.ValidateRequired(req.RequesterName, "requester_name"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.RequesterName, "requester_name", 100); err != nil {
		return err
	}

	if err := validation.ValidateRequired(req.ApproverID, "approver_id"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.ApproverID, "approver_id", 50); err != nil {
		return err
	}

	/* Justification is optional but bounded */
	if err := validation.ValidateMaxLength(req.JustificationText, "justification_text", 10000); err != nil {
		return err
	}

	/* Metadata validation (optional) */
	if req.Metadata != nil {
		metadataStr := fmt.Sprintf("%v", req.Metadata)
		if len(metadataStr) > 10000 {
			return fmt.Errorf("metadata is too large (max 10KB)")
		}
	}

	return nil
}

/* ValidateDecideRequestRequest validates DecideRequestRequest */
func ValidateDecideRequestRequest(req *DecideRequestRequest) error {
	if err := validation.ValidateRequired(req.DeciderID, "decider_id"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.DeciderID, "decider_id", 50); err != nil {
		return err
	}

	if err := validation.ValidateRequired(req.Decision, "decision"); err != nil {
		return err
	}
	if _, err := approval.ParseDecision(req.Decision); err != nil {
		return err
	}

	return nil
}

/* ValidateSemanticSearchRequest validates SemanticSearchRequest */
func ValidateSemanticSearchRequest(req *SemanticSearchRequest) error {
	if err := validation.ValidateRequired(req.Query, "query"); err != nil {
		return err
	}
	if err := validation.ValidateMaxLength(req.Query, "query", 10000); err != nil {
		return err
	}

	if req.Source != "" {
		if _, err := approval.ParseSource(req.Source); err != nil {
			return err
		}
	}
	if req.Status != "" {
		if _, err := approval.ParseStatus(req.Status); err != nil {
			return err
		}
	}
	if req.MinSimilarity != nil {
		if err := validation.ValidateFloatRange(*req.MinSimilarity, -1, 1, "min_similarity"); err != nil {
			return err
		}
	}
	if req.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", req.Limit)
	}

	return nil
}

/* ValidateAndRespond validates a request and responds with error if invalid */
func ValidateAndRespond(w http.ResponseWriter, validator func() error) bool {
	if err := validator(); err != nil {
		respondError(w, NewError(http.StatusBadRequest, "validation failed", err))
		return false
	}
	return true
}
