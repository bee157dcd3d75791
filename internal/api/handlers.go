/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    API handlers for ApprovalHub
 *
 * Provides HTTP handlers for approval request creation, listing,
 * decisions, and semantic search.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/db"
	"github.com/neurondb/ApprovalHub/internal/search"
	"github.com/neurondb/ApprovalHub/internal/validation"
)

type Handlers struct {
	coordinator *approval.Coordinator
	engine      *search.Engine
	database    *db.DB
	version     string
}

func NewHandlers(coordinator *approval.Coordinator, engine *search.Engine, database *db.DB, version string) *Handlers {
	return &Handlers{
		coordinator: coordinator,
		engine:      engine,
		database:    database,
		version:     version,
	}
}

/* Approval requests */

func (h *Handlers) CreateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())
	endpoint := r.URL.Path
	method := r.Method

	/* Validate request body size (max 1MB) */
	const maxBodySize = 1024 * 1024
	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, endpoint, method, nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request creation failed: request body parsing error", err, requestID, endpoint, method, map[string]interface{}{
			"body_size": len(bodyBytes),
		}))
		return
	}

	/* Validate request */
	if !ValidateAndRespond(w, func() error { return ValidateCreateRequestRequest(&req) }) {
		return
	}

	created, err := h.coordinator.CreateRequest(r.Context(), approval.CreateInput{
		Source:            req.Source,
		RequesterName:     req.RequesterName,
		ApproverID:        req.ApproverID,
		JustificationText: req.JustificationText,
		Metadata:          approval.Metadata(req.Metadata),
	})
	if err != nil {
		respondError(w, FromDomainError(err, requestID))
		return
	}

	respondJSON(w, http.StatusCreated, toRequestResponse(created))
}

func (h *Handlers) GetRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval request ID format", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	req, err := h.coordinator.Get(r.Context(), id)
	if err != nil {
		respondError(w, FromDomainError(err, requestID))
		return
	}

	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	filter, err := listFilterFromQuery(r)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid list filter", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	requests, err := h.coordinator.List(r.Context(), filter)
	if err != nil {
		respondError(w, FromDomainError(err, requestID))
		return
	}

	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = toRequestResponse(&requests[i])
	}

	respondJSON(w, http.StatusOK, ListRequestsResponse{Requests: responses, Count: len(responses)})
}

func (h *Handlers) DecideRequest(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval request ID format", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	const maxBodySize = 64 * 1024
	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "decision failed: request body parsing error", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateDecideRequestRequest(&req) }) {
		return
	}

	decision, _ := approval.ParseDecision(req.Decision)
	h.decide(w, r, id, req.DeciderID, decision)
}

func (h *Handlers) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decideShortcut(w, r, approval.DecisionApprove)
}

func (h *Handlers) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideShortcut(w, r, approval.DecisionReject)
}

/* decideShortcut handles the /approve and /reject routes where the
 * decision is fixed by the path and the body carries only decider_id */
func (h *Handlers) decideShortcut(w http.ResponseWriter, r *http.Request, decision approval.Decision) {
	vars := mux.Vars(r)
	requestID := GetRequestID(r.Context())

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "invalid approval request ID format", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	var req struct {
		DeciderID string `json:"decider_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "decision failed: request body parsing error", err, requestID, r.URL.Path, r.Method, nil))
		return
	}
	if !ValidateAndRespond(w, func() error { return validation.ValidateRequired(req.DeciderID, "decider_id") }) {
		return
	}

	h.decide(w, r, id, req.DeciderID, decision)
}

func (h *Handlers) decide(w http.ResponseWriter, r *http.Request, id uuid.UUID, deciderID string, decision approval.Decision) {
	requestID := GetRequestID(r.Context())

	decided, err := h.coordinator.Decide(r.Context(), id, deciderID, decision)
	if err != nil {
		apiErr := FromDomainError(err, requestID)

		/* Include the current status on conflicts so callers can see
		 * what the request settled to */
		var conflictErr *approval.ConflictError
		if errors.As(err, &conflictErr) {
			apiErr.Context = map[string]interface{}{
				"current_status": string(conflictErr.CurrentStatus),
			}
		}
		respondError(w, apiErr)
		return
	}

	respondJSON(w, http.StatusOK, toRequestResponse(decided))
}

/* Search */

func (h *Handlers) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	const maxBodySize = 64 * 1024
	bodyBytes, err := validation.ReadAndValidateBody(r, maxBodySize)
	if err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "request body validation failed", err, requestID, r.URL.Path, r.Method, nil))
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var req SemanticSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, NewErrorWithContext(http.StatusBadRequest, "search failed: request body parsing error", err, requestID, r.URL.Path, r.Method, nil))
		return
	}

	if !ValidateAndRespond(w, func() error { return ValidateSemanticSearchRequest(&req) }) {
		return
	}

	filter := approval.SimilarityFilter{
		MinSimilarity: req.MinSimilarity,
		Limit:         req.Limit,
	}
	if req.Source != "" {
		source, _ := approval.ParseSource(req.Source)
		filter.Source = &source
	}
	if req.ApproverID != "" {
		filter.ApproverID = &req.ApproverID
	}
	if req.Status != "" {
		status, _ := approval.ParseStatus(req.Status)
		filter.Status = &status
	}

	matches, err := h.engine.Semantic(r.Context(), req.Query, filter)
	if err != nil {
		respondError(w, FromDomainError(err, requestID))
		return
	}

	responses := make([]SearchMatchResponse, len(matches))
	for i := range matches {
		responses[i] = toSearchMatchResponse(&matches[i])
	}

	respondJSON(w, http.StatusOK, SemanticSearchResponse{Matches: responses, Count: len(responses)})
}

/* Health */

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Version: h.version}

	if err := h.database.HealthCheck(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

/* Helper functions */

func listFilterFromQuery(r *http.Request) (approval.ListFilter, error) {
	var filter approval.ListFilter
	query := r.URL.Query()

	if v := query.Get("request_source"); v != "" {
		source, err := approval.ParseSource(v)
		if err != nil {
			return filter, err
		}
		filter.Source = &source
	}
	if v := query.Get("status"); v != "" {
		status, err := approval.ParseStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := query.Get("approver_id"); v != "" {
		filter.ApproverID = &v
	}
	if v := query.Get("requester_name"); v != "" {
		filter.RequesterName = &v
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		if err := validation.ValidateLimit(limit); err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		if err := validation.ValidateOffset(offset); err != nil {
			return filter, err
		}
		filter.Offset = offset
	}

	return filter, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *APIError) {
	response := ErrorResponse{
		Error: err.Message,
		Code:  err.Code,
	}
	if err.Err != nil {
		response.Message = err.Err.Error()
	}
	if err.RequestID != "" {
		w.Header().Set("X-Request-ID", err.RequestID)
	}
	respondJSON(w, err.Code, response)
}
