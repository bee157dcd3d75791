/*-------------------------------------------------------------------------
 *
 * store.go
 *    Approval request persistence for ApprovalHub
 *
 * Provides the durable keyed storage for approval requests: creation,
 * retrieval, exact-match filtering, enrichment writes, the atomic
 * decide compare-and-swap, and pgvector similarity search.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/db/store.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/utils"
)

const (
	defaultListLimit   = 50
	maxListLimit       = 200
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

/* Approval request queries */
const (
	createRequestQuery = `
		INSERT INTO approval_requests
		(id, request_source, requester_name, approver_id, status, justification_text, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		RETURNING created_at, updated_at`

	getRequestQuery = `SELECT * FROM approval_requests WHERE id = $1`

	listRequestsQuery = `
		SELECT * FROM approval_requests
		WHERE ($1::text IS NULL OR request_source = $1)
		AND ($2::text IS NULL OR approver_id = $2)
		AND ($3::text IS NULL OR status = $3)
		AND ($4::text IS NULL OR requester_name ILIKE $4)
		ORDER BY created_at DESC
		LIMIT $5 OFFSET $6`

	/* The WHERE clause is the compare-and-swap: the row is updated only
	 * if it is still pending and owned by the acting approver. Zero rows
	 * affected means the caller lost the race, is not the approver, or
	 * named an unknown id; classifyDecideFailure tells those apart. */
	decideRequestQuery = `
		UPDATE approval_requests
		SET status = $3, decided_by = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND approver_id = $2 AND status = 'pending'
		RETURNING *`

	decideDiagnosticQuery = `SELECT approver_id, status FROM approval_requests WHERE id = $1`

	setEnrichmentQuery = `
		UPDATE approval_requests
		SET embedding = $2::vector,
			metadata = COALESCE(metadata, '{}'::jsonb) || jsonb_build_object('ai_summary', $3::text, 'risk_score', $4::float8),
			updated_at = NOW()
		WHERE id = $1`

	similaritySearchQuery = `
		SELECT *, 1 - (embedding <=> $1::vector) AS similarity
		FROM approval_requests
		WHERE embedding IS NOT NULL
		AND ($2::text IS NULL OR request_source = $2)
		AND ($3::text IS NULL OR approver_id = $3)
		AND ($4::text IS NULL OR status = $4)
		AND ($5::float8 IS NULL OR 1 - (embedding <=> $1::vector) >= $5)
		ORDER BY embedding <=> $1::vector ASC, created_at DESC
		LIMIT $6`
)

/* Store provides approval request queries over a PostgreSQL pool */
type Store struct {
	DB       *sqlx.DB
	connInfo func() string
}

/* NewStore creates a new store */
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		DB: db,
		connInfo: func() string {
			return "unknown database connection"
		},
	}
}

/* SetConnInfoFunc sets a function to retrieve connection info for error messages */
func (s *Store) SetConnInfoFunc(fn func() string) {
	s.connInfo = fn
}

/* getConnInfoString returns connection info string */
func (s *Store) getConnInfoString() string {
	if s.connInfo != nil {
		return s.connInfo()
	}
	return "unknown database connection"
}

/* formatQueryError formats a detailed query error message */
func (s *Store) formatQueryError(operation string, query string, paramCount int, err error) error {
	queryContext := utils.FormatQueryContext(query, paramCount, operation, "approval_requests")
	connInfo := s.getConnInfoString()
	return fmt.Errorf("query execution failed on %s: %s, error=%w", connInfo, queryContext, err)
}

/* Create inserts a new pending request, assigning its id and timestamps */
func (s *Store) Create(ctx context.Context, req *approval.ApprovalRequest) error {
	if req.ID == uuid.Nil {
		req.ID = utils.GenerateUUID()
	}
	if req.Status == "" {
		req.Status = approval.StatusPending
	}
	if req.Metadata == nil {
		req.Metadata = make(approval.Metadata)
	}

	params := []interface{}{req.ID, req.Source, req.RequesterName, req.ApproverID,
		req.Status, req.JustificationText, req.Metadata}
	err := s.DB.GetContext(ctx, req, createRequestQuery, params...)
	if err != nil {
		return fmt.Errorf("approval request creation failed on %s: query='%s', params_count=%d, approval_id='%s', source='%s', approver_id='%s', error=%w",
			s.getConnInfoString(), utils.CompactQuery(createRequestQuery), len(params),
			req.ID.String(), req.Source, req.ApproverID, err)
	}
	return nil
}

/* Get fetches a request by id */
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*approval.ApprovalRequest, error) {
	var req approval.ApprovalRequest
	err := s.DB.GetContext(ctx, &req, getRequestQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("approval request '%s' on %s: %w", id.String(), s.getConnInfoString(), approval.ErrNotFound)
	}
	if err != nil {
		return nil, s.formatQueryError("SELECT", getRequestQuery, 1, err)
	}
	return &req, nil
}

/* List fetches requests matching the filter, most recent first */
func (s *Store) List(ctx context.Context, filter approval.ListFilter) ([]approval.ApprovalRequest, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var requesterPattern *string
	if filter.RequesterName != nil && *filter.RequesterName != "" {
		pattern := "%" + *filter.RequesterName + "%"
		requesterPattern = &pattern
	}

	var reqs []approval.ApprovalRequest
	params := []interface{}{filter.Source, filter.ApproverID, filter.Status, requesterPattern, limit, offset}
	err := s.DB.SelectContext(ctx, &reqs, listRequestsQuery, params...)
	if err != nil {
		return nil, s.formatQueryError("SELECT", listRequestsQuery, len(params), err)
	}
	return reqs, nil
}

/* Decide performs the atomic terminal transition. Exactly one concurrent
 * caller can win; everyone else gets Conflict, Unauthorized, or NotFound. */
func (s *Store) Decide(ctx context.Context, id uuid.UUID, deciderID string, decision approval.Decision) (*approval.ApprovalRequest, error) {
	var req approval.ApprovalRequest
	err := s.DB.GetContext(ctx, &req, decideRequestQuery, id, deciderID, decision.Status())
	if err == sql.ErrNoRows {
		return nil, s.classifyDecideFailure(ctx, id, deciderID)
	}
	if err != nil {
		return nil, s.formatQueryError("UPDATE", decideRequestQuery, 3, err)
	}
	return &req, nil
}

/* classifyDecideFailure reads the row back after a missed CAS to tell
 * not-found, wrong approver, and already-decided apart. Authorization is
 * checked first: a wrong approver sees Unauthorized even on a decided row. */
func (s *Store) classifyDecideFailure(ctx context.Context, id uuid.UUID, deciderID string) error {
	var row struct {
		ApproverID string          `db:"approver_id"`
		Status     approval.Status `db:"status"`
	}
	err := s.DB.GetContext(ctx, &row, decideDiagnosticQuery, id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("approval request '%s' on %s: %w", id.String(), s.getConnInfoString(), approval.ErrNotFound)
	}
	if err != nil {
		return s.formatQueryError("SELECT", decideDiagnosticQuery, 1, err)
	}
	if row.ApproverID != deciderID {
		return fmt.Errorf("approval request '%s': decider '%s' does not match approver: %w",
			id.String(), deciderID, approval.ErrUnauthorized)
	}
	return &approval.ConflictError{CurrentStatus: row.Status}
}

/* SetEnrichment writes the embedding and the reserved metadata keys in
 * one statement. It never touches status. */
func (s *Store) SetEnrichment(ctx context.Context, id uuid.UUID, embedding approval.Vector, summary string, riskScore float64) error {
	if len(embedding) == 0 {
		return fmt.Errorf("enrichment write for approval request '%s' rejected: empty embedding", id.String())
	}

	params := []interface{}{id, embedding.String(), summary, riskScore}
	result, err := s.DB.ExecContext(ctx, setEnrichmentQuery, params...)
	if err != nil {
		return fmt.Errorf("enrichment write failed on %s: query='%s', approval_id='%s', embedding_dimension=%d, error=%w",
			s.getConnInfoString(), utils.CompactQuery(setEnrichmentQuery), id.String(), len(embedding), err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for enrichment write on %s: approval_id='%s', error=%w",
			s.getConnInfoString(), id.String(), err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("approval request '%s' on %s: %w", id.String(), s.getConnInfoString(), approval.ErrNotFound)
	}
	return nil
}

/* SimilaritySearch ranks stored requests by cosine similarity to the
 * query vector. Requests lacking an embedding are excluded, not scored
 * as zero; ties break by most recent created_at. */
func (s *Store) SimilaritySearch(ctx context.Context, queryEmbedding approval.Vector, filter approval.SimilarityFilter) ([]approval.SimilarityMatch, error) {
	if len(queryEmbedding) == 0 {
		return nil, approval.NewValidationError("query_embedding", "cannot be empty")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var matches []approval.SimilarityMatch
	params := []interface{}{queryEmbedding.String(), filter.Source, filter.ApproverID,
		filter.Status, filter.MinSimilarity, limit}
	err := s.DB.SelectContext(ctx, &matches, similaritySearchQuery, params...)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed on %s: query='%s', params_count=%d, query_embedding_dimension=%d, limit=%d, error=%w",
			s.getConnInfoString(), utils.CompactQuery(similaritySearchQuery), len(params), len(queryEmbedding), limit, err)
	}
	return matches, nil
}
