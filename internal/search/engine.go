/*-------------------------------------------------------------------------
 *
 * engine.go
 *    Exact-filter and semantic search over approval requests
 *
 * Exact filtering goes straight to the store. Semantic search embeds
 * the query through the same inference service used for enrichment and
 * ranks by cosine similarity. When query embedding fails the engine
 * surfaces an explicit "search unavailable" outcome so callers can
 * tell an inference outage apart from an empty result set.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/search/engine.go
 *
 *-------------------------------------------------------------------------
 */

package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

/* Store is the slice of the request store the engine reads from */
type Store interface {
	List(ctx context.Context, filter approval.ListFilter) ([]approval.ApprovalRequest, error)
	SimilaritySearch(ctx context.Context, queryEmbedding approval.Vector, filter approval.SimilarityFilter) ([]approval.SimilarityMatch, error)
}

/* Embedder is the slice of the inference client the engine calls */
type Embedder interface {
	Embed(ctx context.Context, text string) (approval.Vector, error)
}

/* Engine answers both query modes over stored approval requests */
type Engine struct {
	store    Store
	embedder Embedder
}

/* NewEngine creates a search engine */
func NewEngine(store Store, embedder Embedder) *Engine {
	return &Engine{
		store:    store,
		embedder: embedder,
	}
}

/* Filter returns requests matching exact criteria, most recent first */
func (e *Engine) Filter(ctx context.Context, filter approval.ListFilter) ([]approval.ApprovalRequest, error) {
	if filter.Source != nil && !filter.Source.Valid() {
		return nil, approval.NewValidationError("request_source", fmt.Sprintf("unknown source '%s'", *filter.Source))
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, approval.NewValidationError("status", fmt.Sprintf("unknown status '%s'", *filter.Status))
	}
	return e.store.List(ctx, filter)
}

/* Semantic embeds the query text and ranks stored requests by cosine
 * similarity, scoped by the optional filter. Requests without an
 * embedding never appear. */
func (e *Engine) Semantic(ctx context.Context, query string, filter approval.SimilarityFilter) ([]approval.SimilarityMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, approval.NewValidationError("query", "is required and cannot be empty")
	}
	if filter.Source != nil && !filter.Source.Valid() {
		return nil, approval.NewValidationError("request_source", fmt.Sprintf("unknown source '%s'", *filter.Source))
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, approval.NewValidationError("status", fmt.Sprintf("unknown status '%s'", *filter.Status))
	}

	start := time.Now()

	queryEmbedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		/* Never degrade to silently-empty results */
		metrics.RecordSemanticSearch("unavailable", 0, time.Since(start))
		metrics.WarnWithContext(ctx, "Semantic search unavailable: query embedding failed", map[string]interface{}{
			"query_length": len(query),
			"error":        err.Error(),
		})
		return nil, fmt.Errorf("query embedding: %w: %w", approval.ErrSearchUnavailable, err)
	}

	matches, err := e.store.SimilaritySearch(ctx, queryEmbedding, filter)
	if err != nil {
		metrics.RecordSemanticSearch("error", 0, time.Since(start))
		return nil, err
	}

	metrics.RecordSemanticSearch("success", len(matches), time.Since(start))
	metrics.DebugWithContext(ctx, "Semantic search completed", map[string]interface{}{
		"query_length": len(query),
		"result_count": len(matches),
	})
	return matches, nil
}
