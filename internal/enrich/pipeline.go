/*-------------------------------------------------------------------------
 *
 * pipeline.go
 *    Asynchronous enrichment pipeline for approval requests
 *
 * Workers consume a buffered task queue and turn justification text
 * into an embedding, a summary, and a risk score via the inference
 * service. Every failure is contained: the request keeps its current
 * status with no AI-derived fields, and nothing is retried. A full
 * queue drops the task rather than blocking request creation.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/enrich/pipeline.go
 *
 *-------------------------------------------------------------------------
 */

package enrich

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/neurondb/ApprovalHub/internal/approval"
	"github.com/neurondb/ApprovalHub/internal/inference"
	"github.com/neurondb/ApprovalHub/internal/metrics"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 256
)

/* Store is the slice of the request store the pipeline writes through */
type Store interface {
	SetEnrichment(ctx context.Context, id uuid.UUID, embedding approval.Vector, summary string, riskScore float64) error
}

/* Inference is the slice of the inference client the pipeline calls */
type Inference interface {
	Embed(ctx context.Context, text string) (approval.Vector, error)
	Summarize(ctx context.Context, text string) (*inference.Enrichment, error)
}

/* Task is one enrichment unit of work */
type Task struct {
	RequestID uuid.UUID
	Text      string
}

/* Pipeline runs enrichment tasks on a worker pool */
type Pipeline struct {
	store     Store
	inference Inference
	queue     chan Task
	workers   int
	timeout   time.Duration
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	mu        sync.Mutex
	closed    bool
}

/* Option configures a Pipeline */
type Option func(*Pipeline)

/* WithWorkers sets the worker count */
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

/* WithQueueSize sets the task queue capacity */
func WithQueueSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.queue = make(chan Task, n)
		}
	}
}

/* WithTaskTimeout bounds the inference calls of a single task */
func WithTaskTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

/* NewPipeline creates an enrichment pipeline */
func NewPipeline(store Store, inf Inference, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     store,
		inference: inf,
		queue:     make(chan Task, DefaultQueueSize),
		workers:   DefaultWorkers,
		timeout:   inference.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

/* Start spawns the worker pool */
func (p *Pipeline) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.work()
		}
	})
}

/* Stop closes intake and waits for in-flight tasks to drain. Useful as
 * a deterministic barrier in tests as well as at shutdown. */
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

/* Schedule hands a task to the pipeline without blocking. Returns false
 * when the queue is full or intake is closed; the request simply stays
 * unenriched. The mutex keeps the send from racing a concurrent Stop
 * onto a closed channel. */
func (p *Pipeline) Schedule(id uuid.UUID, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		metrics.RecordEnrichmentTask("dropped", 0)
		return false
	}
	select {
	case p.queue <- Task{RequestID: id, Text: text}:
		metrics.RecordEnrichmentQueued()
		return true
	default:
		metrics.RecordEnrichmentTask("dropped", 0)
		return false
	}
}

func (p *Pipeline) work() {
	defer p.wg.Done()
	for task := range p.queue {
		metrics.RecordEnrichmentDequeued()
		p.runTask(task)
	}
}

/* runTask contains panics the same way it contains failures: the
 * request is left unenriched and the worker keeps going */
func (p *Pipeline) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ErrorWithContext(context.Background(), "Enrichment task panicked", fmt.Errorf("%v", r), map[string]interface{}{
				"approval_id": task.RequestID.String(),
			})
			metrics.RecordEnrichmentTask("panic", 0)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.Process(ctx, task); err != nil {
		metrics.WarnWithContext(ctx, "Enrichment failed, request stays without AI-derived fields", map[string]interface{}{
			"approval_id": task.RequestID.String(),
			"error":       err.Error(),
		})
	}
}

/* Process performs one enrichment task synchronously. Exported so tests
 * can drive the pipeline deterministically without the worker pool. */
func (p *Pipeline) Process(ctx context.Context, task Task) error {
	start := time.Now()

	text := strings.TrimSpace(task.Text)
	if text == "" {
		/* Valid terminal state: the request is never enriched */
		metrics.DebugWithContext(ctx, "Enrichment skipped: empty justification text", map[string]interface{}{
			"approval_id": task.RequestID.String(),
		})
		metrics.RecordEnrichmentTask("skipped", time.Since(start))
		return nil
	}

	embedding, err := p.inference.Embed(ctx, text)
	if err != nil {
		metrics.RecordEnrichmentTask("failed", time.Since(start))
		return fmt.Errorf("embedding generation: %w: %w", approval.ErrEnrichmentUnavailable, err)
	}

	enrichment, err := p.inference.Summarize(ctx, text)
	if err != nil {
		metrics.RecordEnrichmentTask("failed", time.Since(start))
		return fmt.Errorf("summarization: %w: %w", approval.ErrEnrichmentUnavailable, err)
	}

	if err := p.store.SetEnrichment(ctx, task.RequestID, embedding, enrichment.Summary, enrichment.RiskScore); err != nil {
		metrics.RecordEnrichmentTask("failed", time.Since(start))
		return fmt.Errorf("enrichment persistence: %w", err)
	}

	metrics.InfoWithContext(ctx, "Approval request enriched", map[string]interface{}{
		"approval_id":         task.RequestID.String(),
		"embedding_dimension": len(embedding),
		"risk_score":          enrichment.RiskScore,
	})
	metrics.RecordEnrichmentTask("success", time.Since(start))
	return nil
}
