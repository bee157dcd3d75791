/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for ApprovalHub
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "approval_hub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* Lifecycle metrics */
	requestsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_requests_created_total",
			Help: "Total number of approval requests created",
		},
		[]string{"source"},
	)

	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_decisions_total",
			Help: "Total number of decision attempts",
		},
		[]string{"decision", "outcome"},
	)

	/* Enrichment metrics */
	enrichmentTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_enrichment_tasks_total",
			Help: "Total number of enrichment tasks processed",
		},
		[]string{"status"},
	)

	enrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "approval_hub_enrichment_duration_seconds",
			Help:    "Enrichment task duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	enrichmentQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "approval_hub_enrichment_queue_depth",
			Help: "Number of enrichment tasks waiting in the queue",
		},
	)

	/* Inference metrics */
	inferenceCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_inference_calls_total",
			Help: "Total number of inference API calls",
		},
		[]string{"operation", "status"},
	)

	inferenceCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "approval_hub_inference_call_duration_seconds",
			Help:    "Inference API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)

	/* Search metrics */
	semanticSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "approval_hub_semantic_search_duration_seconds",
			Help:    "Semantic search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	semanticSearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_semantic_search_total",
			Help: "Total number of semantic searches",
		},
		[]string{"status"},
	)

	semanticSearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "approval_hub_semantic_search_results",
			Help:    "Number of results returned by semantic searches",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	/* Notification metrics */
	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approval_hub_notifications_total",
			Help: "Total number of lifecycle notifications sent",
		},
		[]string{"event", "status"},
	)

	/* Database connection pool metrics */
	dbPoolOpenConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "approval_hub_db_pool_open_connections",
			Help: "Number of open database connections",
		},
		[]string{"database"},
	)

	dbPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "approval_hub_db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
		[]string{"database"},
	)

	dbPoolInUseConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "approval_hub_db_pool_in_use_connections",
			Help: "Number of database connections in use",
		},
		[]string{"database"},
	)
)

/* RecordHTTPRequest records an HTTP request */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	/* Convert status code to status class for better PromQL queries */
	statusClass := "unknown"
	if status >= 200 && status < 300 {
		statusClass = "2xx"
	} else if status >= 300 && status < 400 {
		statusClass = "3xx"
	} else if status >= 400 && status < 500 {
		statusClass = "4xx"
	} else if status >= 500 {
		statusClass = "5xx"
	}

	httpRequestsTotal.WithLabelValues(method, endpoint, statusClass).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordRequestCreated records a created approval request */
func RecordRequestCreated(source string) {
	requestsCreatedTotal.WithLabelValues(source).Inc()
}

/* RecordDecision records a decision attempt and its outcome */
func RecordDecision(decision, outcome string) {
	decisionsTotal.WithLabelValues(decision, outcome).Inc()
}

/* RecordEnrichmentTask records a processed enrichment task */
func RecordEnrichmentTask(status string, duration time.Duration) {
	enrichmentTasksTotal.WithLabelValues(status).Inc()
	enrichmentDuration.Observe(duration.Seconds())
}

/* RecordEnrichmentQueued records an enrichment task entering the queue */
func RecordEnrichmentQueued() {
	enrichmentQueueDepth.Inc()
}

/* RecordEnrichmentDequeued records an enrichment task leaving the queue */
func RecordEnrichmentDequeued() {
	enrichmentQueueDepth.Dec()
}

/* RecordInferenceCall records an inference API call */
func RecordInferenceCall(operation, status string, duration time.Duration) {
	inferenceCallsTotal.WithLabelValues(operation, status).Inc()
	inferenceCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

/* RecordSemanticSearch records a semantic search */
func RecordSemanticSearch(status string, resultCount int, duration time.Duration) {
	semanticSearchTotal.WithLabelValues(status).Inc()
	semanticSearchDuration.Observe(duration.Seconds())
	if status == "success" {
		semanticSearchResults.Observe(float64(resultCount))
	}
}

/* RecordNotification records a lifecycle notification delivery attempt */
func RecordNotification(event, status string) {
	notificationsTotal.WithLabelValues(event, status).Inc()
}

/* RecordDBPoolStats records database connection pool statistics */
func RecordDBPoolStats(database string, openConns, idleConns, inUse int) {
	dbPoolOpenConns.WithLabelValues(database).Set(float64(openConns))
	dbPoolIdleConns.WithLabelValues(database).Set(float64(idleConns))
	dbPoolInUseConns.WithLabelValues(database).Set(float64(inUse))
}

/* Handler returns the Prometheus metrics handler */
func Handler() http.Handler {
	return promhttp.Handler()
}
