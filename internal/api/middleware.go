/*-------------------------------------------------------------------------
 *
 * middleware.go
 *    HTTP middleware for ApprovalHub API
 *
 * Provides CORS, logging, and panic recovery middleware for the
 * ApprovalHub HTTP API server.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/api/middleware.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/neurondb/ApprovalHub/internal/metrics"
)

/* CORSMiddleware adds CORS headers */
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

/* LoggingMiddleware logs requests with structured logging and metrics */
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		/* Wrap response writer to capture status code */
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		/* Record metrics */
		endpoint := r.URL.Path
		metrics.RecordHTTPRequest(r.Method, endpoint, wrapped.statusCode, duration)

		metrics.DebugWithContext(r.Context(), "HTTP request completed", map[string]interface{}{
			"method":      r.Method,
			"endpoint":    endpoint,
			"status_code": wrapped.statusCode,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

/* RecoveryMiddleware converts handler panics into 500 responses */
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID := GetRequestID(r.Context())
				metrics.ErrorWithContext(r.Context(), "handler panic recovered", fmt.Errorf("%v", rec), map[string]interface{}{
					"method":   r.Method,
					"endpoint": r.URL.Path,
				})
				respondError(w, WrapError(NewError(http.StatusInternalServerError, "internal server error", nil), requestID))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
