/*-------------------------------------------------------------------------
 *
 * log_context.go
 *    Log context helpers for structured logging
 *
 * Provides helpers for consistent structured logging with request_id,
 * approval_id, source, and trace_id fields across all components.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <support@neurondb.ai>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/metrics/log_context.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	approvalIDKey contextKey = "approval_id"
	sourceKey     contextKey = "source"
	traceIDKey    contextKey = "trace_id"
)

/* WithLogContext adds logging fields to context */
func WithLogContext(ctx context.Context, requestID, approvalID, source, traceID string) context.Context {
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if approvalID != "" {
		ctx = context.WithValue(ctx, approvalIDKey, approvalID)
	}
	if source != "" {
		ctx = context.WithValue(ctx, sourceKey, source)
	}
	if traceID != "" {
		ctx = context.WithValue(ctx, traceIDKey, traceID)
	}
	return ctx
}

/* WithApprovalIDLogContext adds an approval request ID to log context */
func WithApprovalIDLogContext(ctx context.Context, approvalID uuid.UUID) context.Context {
	return context.WithValue(ctx, approvalIDKey, approvalID.String())
}

/* WithSourceLogContext adds a source system tag to log context */
func WithSourceLogContext(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

/* GetRequestIDFromContext gets request ID from context */
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

/* GetApprovalIDFromContext gets approval request ID from context */
func GetApprovalIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(approvalIDKey).(string); ok {
		return id
	}
	if id, ok := ctx.Value(approvalIDKey).(uuid.UUID); ok {
		return id.String()
	}
	return ""
}

/* GetSourceFromContext gets the source system tag from context */
func GetSourceFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey).(string); ok {
		return s
	}
	return ""
}

/* GetTraceIDFromContext gets trace ID from context */
func GetTraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

/* LoggerFromContext creates a zerolog logger with fields from context */
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	logger := *zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	/* Add context fields */
	requestID := GetRequestIDFromContext(ctx)
	approvalID := GetApprovalIDFromContext(ctx)
	source := GetSourceFromContext(ctx)
	traceID := GetTraceIDFromContext(ctx)

	if requestID != "" {
		logger = logger.With().Str("request_id", requestID).Logger()
	}
	if approvalID != "" {
		logger = logger.With().Str("approval_id", approvalID).Logger()
	}
	if source != "" {
		logger = logger.With().Str("source", source).Logger()
	}
	if traceID != "" {
		logger = logger.With().Str("trace_id", traceID).Logger()
	}

	return logger
}

/* LogWithContext logs a message with context fields */
func LogWithContext(ctx context.Context, level zerolog.Level, message string, fields map[string]interface{}) {
	logger := LoggerFromContext(ctx)
	event := logger.WithLevel(level)

	for key, value := range fields {
		event = event.Interface(key, value)
	}

	event.Msg(message)
}

/* DebugWithContext logs a debug message with context */
func DebugWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.DebugLevel, message, fields)
}

/* InfoWithContext logs an info message with context */
func InfoWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.InfoLevel, message, fields)
}

/* WarnWithContext logs a warning message with context */
func WarnWithContext(ctx context.Context, message string, fields map[string]interface{}) {
	LogWithContext(ctx, zerolog.WarnLevel, message, fields)
}

/* ErrorWithContext logs an error message with context */
func ErrorWithContext(ctx context.Context, message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	LogWithContext(ctx, zerolog.ErrorLevel, message, fields)
}
