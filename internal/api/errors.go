/*-------------------------------------------------------------------------
 *
 * errors.go
 *    API error types for ApprovalHub
 *
 * Provides the APIError type and helpers for building HTTP error
 * responses with request correlation context.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/api/errors.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"errors"
	"net/http"

	"github.com/neurondb/ApprovalHub/internal/approval"
)

/* APIError carries an HTTP status code with diagnostic context */
type APIError struct {
	Code      int
	Message   string
	Err       error
	RequestID string
	Endpoint  string
	Method    string
	Context   map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

/* ErrorResponse is the JSON error envelope */
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

/* NewError creates an APIError */
func NewError(code int, message string, err error) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

/* NewErrorWithContext creates an APIError with request diagnostic context */
func NewErrorWithContext(code int, message string, err error, requestID, endpoint, method string, context map[string]interface{}) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Err:       err,
		RequestID: requestID,
		Endpoint:  endpoint,
		Method:    method,
		Context:   context,
	}
}

/* WrapError attaches a request ID to an existing APIError */
func WrapError(err *APIError, requestID string) *APIError {
	return &APIError{
		Code:      err.Code,
		Message:   err.Message,
		Err:       err.Err,
		RequestID: requestID,
		Endpoint:  err.Endpoint,
		Method:    err.Method,
		Context:   err.Context,
	}
}

/* FromDomainError maps domain errors to HTTP status codes */
func FromDomainError(err error, requestID string) *APIError {
	var apiErr *APIError

	switch {
	case approval.IsValidation(err):
		apiErr = NewError(http.StatusBadRequest, "validation failed", err)
	case approval.IsNotFound(err):
		apiErr = NewError(http.StatusNotFound, "approval request not found", err)
	case approval.IsUnauthorized(err):
		apiErr = NewError(http.StatusForbidden, "approver is not authorized for this request", err)
	case approval.IsConflict(err):
		apiErr = NewError(http.StatusConflict, "approval request is already decided", err)
	case errors.Is(err, approval.ErrSearchUnavailable):
		apiErr = NewError(http.StatusServiceUnavailable, "semantic search is temporarily unavailable", err)
	default:
		apiErr = NewError(http.StatusInternalServerError, "internal server error", err)
	}

	return WrapError(apiErr, requestID)
}
