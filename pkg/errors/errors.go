// Package errors provides structured error handling for the application.
// Every failure that reaches a handler boundary is represented as an
// AppError so it can be mapped onto the JSON response envelope.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies an application error
type ErrorCode string

const (
	// Client errors (4xx)
	CodeValidation   ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"

	// Server errors (5xx)
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeDatabase        ErrorCode = "DATABASE_ERROR"
	CodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// CodeDecode marks a reversible-cipher decode failure. It is recovered
	// where it occurs (the caller falls back to the raw stored value) and
	// never surfaces to the client.
	CodeDecode ErrorCode = "DECODE_ERROR"
)

// AppError represents an application error with a user-facing message.
// Message is what the client sees in the response envelope; Details and
// Cause stay server-side.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status code for the error. Callers may
// override the mapping where an endpoint demands it (login reports an
// unknown handle as 401, not 404).
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidation, CodeConflict:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WithCause attaches a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidation creates a validation error (missing or malformed field)
func NewValidation(message string) *AppError {
	return New(CodeValidation, message)
}

// NewUnauthorized creates an unauthorized error (bad credential)
func NewUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

// NewForbidden creates a forbidden error (invalid token, non-admin caller)
func NewForbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

// NewNotFound creates a not found error
func NewNotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

// NewConflict creates a conflict error (duplicate identifier)
func NewConflict(message string) *AppError {
	return New(CodeConflict, message)
}

// NewInternal creates an internal error with a generic user-facing message
func NewInternal(message string) *AppError {
	return New(CodeInternal, message)
}

// NewDatabase wraps a database failure. The user-facing message stays
// generic; the operation and cause are kept for the logs.
func NewDatabase(message string, operation string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabase,
		Message: message,
		Details: fmt.Sprintf("failed to %s", operation),
		Cause:   cause,
	}
}

// NewDecode creates a decode error for cipher round-trip failures
func NewDecode(details string, cause error) *AppError {
	return &AppError{
		Code:    CodeDecode,
		Message: "decode failed",
		Details: details,
		Cause:   cause,
	}
}

// Is checks whether err carries the given error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Wrap converts err into an AppError, passing AppErrors through unchanged
// and hiding anything else behind a generic internal error.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternal(message).WithCause(err)
}
