package llm

import (
	"fmt"
	"strings"
)

// ErrorType classifies a provider failure.
type ErrorType string

const (
	ErrorTypeEndpoint ErrorType = "endpoint"
	ErrorTypeAuth     ErrorType = "auth"
	ErrorTypeModel    ErrorType = "model"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a structured LLM error with classification.
type Error struct {
	Type       ErrorType
	Message    string
	Retryable  bool
	Cause      error
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Type))

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsRetryable implements the retry.RetryableError interface.
// This allows the retry package to check retryability without importing llm.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewError creates a new structured LLM error.
func NewError(errType ErrorType, message string, retryable bool, cause error) *Error {
	return &Error{
		Type:      errType,
		Message:   message,
		Retryable: retryable,
		Cause:     cause,
	}
}

// classifyStatus maps an HTTP status from a provider into a structured error.
func classifyStatus(statusCode int, cause error) *Error {
	e := &Error{Cause: cause, StatusCode: statusCode}
	switch {
	case statusCode == 401 || statusCode == 403:
		e.Type = ErrorTypeAuth
		e.Message = "authentication failed"
	case statusCode == 404:
		e.Type = ErrorTypeModel
		e.Message = "model not found"
	case statusCode == 429:
		e.Type = ErrorTypeUnknown
		e.Message = "rate limited"
		e.Retryable = true
	case statusCode >= 500:
		e.Type = ErrorTypeEndpoint
		e.Message = "server error"
		e.Retryable = true
	default:
		e.Type = ErrorTypeUnknown
		e.Message = "request failed"
	}
	return e
}
