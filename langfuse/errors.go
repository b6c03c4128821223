package langfuse

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration validation.
var (
	ErrMissingPublicKey = errors.New("langfuse: public key is required")
	ErrMissingSecretKey = errors.New("langfuse: secret key is required")
	ErrMissingBaseURL   = errors.New("langfuse: base URL is required")
	ErrClientClosed     = errors.New("langfuse: client is closed")
	ErrNilConfig        = errors.New("langfuse: config cannot be nil")
)

// Sentinel APIError values for use with errors.Is().
// These match on status code only.
var (
	ErrNotFound     = &APIError{StatusCode: 404}
	ErrUnauthorized = &APIError{StatusCode: 401}
	ErrRateLimited  = &APIError{StatusCode: 429}
)

// APIError represents an error response from the Langfuse API.
type APIError struct {
	StatusCode   int    `json:"statusCode"`
	Message      string `json:"message"`
	ErrorMessage string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrorMessage
	}
	if msg != "" {
		return fmt.Sprintf("langfuse: API error (status %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("langfuse: API error (status %d)", e.StatusCode)
}

// Is implements error comparison for errors.Is(), matching on status
// code so sentinel comparisons like errors.Is(err, ErrRateLimited) work.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// IsServerError returns true for 5xx responses.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || e.IsServerError()
}

// ValidationError represents a validation error for a request.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("langfuse: validation error for field %q: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IngestionError represents an error for a single event within a batch.
type IngestionError struct {
	ID           string `json:"id"`
	Status       int    `json:"status"`
	Message      string `json:"message"`
	ErrorMessage string `json:"error"`
}

// Error implements the error interface.
func (e *IngestionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ErrorMessage
	}
	if msg != "" {
		return fmt.Sprintf("langfuse: ingestion error for %s (status %d): %s", e.ID, e.Status, msg)
	}
	return fmt.Sprintf("langfuse: ingestion error for %s (status %d)", e.ID, e.Status)
}

// IngestionResult represents the result of a batch ingestion request.
type IngestionResult struct {
	Successes []IngestionSuccess `json:"successes"`
	Errors    []IngestionError   `json:"errors"`
}

// IngestionSuccess represents a successfully ingested event.
type IngestionSuccess struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

// HasErrors returns true if the ingestion result contains any errors.
func (r *IngestionResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ShutdownError is returned when graceful shutdown times out. Remaining
// queued events may have been lost.
type ShutdownError struct {
	Cause         error
	PendingEvents int
}

// Error implements the error interface.
func (e *ShutdownError) Error() string {
	return fmt.Sprintf("langfuse: shutdown timed out, up to %d events may be lost: %v", e.PendingEvents, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ShutdownError) Unwrap() error {
	return e.Cause
}
