// Package apierror defines the closed set of error types surfaced by the
// Memex client. The transport layer is the sole place that classifies
// HTTP-layer failures into these types; services propagate them unchanged.
package apierror

import (
	"errors"
	"fmt"
)

// Error is the base API error. It carries the HTTP status when one was
// received and an optional structured detail payload from the response body.
type Error struct {
	Message string
	Status  int
	Details map[string]any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("memex: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("memex: %s", e.Message)
}

// AuthenticationError indicates the API key was missing, invalid, or revoked.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("memex: authentication failed: %s", e.Message)
}

// Status returns the HTTP status associated with authentication failures.
func (e *AuthenticationError) Status() int { return 401 }

// NotFoundError indicates the requested resource does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("memex: not found: %s", e.Message)
}

// Status returns the HTTP status associated with not-found failures.
func (e *NotFoundError) Status() int { return 404 }

// RateLimitError indicates the server rejected the request with 429.
// RetryAfter is the server-supplied hint in seconds, 0 when absent.
type RateLimitError struct {
	Message    string
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("memex: rate limited: %s (retry after %ds)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("memex: rate limited: %s", e.Message)
}

// Status returns the HTTP status associated with rate-limit failures.
func (e *RateLimitError) Status() int { return 429 }

// ValidationError is raised locally, before any network call, when caller
// input violates a client-side bound.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("memex: validation failed: %s", e.Message)
}

// Status returns the status validation errors are reported under.
func (e *ValidationError) Status() int { return 400 }

// NewValidation builds a ValidationError with a formatted message.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsAuthentication reports whether err is (or wraps) an AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsRateLimit reports whether err is (or wraps) a RateLimitError.
func IsRateLimit(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
