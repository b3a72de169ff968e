package apierror

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "base error with status",
			err:      &Error{Message: "server exploded", Status: 503},
			expected: "memex: server exploded (status 503)",
		},
		{
			name:     "base error without status",
			err:      &Error{Message: "no response from server"},
			expected: "memex: no response from server",
		},
		{
			name:     "authentication error",
			err:      &AuthenticationError{Message: "invalid API key"},
			expected: "memex: authentication failed: invalid API key",
		},
		{
			name:     "not found error",
			err:      &NotFoundError{Message: "document abc"},
			expected: "memex: not found: document abc",
		},
		{
			name:     "rate limit error with hint",
			err:      &RateLimitError{Message: "too many requests", RetryAfter: 5},
			expected: "memex: rate limited: too many requests (retry after 5s)",
		},
		{
			name:     "rate limit error without hint",
			err:      &RateLimitError{Message: "too many requests"},
			expected: "memex: rate limited: too many requests",
		},
		{
			name:     "validation error",
			err:      &ValidationError{Message: "ttlSeconds must be >= 0"},
			expected: "memex: validation failed: ttlSeconds must be >= 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("clipboard get: %w", &NotFoundError{Message: "no entry"})

	if !IsNotFound(wrapped) {
		t.Error("IsNotFound() should match a wrapped NotFoundError")
	}
	if IsAuthentication(wrapped) {
		t.Error("IsAuthentication() should not match a NotFoundError")
	}
	if !IsAuthentication(&AuthenticationError{Message: "nope"}) {
		t.Error("IsAuthentication() should match an AuthenticationError")
	}
	if !IsRateLimit(fmt.Errorf("outer: %w", &RateLimitError{Message: "slow down"})) {
		t.Error("IsRateLimit() should match a wrapped RateLimitError")
	}
	if !IsValidation(NewValidation("value size %d exceeds %d", 10, 5)) {
		t.Error("IsValidation() should match a ValidationError")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound() should not match a plain error")
	}
}

func TestNewValidation_Format(t *testing.T) {
	err := NewValidation("only one of name, idx, or clearAll allowed, got %d", 2)
	want := "memex: validation failed: only one of name, idx, or clearAll allowed, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
