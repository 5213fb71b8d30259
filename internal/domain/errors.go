package domain

import (
	"errors"
	"fmt"
)

// AuthenticationError indicates a missing, expired, or invalid credential.
type AuthenticationError struct {
	Platform Platform
	Reason   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.Platform, e.Reason)
}

// UnsupportedOperationError signals a declared capability gap, not a bug:
// the platform genuinely does not offer the operation.
type UnsupportedOperationError struct {
	Platform  Platform
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Platform, e.Operation)
}

// RateLimitError is returned after a 429 has exhausted its single retry.
type RateLimitError struct {
	Platform   Platform
	RetryAfter float64 // seconds, 0 when the platform sent no hint
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited, retry after %.0fs", e.Platform, e.RetryAfter)
	}
	return fmt.Sprintf("%s: rate limited", e.Platform)
}

// NetworkError wraps a timeout or connection failure. Retryable by the caller.
type NetworkError struct {
	Platform Platform
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Platform, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// PlatformAPIError carries the platform's own error response for any
// non-429 4xx/5xx. Retryable reports whether the status class is 5xx.
type PlatformAPIError struct {
	Platform   Platform
	StatusCode int
	Message    string
	Retryable  bool
}

func (e *PlatformAPIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Platform, e.StatusCode, e.Message)
}

// SignatureVerificationError indicates an inbound webhook failed authenticity checks.
type SignatureVerificationError struct {
	Platform Platform
	Reason   string
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("%s: webhook signature verification failed: %s", e.Platform, e.Reason)
}

// IsUnsupported reports whether err is (or wraps) an UnsupportedOperationError.
func IsUnsupported(err error) bool {
	var ue *UnsupportedOperationError
	return errors.As(err, &ue)
}

// IsRetryable reports whether the caller may retry the failed call under its
// own policy: network failures and 5xx responses qualify, rate limits and
// client errors do not.
func IsRetryable(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var pe *PlatformAPIError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
