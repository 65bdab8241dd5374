// Package apperror defines the error categories shared by the account,
// publish and sync layers. Callers branch with errors.Is on the sentinels and
// errors.As on the typed errors when they need the details.
package apperror

import (
	"errors"
	"fmt"
	"time"
)

// Category sentinels.
var (
	ErrAuth        = errors.New("authentication failed")
	ErrValidation  = errors.New("validation error")
	ErrTransient   = errors.New("transient failure")
	ErrRateLimited = errors.New("rate limited")
	ErrNotFound    = errors.New("not found")
)

// AuthError is returned when a credential is missing, expired beyond repair,
// or rejected by the marketplace. The account needs re-authorization.
type AuthError struct {
	AccountKey string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("account %s: re-authorization required", e.AccountKey)
	}
	return fmt.Sprintf("account %s: re-authorization required: %v", e.AccountKey, e.Err)
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuth}
	}
	return []error{ErrAuth, e.Err}
}

// ValidationError reports bad input. Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransientError wraps a failure that may succeed on retry: timeouts,
// connection resets, 5xx and 429 responses.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Err)
}

func (e *TransientError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransient}
	}
	return []error{ErrTransient, e.Err}
}

// RateLimitedError is a local refusal, e.g. a sync requested inside its
// cooldown window. RetryAfter is how long the caller should wait.
type RateLimitedError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limited"
	}
	return fmt.Sprintf("%s: try again in %s", msg, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }

// Validation returns a ValidationError for field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Transient wraps err as a TransientError. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(resource, id string) error {
	return fmt.Errorf("%s %q: %w", resource, id, ErrNotFound)
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
