package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every failure the API can report to a client wraps
// exactly one of these, and the HTTP layer maps kind → status code in one
// place (handler.writeError). Services never touch status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrUpstream        = errors.New("upstream error")
)

// AppError carries the client-visible message alongside the kind.
// Message is the only text that ever reaches a response body — raw
// internal errors stay in the logs.
type AppError struct {
	Err     error  // one of the sentinel kinds above
	Message string // human-readable, client-visible message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing row, e.g. NotFound("Berita not found").
// The message is taken verbatim — each resource has its own phrasing.
func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// ValidationFailed reports rejected input. field may be empty when the
// failure concerns the request as a whole.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthenticated reports a missing or invalid session.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// BadCredentials reports a failed login (wrong password).
func BadCredentials(message string) *AppError {
	return &AppError{
		Err:     ErrBadCredentials,
		Message: message,
	}
}

// Upstream wraps a failed call to an external provider (Dropbox).
// Upstream errors are the one kind whose Message never reaches a client —
// writeError maps them to a generic 500 — so the cause goes into Message
// where the logs can see it.
func Upstream(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: fmt.Sprintf("%s: %v", op, cause),
	}
}
