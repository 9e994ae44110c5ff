// Package apperror defines the application's domain error types.
//
// Every failure in the service and repository layers is one of these typed
// errors. The HTTP layer maps them to status codes with errors.Is — it never
// inspects error strings. Sentinel errors (ErrNotFound etc.) are the match
// targets; AppError carries the human-readable context (entity, field,
// value) needed for a precise message.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate resource")
	ErrValidation = errors.New("validation error")
	ErrDatabase   = errors.New("database operation failed")
)

// AppError is a domain error with enough context to produce a user-facing
// message. Err always wraps one of the sentinel errors above, so
// errors.Is(err, ErrNotFound) works anywhere in the chain.
type AppError struct {
	Err     error  // sentinel (and, for ErrDatabase, the driver cause)
	Message string // human-readable error message
	Entity  string // which record type, e.g. "User", "Guide"
	Field   string // which field triggered the error, e.g. "username"
	Value   string // the offending value
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no record of the given entity matched field = value.
// The message mirrors the lookup that failed: "User not found with id: 42".
func NotFound(entity, field, value string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with %s: %s", entity, field, value),
		Entity:  entity,
		Field:   field,
		Value:   value,
	}
}

// Duplicate reports a uniqueness violation detected by the identity guard:
// another record of the same entity already holds field = value.
func Duplicate(entity, field, value string) *AppError {
	return &AppError{
		Err:     ErrDuplicate,
		Message: fmt.Sprintf("%s already exists with %s: %s", entity, field, value),
		Entity:  entity,
		Field:   field,
		Value:   value,
	}
}

// ValidationFailed reports a malformed or missing input field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Database wraps a failed store call. The cause stays on the error chain for
// diagnostics (errors.Is/As still reach it), but the Message is generic —
// handlers must never leak driver internals to the client.
func Database(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrDatabase, cause),
		Message: fmt.Sprintf("Failed to %s", op),
	}
}
