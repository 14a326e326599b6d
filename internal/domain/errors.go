package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrNotFound covers both "does not exist" and "exists but out of scope" —
	// callers must not be able to distinguish the two.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the principal lacks standing on the requested team.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPreconditionFailed means a mutation's preconditions did not hold,
	// e.g. the resource is already team-scoped or soft-deleted.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrConflict means a concurrent mutation lost the atomic race.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable means the backing store failed transiently. The caller
	// decides on retry; no partial commit has occurred.
	ErrUnavailable = errors.New("backend unavailable")

	ErrValidation = errors.New("validation error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
