package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "must not be empty")
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should unwrap to ErrValidation")
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	single := NewValidationError("title", "must not be empty")
	if single.Error() != "validation: title — must not be empty" {
		t.Errorf("unexpected message: %q", single.Error())
	}

	multi := &ValidationError{Errors: []FieldError{
		{Field: "title", Message: "empty"},
		{Field: "status", Message: "unknown"},
	}}
	if multi.Error() != "validation: 2 errors" {
		t.Errorf("unexpected message: %q", multi.Error())
	}
}

func TestSentinelErrors_SurviveWrapping(t *testing.T) {
	t.Parallel()

	cases := []error{
		ErrNotFound, ErrUnauthorized, ErrPreconditionFailed,
		ErrConflict, ErrUnavailable,
	}
	for _, sentinel := range cases {
		wrapped := fmt.Errorf("resource abc: %w", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("wrapped error should match %v", sentinel)
		}
	}
}
