package model

import (
	"errors"
	"strings"
)

// Store-level errors.
var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// Authentication errors. They are expected outcomes the caller can act on and
// are returned as values, never as infrastructure failures.
var (
	ErrDuplicateAccount   = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked, try again later")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrValidationFailed   = errors.New("validation failed")
)

// ValidationError carries the field-level reasons of a rejected request.
type ValidationError struct {
	Reasons []string
}

// NewValidationError creates a ValidationError from the given reasons.
func NewValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return ErrValidationFailed.Error()
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
