package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrAccountDisabled is returned by sign-in when the identity provider
	// accepted the credentials but the profile is inactive.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrConfirmationRequired is returned by destructive operations invoked
	// without an explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrProvisioningUnavailable is returned by privileged identity operations
	// when the server has no service credential configured.
	ErrProvisioningUnavailable = errors.New("identity provisioning unavailable")

	// ErrPartialFailure marks a multi-step write where an early step
	// succeeded and a later one failed without rollback.
	ErrPartialFailure = errors.New("partial failure")
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
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
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

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
