package admin

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// MinPasswordLength is the shortest password an admin may set.
const MinPasswordLength = 6

// CreateUserInput holds parameters for provisioning a user.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// Validate validates the create-user input.
func (i CreateUserInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len([]rune(i.Password)) < MinPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}

	if domain.NormalizeName(i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}

	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'admin' or 'lawyer'"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateUserInput lists the profile fields an admin may change.
// Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Role     *domain.Role
	IsActive *bool
}

// Validate validates the update-user input.
func (i UpdateUserInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == nil && i.Role == nil && i.IsActive == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "nothing to update"})
	}
	if i.Name != nil && domain.NormalizeName(*i.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if i.Role != nil && !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be 'admin' or 'lawyer'"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResetPasswordInput holds the new credential for a user.
type ResetPasswordInput struct {
	Password string
}

// Validate validates the reset-password input.
func (i ResetPasswordInput) Validate() error {
	if len([]rune(i.Password)) < MinPasswordLength {
		return domain.NewValidationError("password", "must be at least 6 characters")
	}
	return nil
}
