package session

import (
	"strings"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// MinPasswordLength is the shortest password accepted by UpdatePassword.
const MinPasswordLength = 6

// SignInInput holds parameters for the sign-in operation.
type SignInInput struct {
	Email    string
	Password string
}

// Validate validates the sign-in input.
func (i SignInInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if len(i.Email) > 254 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdatePasswordInput holds parameters for the password change operation.
type UpdatePasswordInput struct {
	Password string
	Confirm  string
}

// Validate validates the password change input.
func (i UpdatePasswordInput) Validate() error {
	var errs []domain.FieldError

	if len([]rune(i.Password)) < MinPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if i.Password != i.Confirm {
		errs = append(errs, domain.FieldError{Field: "confirm", Message: "does not match"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RestoreInput holds an existing provider session to resume.
type RestoreInput struct {
	AccessToken  string
	RefreshToken string
}

// Validate validates the restore input.
func (i RestoreInput) Validate() error {
	if i.AccessToken == "" {
		return domain.NewValidationError("access_token", "required")
	}
	if len(i.AccessToken) > 8192 || len(i.RefreshToken) > 512 {
		return domain.NewValidationError("access_token", "too long")
	}
	return nil
}
