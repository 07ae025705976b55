package gateway

import (
	"fmt"
	"net/http"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// RemoteError is a rejection reported by the store or identity provider.
// Message is the remote message verbatim.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Code != "" && e.Status != 0:
		return fmt.Sprintf("remote %d (%s): %s", e.Status, e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("remote (%s): %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("remote %d: %s", e.Status, e.Message)
	}
}

// Unwrap maps the remote code or status onto a domain sentinel, so callers
// can use errors.Is without knowing which driver produced the error.
func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case "23505": // unique_violation
		return domain.ErrAlreadyExists
	case "23503": // foreign_key_violation
		return domain.ErrNotFound
	case "23502", "23514", "22P02": // not_null, check, invalid_text_representation
		return domain.ErrValidation
	case "42501": // insufficient_privilege (row-level security)
		return domain.ErrForbidden
	case "PGRST116": // single object requested, none returned
		return domain.ErrNotFound
	case "PGRST301", "PGRST302": // bad or missing JWT
		return domain.ErrUnauthorized

	// identity provider error codes
	case "invalid_grant", "invalid_credentials", "bad_jwt", "session_not_found", "no_authorization":
		return domain.ErrUnauthorized
	case "email_exists", "user_already_exists":
		return domain.ErrAlreadyExists
	case "user_not_found":
		return domain.ErrNotFound
	case "weak_password", "validation_failed", "email_address_invalid":
		return domain.ErrValidation
	case "user_banned", "not_admin":
		return domain.ErrForbidden
	}

	switch e.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	}
	return nil
}
