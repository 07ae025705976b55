// Package respond writes JSON responses and maps domain errors onto HTTP
// statuses with localized messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
	Detail string       `json:"detail,omitempty"`
}

// FieldError is one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Responder renders responses in the caller's locale.
type Responder struct {
	tr  *i18n.Translator
	log *slog.Logger
}

// New creates a Responder.
func New(tr *i18n.Translator, logger *slog.Logger) *Responder {
	return &Responder{tr: tr, log: logger.With("component", "respond")}
}

// Translator returns the message table used for errors.
func (rs *Responder) Translator() *i18n.Translator { return rs.tr }

// JSON writes v with the given status.
func (rs *Responder) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// NoContent writes 204.
func (rs *Responder) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes an error body for a known code.
func (rs *Responder) Fail(w http.ResponseWriter, r *http.Request, status int, code string) {
	rs.JSON(w, status, ErrorBody{Error: rs.message(r, code), Code: code})
}

// Decode reads a JSON request body into dst. On failure it writes a 400 and
// returns false.
func (rs *Responder) Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		rs.JSON(w, http.StatusBadRequest, ErrorBody{
			Error:  rs.message(r, i18n.CodeValidation),
			Code:   i18n.CodeValidation,
			Fields: []FieldError{{Field: "body", Message: "invalid JSON body"}},
		})
		return false
	}
	return true
}

// Error maps err onto a status and writes it. Unexpected errors are logged
// and hidden behind a generic message.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Classify(err)
	body := ErrorBody{Error: rs.message(r, code), Code: code}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			body.Fields = append(body.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
	}
	var rerr *gateway.RemoteError
	if errors.As(err, &rerr) {
		body.Detail = rerr.Message
	}

	if status >= http.StatusInternalServerError {
		rs.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
	}
	rs.JSON(w, status, body)
}

// Classify returns the HTTP status and message code for err.
func Classify(err error) (int, string) {
	var rerr *gateway.RemoteError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, i18n.CodeValidation
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusBadRequest, i18n.CodeConfirmationRequired
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, i18n.CodeUnauthorized
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, i18n.CodeAccountDisabled
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, i18n.CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, i18n.CodeNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, i18n.CodeAlreadyExists
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, i18n.CodeConflict
	case errors.Is(err, domain.ErrProvisioningUnavailable):
		return http.StatusServiceUnavailable, i18n.CodeProvisioningDisabled
	case errors.Is(err, domain.ErrPartialFailure):
		return http.StatusInternalServerError, i18n.CodePartialFailure
	case errors.As(err, &rerr):
		return http.StatusBadGateway, i18n.CodeRemote
	default:
		return http.StatusInternalServerError, i18n.CodeInternal
	}
}

func (rs *Responder) message(r *http.Request, code string) string {
	return rs.tr.T(ctxutil.LocaleFromCtx(r.Context()), code)
}
