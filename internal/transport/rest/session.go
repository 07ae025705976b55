package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
	"github.com/heartmarshall/caselookup-backend/internal/transport/middleware"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
)

// sessionService defines the session operations exposed over HTTP.
type sessionService interface {
	SignIn(ctx context.Context, input session.SignInInput) (*session.Result, error)
	Restore(ctx context.Context, input session.RestoreInput) (*session.Result, error)
	SignOut(ctx context.Context, sess *session.Session)
	UpdatePassword(ctx context.Context, sess *session.Session, input session.UpdatePasswordInput) error
	RefreshProfile(ctx context.Context, sess *session.Session) (*domain.Profile, error)
}

// SessionHandler serves sign-in, sign-out and the caller's own view.
type SessionHandler struct {
	svc sessionService
	rs  *respond.Responder
	log *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc sessionService, rs *respond.Responder, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, rs: rs, log: logger.With("handler", "session")}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type restoreRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type passwordRequest struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// SignIn handles POST /auth/sign-in.
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	res, err := h.svc.SignIn(r.Context(), session.SignInInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.rs.Fail(w, r, http.StatusUnauthorized, i18n.CodeInvalidCredentials)
			return
		}
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toSessionResponse(res))
}

// Restore handles POST /auth/restore: it adopts a provider session the
// client already holds.
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	res, err := h.svc.Restore(r.Context(), session.RestoreInput{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toSessionResponse(res))
}

// SignOut handles POST /auth/sign-out. It always succeeds locally.
func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.svc.SignOut(r.Context(), middleware.SessionFromCtx(r.Context()))
	h.rs.NoContent(w)
}

// UpdatePassword handles POST /auth/password.
func (h *SessionHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !h.rs.Decode(w, r, &req) {
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	err := h.svc.UpdatePassword(r.Context(), sess, session.UpdatePasswordInput{
		Password: req.Password,
		Confirm:  req.Confirm,
	})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}
	h.rs.JSON(w, http.StatusOK, toViewResponse(sess))
}

// Me handles GET /me. The profile is re-read, so a disabled account is
// signed out here.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	profile, err := h.svc.RefreshProfile(r.Context(), sess)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	type meResponse struct {
		Profile    *profileResponse `json:"profile"`
		Active     bool             `json:"active"`
		MustChange bool             `json:"must_change_password"`
		IsAdmin    bool             `json:"is_admin"`
		Screen     string           `json:"screen"`
	}
	resp := meResponse{Profile: toProfileResponse(profile), Screen: sess.Route().String()}
	if a, ok := sess.Authorization(); ok {
		resp.Active = a.Active
		resp.MustChange = a.MustChangePassword
		resp.IsAdmin = a.Role.IsAdmin()
	}
	h.rs.JSON(w, http.StatusOK, resp)
}

// View handles GET /view.
func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	h.rs.JSON(w, http.StatusOK, toViewResponse(middleware.SessionFromCtx(r.Context())))
}

// Back handles POST /view/back.
func (h *SessionHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	sess.Navigator().Back()
	h.rs.JSON(w, http.StatusOK, toViewResponse(sess))
}
