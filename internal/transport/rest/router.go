package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/caselookup-backend/internal/config"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
	"github.com/heartmarshall/caselookup-backend/internal/transport/middleware"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
	AuthorizedContext(ctx context.Context, sess *session.Session) (context.Context, error)
}

// RouterDeps holds everything the HTTP surface is built from.
type RouterDeps struct {
	Logger      *slog.Logger
	Responder   *respond.Responder
	Metrics     *metrics.Metrics
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	SignInLimit int

	Auth    authenticator
	Session *SessionHandler
	Lookup  *LookupHandler
	Admin   *AdminHandler
	Health  *HealthHandler
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	rs := d.Responder
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.Locale(rs.Translator()),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger, rs),
		middleware.Metrics(d.Metrics),
		middleware.CORS(d.CORS),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rs.Fail(w, r, http.StatusNotFound, i18n.CodeNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rs.Fail(w, r, http.StatusMethodNotAllowed, i18n.CodeNotFound)
	})

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(d.RateLimiter.Limit(d.SignInLimit))
		r.Post("/auth/sign-in", d.Session.SignIn)
		r.Post("/auth/restore", d.Session.Restore)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionStack(d.Auth, rs))

		r.Post("/auth/sign-out", d.Session.SignOut)
		r.Post("/auth/password", d.Session.UpdatePassword)
		r.Get("/me", d.Session.Me)
		r.Get("/view", d.Session.View)
		r.Post("/view/back", d.Session.Back)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.ProfileStack(d.Auth, rs))

		r.Get("/people/search", d.Lookup.Search)
		r.Get("/people/{id}", d.Lookup.Get)
		r.Post("/people/{id}/select", d.Lookup.Select)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminStack(d.Auth, rs))

		r.Get("/users", d.Admin.ListUsers)
		r.Post("/users", d.Admin.CreateUser)
		r.Patch("/users/{id}", d.Admin.UpdateUser)
		r.Post("/users/{id}/reset-password", d.Admin.ResetPassword)

		r.Get("/people", d.Admin.ListPeople)
		r.Post("/people", d.Admin.CreatePerson)
		r.Put("/people/{id}", d.Admin.UpdatePerson)
		r.Delete("/people/{id}", d.Admin.DeletePerson)

		r.Get("/cases", d.Admin.ListCases)
		r.Post("/cases", d.Admin.CreateCase)
		r.Put("/cases/{id}", d.Admin.UpdateCase)
		r.Delete("/cases/{id}", d.Admin.DeleteCase)

		r.Get("/search-logs", d.Admin.ListSearchLogs)
	})

	return r
}
