package middleware

import (
	"net/http"

	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// RequireProfile lets through only sessions whose profile is active and
// has no pending forced password change. Must run after Auth.
func RequireProfile(rs *respond.Responder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := authorizationFromCtx(r.Context())
			switch {
			case !ok:
				rs.Fail(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
			case !a.Active:
				rs.Fail(w, r, http.StatusForbidden, i18n.CodeAccountDisabled)
			case a.MustChangePassword:
				rs.Fail(w, r, http.StatusForbidden, i18n.CodePasswordChange)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAdmin rejects callers without the admin role with 403.
// Services check the role again.
func RequireAdmin(rs *respond.Responder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ctxutil.IsAdminCtx(r.Context()) {
				rs.Fail(w, r, http.StatusForbidden, i18n.CodeForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionStack authenticates the caller. Routes behind it work with any
// live session, including one that still has to change its password.
func SessionStack(auth sessionAuthenticator, rs *respond.Responder) Middleware {
	return Chain(Auth(auth, rs))
}

// ProfileStack authenticates the caller and requires a usable profile.
func ProfileStack(auth sessionAuthenticator, rs *respond.Responder) Middleware {
	return Chain(Auth(auth, rs), RequireProfile(rs))
}

// AdminStack is ProfileStack plus the admin role.
func AdminStack(auth sessionAuthenticator, rs *respond.Responder) Middleware {
	return Chain(Auth(auth, rs), RequireProfile(rs), RequireAdmin(rs))
}
