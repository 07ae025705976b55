package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
	"github.com/heartmarshall/caselookup-backend/internal/transport/respond"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

type sessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
	AuthorizedContext(ctx context.Context, sess *session.Session) (context.Context, error)
}

type ctxKey int

const (
	sessionKey ctxKey = iota
	authorizationKey
	holderKey
)

// identityHolder lets the outer Logger see who Auth resolved.
type identityHolder struct {
	userID    string
	sessionID string
}

func withIdentityHolder(ctx context.Context, h *identityHolder) context.Context {
	return context.WithValue(ctx, holderKey, h)
}

// Auth resolves the bearer token to a registered session. Requests without
// a valid token are rejected with 401. On success the context carries the
// session, its ids, the caller's role and a fresh provider access token.
func Auth(auth sessionAuthenticator, rs *respond.Responder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				rs.Fail(w, r, http.StatusUnauthorized, i18n.CodeUnauthorized)
				return
			}

			sess, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				rs.Error(w, r, err)
				return
			}
			ctx, err := auth.AuthorizedContext(r.Context(), sess)
			if err != nil {
				rs.Error(w, r, err)
				return
			}

			ctx = context.WithValue(ctx, sessionKey, sess)
			ctx = ctxutil.WithSessionID(ctx, sess.ID())
			holder, _ := ctx.Value(holderKey).(*identityHolder)
			if holder != nil {
				holder.sessionID = sess.ID().String()
			}
			if id := sess.IdentityID(); id != uuid.Nil {
				ctx = ctxutil.WithUserID(ctx, id)
				if holder != nil {
					holder.userID = id.String()
				}
			}
			if a, ok := sess.Authorization(); ok {
				ctx = ctxutil.WithRole(ctx, a.Role.String())
				ctx = withAuthorization(ctx, a)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx returns the session attached by Auth, or nil.
func SessionFromCtx(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

func withAuthorization(ctx context.Context, a domain.Authorization) context.Context {
	return context.WithValue(ctx, authorizationKey, a)
}

func authorizationFromCtx(ctx context.Context) (domain.Authorization, bool) {
	a, ok := ctx.Value(authorizationKey).(domain.Authorization)
	return a, ok
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
