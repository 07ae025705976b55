package middleware

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/service/session"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

//go:generate moq -out session_authenticator_mock_test.go -pkg middleware . sessionAuthenticator

type tokenCtxKey struct{}

func newAuthenticator(sess *session.Session) *sessionAuthenticatorMock {
	return &sessionAuthenticatorMock{
		AuthenticateFunc: func(ctx context.Context, token string) (*session.Session, error) {
			if token == "valid-token" {
				return sess, nil
			}
			return nil, fmt.Errorf("session.Authenticate: %w", domain.ErrUnauthorized)
		},
		AuthorizedContextFunc: func(ctx context.Context, s *session.Session) (context.Context, error) {
			return context.WithValue(ctx, tokenCtxKey{}, "provider-token"), nil
		},
	}
}

func TestAuth_ValidToken(t *testing.T) {
	sess := &session.Session{}
	auth := newAuthenticator(sess)

	var got *session.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromCtx(r.Context())
		assert.Equal(t, "provider-token", r.Context().Value(tokenCtxKey{}))
		_, hasSession := ctxutil.SessionIDFromCtx(r.Context())
		assert.False(t, hasSession, "zero session has a nil id")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	Auth(auth, testResponder())(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, sess, got)
	require.Len(t, auth.AuthorizedContextCalls(), 1)
	assert.Same(t, sess, auth.AuthorizedContextCalls()[0].Sess)
}

func TestAuth_InvalidToken(t *testing.T) {
	auth := newAuthenticator(&session.Session{})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for invalid token")
	})

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	rec := httptest.NewRecorder()

	Auth(auth, testResponder())(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	assert.Empty(t, auth.AuthorizedContextCalls())
}

func TestAuth_RefreshFailureRejects(t *testing.T) {
	auth := newAuthenticator(&session.Session{})
	auth.AuthorizedContextFunc = func(ctx context.Context, s *session.Session) (context.Context, error) {
		return nil, fmt.Errorf("session.AuthorizedContext: %w", domain.ErrUnauthorized)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called when the provider session is gone")
	})

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	Auth(auth, testResponder())(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auth := newAuthenticator(&session.Session{})
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/view", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			Auth(auth, testResponder())(handler).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, auth.AuthenticateCalls())
		})
	}
}

func TestAuth_LoggerSeesSession(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	auth := newAuthenticator(&session.Session{})

	handler := Chain(Logger(logger), Auth(auth, testResponder()))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/view/back", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"session_id":"00000000-0000-0000-0000-000000000000"`)
}

func TestExtractBearerToken_Cases(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header", "", ""},
		{"bearer with token", "Bearer valid-token", "valid-token"},
		{"bearer lowercase", "bearer valid-token", "valid-token"},
		{"bearer mixed case", "BEARER valid-token", "valid-token"},
		{"basic auth", "Basic dXNlcjpwYXNz", ""},
		{"bearer no space", "Bearertoken", ""},
		{"bearer empty token", "Bearer ", ""},
		{"just bearer", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, extractBearerToken(req))
		})
	}
}
