package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/caselookup-backend/internal/auth"
	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// Restore re-derives a session from an existing provider session. The
// session is registered in the loading state until the identity and profile
// are resolved.
func (s *Service) Restore(ctx context.Context, input RestoreInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sess := newSession(s.now())
	sess.setLoading(true)
	s.register(sess)

	authSess, err := s.resolveProviderSession(ctx, input)
	if err != nil {
		s.unregister(sess)
		return nil, fmt.Errorf("session.Restore: %w", err)
	}
	sess.setAuth(authSess)

	profile, err := s.loadProfile(ctxutil.WithAccessToken(ctx, authSess.AccessToken), authSess.Identity)
	if err != nil {
		s.unregister(sess)
		return nil, fmt.Errorf("session.Restore: %w", err)
	}
	if profile != nil && !profile.IsActive {
		s.unregister(sess)
		s.revoke(ctx, authSess.AccessToken)
		return nil, domain.ErrAccountDisabled
	}

	sess.setProfile(profile)
	sess.setLoading(false)

	result, err := s.open(ctx, sess)
	if err != nil {
		s.unregister(sess)
		return nil, fmt.Errorf("session.Restore: %w", err)
	}

	s.log.InfoContext(ctx, "session restored",
		slog.String("user_id", authSess.Identity.ID.String()),
		slog.String("session_id", sess.ID().String()))

	return result, nil
}

// resolveProviderSession looks up the identity behind an access token,
// falling back to the refresh token when the access token is rejected.
func (s *Service) resolveProviderSession(ctx context.Context, input RestoreInput) (*domain.AuthSession, error) {
	identity, err := s.idp.GetUser(ctx, input.AccessToken)
	if err == nil {
		return &domain.AuthSession{
			Identity:     *identity,
			AccessToken:  input.AccessToken,
			RefreshToken: input.RefreshToken,
			ExpiresAt:    auth.UnverifiedExpiry(input.AccessToken),
		}, nil
	}
	if !errors.Is(err, domain.ErrUnauthorized) || input.RefreshToken == "" {
		return nil, fmt.Errorf("get user: %w", err)
	}

	refreshed, err := s.idp.RefreshSession(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh provider session: %w", err)
	}
	return refreshed, nil
}
