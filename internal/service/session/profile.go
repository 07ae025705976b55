package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// RefreshProfile re-fetches the profile of the signed-in identity. A profile
// that is no longer active ends the session with ErrAccountDisabled.
func (s *Service) RefreshProfile(ctx context.Context, sess *Session) (*domain.Profile, error) {
	st := sess.State()
	if st.Identity == nil {
		return nil, domain.ErrUnauthorized
	}

	ctx, err := s.AuthorizedContext(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("session.RefreshProfile: %w", err)
	}

	profile, err := s.loadProfile(ctx, *st.Identity)
	if err != nil {
		return nil, fmt.Errorf("session.RefreshProfile: %w", err)
	}

	if profile != nil && !profile.IsActive {
		s.log.InfoContext(ctx, "ending session of disabled account",
			slog.String("user_id", profile.ID.String()),
			slog.String("session_id", sess.ID().String()))
		s.SignOut(ctx, sess)
		return nil, domain.ErrAccountDisabled
	}

	sess.setProfile(profile)
	return profile, nil
}

// AuthorizedContext returns ctx carrying the session's provider access token,
// refreshing the token first when it has expired.
func (s *Service) AuthorizedContext(ctx context.Context, sess *Session) (context.Context, error) {
	a := sess.authSession()
	if a == nil {
		return nil, domain.ErrUnauthorized
	}

	if a.IsExpired(s.now()) {
		if a.RefreshToken == "" {
			return nil, domain.ErrUnauthorized
		}
		refreshed, err := s.idp.RefreshSession(ctx, a.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("refresh provider session: %w", err)
		}
		sess.setAuth(refreshed)
		a = refreshed
		s.log.DebugContext(ctx, "provider token refreshed",
			slog.String("session_id", sess.ID().String()))
		s.publish(ctx, domain.AuthEventTokenRefreshed, a.Identity.ID, sess.ID())
	}

	return ctxutil.WithAccessToken(ctx, a.AccessToken), nil
}

// Authenticate resolves the session a bearer token points to.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	sess, ok := s.registry.Get(claims.SessionID)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if sess.IdentityID() != claims.IdentityID {
		return nil, domain.ErrUnauthorized
	}

	sess.touch(s.now())
	return sess, nil
}
