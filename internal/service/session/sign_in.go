package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// SignIn authenticates at the identity provider and opens a session.
// An inactive profile fails with ErrAccountDisabled after the identity has
// been signed out again; a missing profile still opens a session, which the
// view router treats as signed out.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (*Result, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	authSess, err := s.idp.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrValidation) {
			s.metrics.IncrementSignIn("invalid_credentials")
			return nil, domain.ErrUnauthorized
		}
		s.metrics.IncrementSignIn("error")
		return nil, fmt.Errorf("session.SignIn: %w", err)
	}

	profile, err := s.loadProfile(ctxutil.WithAccessToken(ctx, authSess.AccessToken), authSess.Identity)
	if err != nil {
		s.revoke(ctx, authSess.AccessToken)
		s.metrics.IncrementSignIn("error")
		return nil, fmt.Errorf("session.SignIn: %w", err)
	}
	if profile != nil && !profile.IsActive {
		s.revoke(ctx, authSess.AccessToken)
		s.metrics.IncrementSignIn("disabled")
		s.log.InfoContext(ctx, "sign-in rejected for disabled account",
			slog.String("user_id", profile.ID.String()))
		return nil, domain.ErrAccountDisabled
	}

	sess := newSession(s.now())
	sess.setAuth(authSess)
	sess.setProfile(profile)

	result, err := s.open(ctx, sess)
	if err != nil {
		s.revoke(ctx, authSess.AccessToken)
		s.metrics.IncrementSignIn("error")
		return nil, fmt.Errorf("session.SignIn: %w", err)
	}

	s.metrics.IncrementSignIn("success")
	s.log.InfoContext(ctx, "user signed in",
		slog.String("user_id", authSess.Identity.ID.String()),
		slog.Bool("has_profile", profile != nil))

	return result, nil
}

// loadProfile fetches the profile of identity. A missing row is not an error.
func (s *Service) loadProfile(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "identity has no profile",
				slog.String("user_id", identity.ID.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// open registers sess and issues its bearer token.
func (s *Service) open(ctx context.Context, sess *Session) (*Result, error) {
	identityID := sess.IdentityID()
	token, err := s.tokens.Issue(sess.ID(), identityID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.register(sess)
	s.publish(ctx, domain.AuthEventSignedIn, identityID, sess.ID())

	return &Result{
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TTL()),
		Session:   sess,
	}, nil
}

// revoke signs a provider session out, logging failures.
func (s *Service) revoke(ctx context.Context, accessToken string) {
	if accessToken == "" {
		return
	}
	if err := s.idp.SignOut(ctx, accessToken); err != nil {
		s.log.WarnContext(ctx, "provider sign-out failed", slog.String("error", err.Error()))
	}
}
