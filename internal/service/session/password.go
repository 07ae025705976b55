package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// UpdatePassword changes the credential of the signed-in identity and then
// clears its must-change-password flag. The flag is only touched after the
// provider accepted the new password; a failure to clear it is returned but
// the new password stays in effect.
func (s *Service) UpdatePassword(ctx context.Context, sess *Session, input UpdatePasswordInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	identityID := sess.IdentityID()
	if identityID == uuid.Nil {
		return domain.ErrUnauthorized
	}

	ctx, err := s.AuthorizedContext(ctx, sess)
	if err != nil {
		return fmt.Errorf("session.UpdatePassword: %w", err)
	}

	// The session may be signed out concurrently; the authorized context
	// still carries the token it was issued for.
	if err := s.idp.UpdatePassword(ctx, ctxutil.AccessTokenFromCtx(ctx), input.Password); err != nil {
		return fmt.Errorf("session.UpdatePassword provider: %w", err)
	}

	if err := s.profiles.SetMustChangePassword(ctx, identityID, false); err != nil {
		return fmt.Errorf("session.UpdatePassword clear flag: %w", err)
	}

	s.log.InfoContext(ctx, "password updated", slog.String("user_id", identityID.String()))
	s.publish(ctx, domain.AuthEventUserUpdated, identityID, sess.ID())

	if _, err := s.RefreshProfile(ctx, sess); err != nil {
		return fmt.Errorf("session.UpdatePassword: %w", err)
	}
	return nil
}
