package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// SignOut ends the session. Local state is always cleared; a failure to
// invalidate the provider session is only logged.
func (s *Service) SignOut(ctx context.Context, sess *Session) {
	identityID := sess.IdentityID()
	var accessToken string
	if a := sess.authSession(); a != nil {
		accessToken = a.AccessToken
	}

	s.unregister(sess)
	s.revoke(ctx, accessToken)

	if identityID != uuid.Nil {
		s.publish(ctx, domain.AuthEventSignedOut, identityID, sess.ID())
	}

	s.log.InfoContext(ctx, "user signed out",
		slog.String("user_id", identityID.String()),
		slog.String("session_id", sess.ID().String()))
}
