package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an authenticated subject at the external identity provider.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// AuthSession is a provider session: the identity plus the tokens needed to
// act on its behalf.
type AuthSession struct {
	Identity     Identity
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// IsExpired reports whether the access token has expired relative to now.
func (s *AuthSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}

// AuthEventType identifies an authentication state change.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "signed_in"
	AuthEventSignedOut      AuthEventType = "signed_out"
	AuthEventTokenRefreshed AuthEventType = "token_refreshed"
	AuthEventUserUpdated    AuthEventType = "user_updated"
)

func (t AuthEventType) String() string { return string(t) }

// AuthEvent is one entry of the identity change stream.
type AuthEvent struct {
	Type       AuthEventType
	IdentityID uuid.UUID
	// SessionID is set when the event originates from a specific session;
	// that session does not need to react to its own event.
	SessionID uuid.UUID
	At        time.Time
}
