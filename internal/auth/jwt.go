package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any session token that fails validation.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the validated content of a session token.
type Claims struct {
	SessionID  uuid.UUID
	IdentityID uuid.UUID
	ExpiresAt  time.Time
}

// TokenManager issues and validates the bearer tokens that bind a browser
// to a server-side session. The token only names the session; all
// authorization state lives in the session registry.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a token manager. An empty secret makes the manager
// generate a random one, so tokens do not survive a restart.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		var err error
		key, err = randomSecret()
		if err != nil {
			return nil, fmt.Errorf("auth.NewTokenManager: %w", err)
		}
	}
	return &TokenManager{
		secret: key,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

type sessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Issue creates a signed HS256 token with the identity as subject and the
// session id in the sid claim.
func (m *TokenManager) Issue(sessionID, identityID uuid.UUID) (string, error) {
	now := m.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID: sessionID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and validates a session token.
func (m *TokenManager) Validate(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: invalid sid: %w", ErrInvalidToken, err)
	}
	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: invalid subject: %w", ErrInvalidToken, err)
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return Claims{SessionID: sid, IdentityID: sub, ExpiresAt: exp}, nil
}

func randomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}
	return []byte(base64.RawURLEncoding.EncodeToString(b)), nil
}

// UnverifiedExpiry reads the exp claim of a token issued by someone else
// without checking its signature. It returns the zero time when the token
// is not a JWT or carries no expiry.
func UnverifiedExpiry(tokenString string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
