package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/auth"
	"github.com/heartmarshall/caselookup-backend/internal/config"
	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
)

// identityProvider defines the identity provider operations needed by the session service.
type identityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthSession, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, accessToken, password string) error
}

// profileRepo defines the profile repository interface needed by the session service.
type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	SetMustChangePassword(ctx context.Context, id uuid.UUID, v bool) error
}

// tokenManager issues the bearer tokens handed to clients.
type tokenManager interface {
	Issue(sessionID, identityID uuid.UUID) (string, error)
	Validate(token string) (auth.Claims, error)
	TTL() time.Duration
}

// eventBus is the identity change stream.
type eventBus interface {
	Publish(ctx context.Context, ev domain.AuthEvent)
	Subscribe() (<-chan domain.AuthEvent, func())
}

// Service implements session and authorization operations.
type Service struct {
	log      *slog.Logger
	idp      identityProvider
	profiles profileRepo
	tokens   tokenManager
	bus      eventBus
	metrics  *metrics.Metrics
	registry *Registry
	cfg      config.SessionConfig
	now      func() time.Time
}

// NewService creates a new session service instance.
func NewService(
	logger *slog.Logger,
	idp identityProvider,
	profiles profileRepo,
	tokens tokenManager,
	bus eventBus,
	m *metrics.Metrics,
	cfg config.SessionConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "session"),
		idp:      idp,
		profiles: profiles,
		tokens:   tokens,
		bus:      bus,
		metrics:  m,
		registry: NewRegistry(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Registry returns the sessions owned by the service.
func (s *Service) Registry() *Registry { return s.registry }

func (s *Service) publish(ctx context.Context, typ domain.AuthEventType, identityID, sessionID uuid.UUID) {
	s.bus.Publish(ctx, domain.AuthEvent{
		Type:       typ,
		IdentityID: identityID,
		SessionID:  sessionID,
		At:         s.now(),
	})
}

func (s *Service) register(sess *Session) {
	s.registry.Add(sess)
	s.metrics.SetActiveSessions(s.registry.Len())
}

func (s *Service) unregister(sess *Session) {
	s.registry.Remove(sess.ID())
	sess.clear()
	s.metrics.SetActiveSessions(s.registry.Len())
}
