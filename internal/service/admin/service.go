package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// SearchLogLimit is how many log entries ListSearchLogs returns.
const SearchLogLimit = 100

// identityAdmin defines the privileged identity provider operations needed by the admin service.
type identityAdmin interface {
	AdminCreateUser(ctx context.Context, email, password string) (*domain.Identity, error)
	AdminSetPassword(ctx context.Context, id uuid.UUID, password string) error
	AdminDeleteUser(ctx context.Context, id uuid.UUID) error
}

// profileRepo defines the profile repository interface needed by the admin service.
type profileRepo interface {
	List(ctx context.Context) ([]domain.Profile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error)
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error)
	SetMustChangePassword(ctx context.Context, id uuid.UUID, v bool) error
}

// personRepo defines the person repository interface needed by the admin service.
type personRepo interface {
	List(ctx context.Context) ([]domain.Person, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Person, error)
	Create(ctx context.Context, in domain.PersonInput) (*domain.Person, error)
	Update(ctx context.Context, id uuid.UUID, in domain.PersonInput) (*domain.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// caseRepo defines the case repository interface needed by the admin service.
type caseRepo interface {
	List(ctx context.Context) ([]domain.Case, error)
	Create(ctx context.Context, in domain.CaseInput) (*domain.Case, error)
	Update(ctx context.Context, id uuid.UUID, in domain.CaseInput) (*domain.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// searchLogRepo defines the search log repository interface needed by the admin service.
type searchLogRepo interface {
	ListRecent(ctx context.Context, limit int) ([]domain.SearchLog, error)
}

// eventPublisher announces identity changes to open sessions.
type eventPublisher interface {
	Publish(ctx context.Context, ev domain.AuthEvent)
}

// Service implements the admin console operations.
type Service struct {
	log      *slog.Logger
	idp      identityAdmin
	profiles profileRepo
	people   personRepo
	cases    caseRepo
	logs     searchLogRepo
	events   eventPublisher
	metrics  *metrics.Metrics
}

// NewService creates a new admin service instance.
func NewService(
	logger *slog.Logger,
	idp identityAdmin,
	profiles profileRepo,
	people personRepo,
	cases caseRepo,
	logs searchLogRepo,
	events eventPublisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		log:      logger.With("service", "admin"),
		idp:      idp,
		profiles: profiles,
		people:   people,
		cases:    cases,
		logs:     logs,
		events:   events,
		metrics:  m,
	}
}

func requireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) userUpdated(ctx context.Context, id uuid.UUID) {
	s.events.Publish(ctx, domain.AuthEvent{
		Type:       domain.AuthEventUserUpdated,
		IdentityID: id,
		At:         time.Now(),
	})
}
