package lookup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
)

const (
	defaultCountConcurrency = 8
	defaultAuditTimeout     = 10 * time.Second
)

// personRepo defines the person repository interface needed by the lookup service.
type personRepo interface {
	SearchByName(ctx context.Context, query string) ([]domain.Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
}

// caseRepo defines the case repository interface needed by the lookup service.
type caseRepo interface {
	CountByPerson(ctx context.Context, personID uuid.UUID) (int, error)
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]domain.Case, error)
}

// searchLogRepo defines the search log repository interface needed by the lookup service.
type searchLogRepo interface {
	Insert(ctx context.Context, userID, personID uuid.UUID) error
}

// Service implements person search and case lookup.
type Service struct {
	log     *slog.Logger
	people  personRepo
	cases   caseRepo
	logs    searchLogRepo
	metrics *metrics.Metrics

	countConcurrency int
	auditTimeout     time.Duration
	pending          sync.WaitGroup
}

// NewService creates a new lookup service instance.
func NewService(logger *slog.Logger, people personRepo, cases caseRepo, logs searchLogRepo, m *metrics.Metrics) *Service {
	return &Service{
		log:              logger.With("service", "lookup"),
		people:           people,
		cases:            cases,
		logs:             logs,
		metrics:          m,
		countConcurrency: defaultCountConcurrency,
		auditTimeout:     defaultAuditTimeout,
	}
}

// Wait blocks until every pending search log write has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}
