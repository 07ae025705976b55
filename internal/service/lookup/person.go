package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// GetPersonWithCases returns a person and its cases, newest first.
// A missing person is reported as domain.ErrNotFound.
func (s *Service) GetPersonWithCases(ctx context.Context, personID uuid.UUID) (*domain.PersonWithCases, error) {
	person, err := s.people.GetByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("lookup.GetPersonWithCases: %w", err)
	}

	cases, err := s.cases.ListByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("lookup.GetPersonWithCases: %w", err)
	}
	if cases == nil {
		cases = []domain.Case{}
	}

	return &domain.PersonWithCases{Person: *person, Cases: cases}, nil
}

// RecordLookup writes a search log row in the background. The write outlives
// ctx's cancellation but keeps its values; failures are logged and counted,
// never returned.
func (s *Service) RecordLookup(ctx context.Context, actingProfileID, personID uuid.UUID) {
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.logs.Insert(auditCtx, actingProfileID, personID); err != nil {
			s.metrics.IncrementSearchLogFailures()
			s.log.ErrorContext(auditCtx, "search log insert failed",
				slog.String("user_id", actingProfileID.String()),
				slog.String("person_id", personID.String()),
				slog.String("error", err.Error()))
		}
	}()
}

// SelectPerson is the selection action of the search screen: it records the
// lookup without waiting for it and loads the person's detail. The log row
// records the selection attempt, so it is written even when loading the
// detail fails.
func (s *Service) SelectPerson(ctx context.Context, actingProfileID, personID uuid.UUID) (*domain.PersonWithCases, error) {
	s.RecordLookup(ctx, actingProfileID, personID)
	return s.GetPersonWithCases(ctx, personID)
}
