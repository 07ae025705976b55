package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// ListCases returns all cases, newest first, each with its person.
func (s *Service) ListCases(ctx context.Context) ([]domain.CaseWithPerson, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.ListCases: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(cases))
	seen := make(map[uuid.UUID]bool, len(cases))
	for _, c := range cases {
		if !seen[c.PersonID] {
			seen[c.PersonID] = true
			ids = append(ids, c.PersonID)
		}
	}
	people, err := s.people.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("admin.ListCases: %w", err)
	}
	byID := make(map[uuid.UUID]domain.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	out := make([]domain.CaseWithPerson, len(cases))
	for i, c := range cases {
		out[i].Case = c
		if p, ok := byID[c.PersonID]; ok {
			out[i].Person = &p
		}
	}
	return out, nil
}

// CreateCase adds a case to a person.
func (s *Service) CreateCase(ctx context.Context, input domain.CaseInput) (*domain.Case, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cases.Create(ctx, input)
	s.metrics.IncrementAdminWrite("case", "create", err)
	if err != nil {
		return nil, fmt.Errorf("admin.CreateCase: %w", err)
	}

	s.log.InfoContext(ctx, "case created",
		slog.String("case_id", c.ID.String()),
		slog.String("person_id", c.PersonID.String()))
	return c, nil
}

// UpdateCase replaces the writable fields of a case.
func (s *Service) UpdateCase(ctx context.Context, id uuid.UUID, input domain.CaseInput) (*domain.Case, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cases.Update(ctx, id, input)
	s.metrics.IncrementAdminWrite("case", "update", err)
	if err != nil {
		return nil, fmt.Errorf("admin.UpdateCase: %w", err)
	}
	return c, nil
}

// DeleteCase removes a case. confirm must be true.
func (s *Service) DeleteCase(ctx context.Context, id uuid.UUID, confirm bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationRequired
	}

	err := s.cases.Delete(ctx, id)
	s.metrics.IncrementAdminWrite("case", "delete", err)
	if err != nil {
		return fmt.Errorf("admin.DeleteCase: %w", err)
	}

	s.log.InfoContext(ctx, "case deleted", slog.String("case_id", id.String()))
	return nil
}
