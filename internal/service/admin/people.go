package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// ListPeople returns all people ordered by full name.
func (s *Service) ListPeople(ctx context.Context) ([]domain.Person, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	people, err := s.people.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.ListPeople: %w", err)
	}
	return people, nil
}

// CreatePerson adds a person.
func (s *Service) CreatePerson(ctx context.Context, input domain.PersonInput) (*domain.Person, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.people.Create(ctx, input)
	s.metrics.IncrementAdminWrite("person", "create", err)
	if err != nil {
		return nil, fmt.Errorf("admin.CreatePerson: %w", err)
	}

	s.log.InfoContext(ctx, "person created", slog.String("person_id", p.ID.String()))
	return p, nil
}

// UpdatePerson replaces the writable fields of a person.
func (s *Service) UpdatePerson(ctx context.Context, id uuid.UUID, input domain.PersonInput) (*domain.Person, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.people.Update(ctx, id, input)
	s.metrics.IncrementAdminWrite("person", "update", err)
	if err != nil {
		return nil, fmt.Errorf("admin.UpdatePerson: %w", err)
	}
	return p, nil
}

// DeletePerson removes a person and, through the store, all of its cases.
// confirm must be true.
func (s *Service) DeletePerson(ctx context.Context, id uuid.UUID, confirm bool) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationRequired
	}

	err := s.people.Delete(ctx, id)
	s.metrics.IncrementAdminWrite("person", "delete", err)
	if err != nil {
		return fmt.Errorf("admin.DeletePerson: %w", err)
	}

	s.log.InfoContext(ctx, "person deleted", slog.String("person_id", id.String()))
	return nil
}
