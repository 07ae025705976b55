package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// ListSearchLogs returns the latest search logs, newest first, with the
// acting user and the searched person. Entries whose user or person no
// longer resolves keep a nil reference.
func (s *Service) ListSearchLogs(ctx context.Context) ([]domain.SearchLogEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	logs, err := s.logs.ListRecent(ctx, SearchLogLimit)
	if err != nil {
		return nil, fmt.Errorf("admin.ListSearchLogs: %w", err)
	}

	var userIDs, personIDs []uuid.UUID
	seenUser := map[uuid.UUID]bool{}
	seenPerson := map[uuid.UUID]bool{}
	for _, l := range logs {
		if !seenUser[l.UserID] {
			seenUser[l.UserID] = true
			userIDs = append(userIDs, l.UserID)
		}
		if !seenPerson[l.PersonID] {
			seenPerson[l.PersonID] = true
			personIDs = append(personIDs, l.PersonID)
		}
	}

	users, err := s.profiles.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("admin.ListSearchLogs: %w", err)
	}
	people, err := s.people.ListByIDs(ctx, personIDs)
	if err != nil {
		return nil, fmt.Errorf("admin.ListSearchLogs: %w", err)
	}

	userByID := make(map[uuid.UUID]*domain.SearchLogUser, len(users))
	for _, u := range users {
		userByID[u.ID] = &domain.SearchLogUser{Name: u.Name, Email: u.Email}
	}
	personByID := make(map[uuid.UUID]*domain.SearchLogPerson, len(people))
	for _, p := range people {
		personByID[p.ID] = &domain.SearchLogPerson{FullName: p.FullName, NationalID: p.NationalID}
	}

	out := make([]domain.SearchLogEntry, len(logs))
	for i, l := range logs {
		out[i] = domain.SearchLogEntry{
			ID:         l.ID,
			SearchedAt: l.SearchedAt,
			User:       userByID[l.UserID],
			Person:     personByID[l.PersonID],
		}
	}
	return out, nil
}
