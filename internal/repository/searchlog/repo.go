// Package searchlog provides access to the append-only search_logs table.
package searchlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

const table = "search_logs"

type row struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	UserID     uuid.UUID `json:"user_id"     db:"user_id"`
	PersonID   uuid.UUID `json:"person_id"   db:"person_id"`
	SearchedAt time.Time `json:"searched_at" db:"searched_at"`
}

// Repo appends and reads search logs through a gateway.
type Repo struct {
	gw gateway.Gateway
}

// New creates a search log Repo.
func New(gw gateway.Gateway) *Repo {
	return &Repo{gw: gw}
}

// Insert appends one log row; searched_at is set by the store.
func (r *Repo) Insert(ctx context.Context, userID, personID uuid.UUID) error {
	values := gateway.Values{"user_id": userID, "person_id": personID}
	if err := r.gw.Insert(ctx, table, values, nil); err != nil {
		return fmt.Errorf("searchlog.Insert: %w", err)
	}
	return nil
}

// ListRecent returns the latest limit logs, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.SearchLog, error) {
	q := gateway.From(table).OrderBy("searched_at", true).WithLimit(limit)

	var rows []row
	if err := r.gw.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("searchlog.ListRecent: %w", err)
	}

	out := make([]domain.SearchLog, len(rows))
	for i, rw := range rows {
		out[i] = domain.SearchLog{
			ID:         rw.ID,
			UserID:     rw.UserID,
			PersonID:   rw.PersonID,
			SearchedAt: rw.SearchedAt,
		}
	}
	return out, nil
}

// CountByPerson returns how many times personID was looked up.
func (r *Repo) CountByPerson(ctx context.Context, personID uuid.UUID) (int, error) {
	n, err := r.gw.Count(ctx, gateway.From(table).Eq("person_id", personID))
	if err != nil {
		return 0, fmt.Errorf("searchlog.CountByPerson: %w", err)
	}
	return n, nil
}
