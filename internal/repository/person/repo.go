// Package person provides access to the people table.
package person

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

const table = "people"

type row struct {
	ID         uuid.UUID `json:"id"          db:"id"`
	FullName   string    `json:"full_name"   db:"full_name"`
	NationalID *string   `json:"national_id" db:"national_id"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"  db:"updated_at"`
}

func (r row) toDomain() domain.Person {
	return domain.Person{
		ID:         r.ID,
		FullName:   r.FullName,
		NationalID: r.NationalID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toDomainList(rows []row) []domain.Person {
	out := make([]domain.Person, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

func values(in domain.PersonInput) gateway.Values {
	return gateway.Values{
		"full_name":   in.FullName,
		"national_id": in.NationalID,
	}
}

// Repo reads and writes people through a gateway.
type Repo struct {
	gw gateway.Gateway
}

// New creates a person Repo.
func New(gw gateway.Gateway) *Repo {
	return &Repo{gw: gw}
}

// SearchByName returns people whose full name contains query
// (case-insensitive, taken literally), ordered by full name.
func (r *Repo) SearchByName(ctx context.Context, query string) ([]domain.Person, error) {
	q := gateway.From(table).
		ILike("full_name", gateway.ContainsPattern(query)).
		OrderBy("full_name", false)

	var rows []row
	if err := r.gw.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("person.SearchByName: %w", err)
	}
	if strings.Contains(query, "*") {
		rows = containing(rows, query)
	}
	return toDomainList(rows), nil
}

// containing keeps the rows whose name holds query literally. Some drivers
// can only approximate '*' inside a LIKE pattern.
func containing(rows []row, query string) []row {
	needle := strings.ToLower(query)
	out := rows[:0]
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.FullName), needle) {
			out = append(out, r)
		}
	}
	return out
}

// GetByID returns person id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).Eq("id", id).WithLimit(1), &rows); err != nil {
		return nil, fmt.Errorf("person.GetByID: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("person %s: %w", id, domain.ErrNotFound)
	}
	p := rows[0].toDomain()
	return &p, nil
}

// List returns all people ordered by full name.
func (r *Repo) List(ctx context.Context) ([]domain.Person, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).OrderBy("full_name", false), &rows); err != nil {
		return nil, fmt.Errorf("person.List: %w", err)
	}
	return toDomainList(rows), nil
}

// ListByIDs returns the people whose id is in ids, in no particular order.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Person, error) {
	if len(ids) == 0 {
		return []domain.Person{}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).In("id", args...), &rows); err != nil {
		return nil, fmt.Errorf("person.ListByIDs: %w", err)
	}
	return toDomainList(rows), nil
}

// Create inserts a person.
func (r *Repo) Create(ctx context.Context, in domain.PersonInput) (*domain.Person, error) {
	var out row
	if err := r.gw.Insert(ctx, table, values(in), &out); err != nil {
		return nil, fmt.Errorf("person.Create: %w", err)
	}
	p := out.toDomain()
	return &p, nil
}

// Update replaces the writable fields of person id.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, in domain.PersonInput) (*domain.Person, error) {
	var rows []row
	if err := r.gw.Update(ctx, gateway.From(table).Eq("id", id), values(in), &rows); err != nil {
		return nil, fmt.Errorf("person.Update: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("person %s: %w", id, domain.ErrNotFound)
	}
	p := rows[0].toDomain()
	return &p, nil
}

// Delete removes person id; the store cascades to its cases.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.gw.Delete(ctx, gateway.From(table).Eq("id", id))
	if err != nil {
		return fmt.Errorf("person.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("person %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
