// Package cases provides access to the cases table.
package cases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

const table = "cases"

type row struct {
	ID          uuid.UUID   `json:"id"           db:"id"`
	PersonID    uuid.UUID   `json:"person_id"    db:"person_id"`
	CaseType    string      `json:"case_type"    db:"case_type"`
	CourtName   string      `json:"court_name"   db:"court_name"`
	CaseNumber  string      `json:"case_number"  db:"case_number"`
	SessionDate pgtype.Date `json:"session_date" db:"session_date"`
	Decision    *string     `json:"decision"     db:"decision"`
	Status      string      `json:"status"       db:"status"`
	CreatedAt   time.Time   `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"   db:"updated_at"`
}

func (r row) toDomain() domain.Case {
	c := domain.Case{
		ID:         r.ID,
		PersonID:   r.PersonID,
		CaseType:   r.CaseType,
		CourtName:  r.CourtName,
		CaseNumber: r.CaseNumber,
		Decision:   r.Decision,
		Status:     domain.CaseStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.SessionDate.Valid {
		d := r.SessionDate.Time
		c.SessionDate = &d
	}
	return c
}

func toDomainList(rows []row) []domain.Case {
	out := make([]domain.Case, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

func values(in domain.CaseInput) gateway.Values {
	var date pgtype.Date
	if in.SessionDate != nil {
		date = pgtype.Date{Time: in.SessionDate.UTC().Truncate(24 * time.Hour), Valid: true}
	}
	return gateway.Values{
		"person_id":    in.PersonID,
		"case_type":    in.CaseType,
		"court_name":   in.CourtName,
		"case_number":  in.CaseNumber,
		"session_date": date,
		"decision":     in.Decision,
		"status":       string(in.Status),
	}
}

// Repo reads and writes cases through a gateway.
type Repo struct {
	gw gateway.Gateway
}

// New creates a case Repo.
func New(gw gateway.Gateway) *Repo {
	return &Repo{gw: gw}
}

// ListByPerson returns the cases of personID, newest first.
func (r *Repo) ListByPerson(ctx context.Context, personID uuid.UUID) ([]domain.Case, error) {
	q := gateway.From(table).Eq("person_id", personID).OrderBy("created_at", true)

	var rows []row
	if err := r.gw.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("cases.ListByPerson: %w", err)
	}
	return toDomainList(rows), nil
}

// CountByPerson returns how many cases personID owns.
func (r *Repo) CountByPerson(ctx context.Context, personID uuid.UUID) (int, error) {
	n, err := r.gw.Count(ctx, gateway.From(table).Eq("person_id", personID))
	if err != nil {
		return 0, fmt.Errorf("cases.CountByPerson: %w", err)
	}
	return n, nil
}

// List returns all cases, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Case, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).OrderBy("created_at", true), &rows); err != nil {
		return nil, fmt.Errorf("cases.List: %w", err)
	}
	return toDomainList(rows), nil
}

// GetByID returns case id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).Eq("id", id).WithLimit(1), &rows); err != nil {
		return nil, fmt.Errorf("cases.GetByID: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	c := rows[0].toDomain()
	return &c, nil
}

// Create inserts a case.
func (r *Repo) Create(ctx context.Context, in domain.CaseInput) (*domain.Case, error) {
	var out row
	if err := r.gw.Insert(ctx, table, values(in), &out); err != nil {
		return nil, fmt.Errorf("cases.Create: %w", err)
	}
	c := out.toDomain()
	return &c, nil
}

// Update replaces the writable fields of case id.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, in domain.CaseInput) (*domain.Case, error) {
	var rows []row
	if err := r.gw.Update(ctx, gateway.From(table).Eq("id", id), values(in), &rows); err != nil {
		return nil, fmt.Errorf("cases.Update: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	c := rows[0].toDomain()
	return &c, nil
}

// Delete removes case id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.gw.Delete(ctx, gateway.From(table).Eq("id", id))
	if err != nil {
		return fmt.Errorf("cases.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
