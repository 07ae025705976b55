// Package profile provides access to the profiles table.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway"
)

const table = "profiles"

type row struct {
	ID                 uuid.UUID `json:"id"                   db:"id"`
	Name               string    `json:"name"                 db:"name"`
	Email              string    `json:"email"                db:"email"`
	Role               string    `json:"role"                 db:"role"`
	IsActive           bool      `json:"is_active"            db:"is_active"`
	MustChangePassword bool      `json:"must_change_password" db:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"           db:"created_at"`
}

func (r row) toDomain() (domain.Profile, error) {
	role, err := domain.ParseRole(r.Role)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profile %s: %w", r.ID, err)
	}
	return domain.Profile{
		ID:                 r.ID,
		Name:               r.Name,
		Email:              r.Email,
		Role:               role,
		IsActive:           r.IsActive,
		MustChangePassword: r.MustChangePassword,
		CreatedAt:          r.CreatedAt,
	}, nil
}

func toDomainList(rows []row) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(rows))
	for _, r := range rows {
		p, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Repo reads and writes profiles through a gateway.
type Repo struct {
	gw gateway.Gateway
}

// New creates a profile Repo.
func New(gw gateway.Gateway) *Repo {
	return &Repo{gw: gw}
}

// GetByID returns the profile for identity id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).Eq("id", id).WithLimit(1), &rows); err != nil {
		return nil, fmt.Errorf("profile.GetByID: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	p, err := rows[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all profiles, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).OrderBy("created_at", true), &rows); err != nil {
		return nil, fmt.Errorf("profile.List: %w", err)
	}
	return toDomainList(rows)
}

// ListByIDs returns the profiles whose id is in ids, in no particular order.
func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return []domain.Profile{}, nil
	}
	var rows []row
	if err := r.gw.Select(ctx, gateway.From(table).In("id", toAny(ids)...), &rows); err != nil {
		return nil, fmt.Errorf("profile.ListByIDs: %w", err)
	}
	return toDomainList(rows)
}

// Create inserts a profile row for an existing identity.
func (r *Repo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	var out row
	values := gateway.Values{
		"id":                   p.ID,
		"name":                 p.Name,
		"email":                p.Email,
		"role":                 string(p.Role),
		"is_active":            p.IsActive,
		"must_change_password": p.MustChangePassword,
	}
	if err := r.gw.Insert(ctx, table, values, &out); err != nil {
		return nil, fmt.Errorf("profile.Create: %w", err)
	}
	created, err := out.toDomain()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies patch to profile id and returns the stored profile.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	values := gateway.Values{}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.Role != nil {
		values["role"] = string(*patch.Role)
	}
	if patch.IsActive != nil {
		values["is_active"] = *patch.IsActive
	}
	if patch.MustChangePassword != nil {
		values["must_change_password"] = *patch.MustChangePassword
	}

	var rows []row
	if err := r.gw.Update(ctx, gateway.From(table).Eq("id", id), values, &rows); err != nil {
		return nil, fmt.Errorf("profile.Update: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	p, err := rows[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetMustChangePassword sets or clears the forced password change flag.
func (r *Repo) SetMustChangePassword(ctx context.Context, id uuid.UUID, v bool) error {
	_, err := r.Update(ctx, id, domain.ProfilePatch{MustChangePassword: &v})
	return err
}

func toAny(ids []uuid.UUID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
