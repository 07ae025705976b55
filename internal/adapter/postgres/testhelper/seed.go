package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates an active profile with the given role.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Profile {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	p := domain.Profile{
		ID:        uuid.New(),
		Name:      "Test User " + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, name, email, role, is_active, must_change_password, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Email, string(p.Role), p.IsActive, p.MustChangePassword, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedPerson creates a person with a unique name based on prefix.
func SeedPerson(t *testing.T, pool *pgxpool.Pool, prefix string) domain.Person {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Person{
		ID:        uuid.New(),
		FullName:  prefix + " " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO people (id, full_name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.FullName, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPerson: %v", err)
	}

	return p
}

// SeedCase creates an Open case owned by personID.
func SeedCase(t *testing.T, pool *pgxpool.Pool, personID uuid.UUID) domain.Case {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Case{
		ID:         uuid.New(),
		PersonID:   personID,
		CaseType:   "Civil",
		CourtName:  "Court " + suffix,
		CaseNumber: "CN-" + suffix,
		Status:     domain.CaseStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO cases (id, person_id, case_type, court_name, case_number, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.PersonID, c.CaseType, c.CourtName, c.CaseNumber, string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCase: %v", err)
	}

	return c
}
