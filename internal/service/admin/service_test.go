package admin

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/caselookup-backend/internal/authevents"
	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/internal/gateway/gatewaytest"
	"github.com/heartmarshall/caselookup-backend/internal/metrics"
	"github.com/heartmarshall/caselookup-backend/internal/repository/cases"
	"github.com/heartmarshall/caselookup-backend/internal/repository/person"
	"github.com/heartmarshall/caselookup-backend/internal/repository/profile"
	"github.com/heartmarshall/caselookup-backend/internal/repository/searchlog"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

//go:generate moq -out identity_admin_mock_test.go -pkg admin . identityAdmin

type fixture struct {
	mem      *gatewaytest.Memory
	idp      *identityAdminMock
	bus      *authevents.Bus
	svc      *Service
	profiles *profile.Repo
	people   *person.Repo
	cases    *cases.Repo
	logs     *searchlog.Repo
	adminID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := gatewaytest.NewMemory()
	mem.CascadeDelete("people", "cases", "person_id")
	mem.CascadeDelete("people", "search_logs", "person_id")

	idp := &identityAdminMock{
		AdminCreateUserFunc: func(ctx context.Context, email, password string) (*domain.Identity, error) {
			return &domain.Identity{ID: uuid.New(), Email: email}, nil
		},
		AdminSetPasswordFunc: func(ctx context.Context, id uuid.UUID, password string) error { return nil },
		AdminDeleteUserFunc:  func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	bus := authevents.NewBus(slog.Default(), 16)
	t.Cleanup(bus.Close)

	f := &fixture{
		mem:      mem,
		idp:      idp,
		bus:      bus,
		profiles: profile.New(mem),
		people:   person.New(mem),
		cases:    cases.New(mem),
		logs:     searchlog.New(mem),
		adminID:  uuid.New(),
	}
	f.svc = NewService(slog.Default(), idp, f.profiles, f.people, f.cases, f.logs, bus, metrics.New(nil))

	_, err := f.profiles.Create(context.Background(), domain.Profile{
		ID: f.adminID, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) adminCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), f.adminID)
	return ctxutil.WithRole(ctx, string(domain.RoleAdmin))
}

func lawyerCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithRole(ctx, string(domain.RoleLawyer))
}

func ptr[T any](v T) *T { return &v }

func validCreateUser() CreateUserInput {
	return CreateUserInput{Email: " New.Lawyer@Example.com ", Password: "secret1", Name: " New  Lawyer ", Role: domain.RoleLawyer}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	var out []string
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

// ─── Admin gate ─────────────────────────────────────────────────────────────

func TestService_RequiresAdmin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := lawyerCtx()
	id := uuid.New()

	calls := map[string]func() error{
		"ListUsers":      func() error { _, err := f.svc.ListUsers(ctx); return err },
		"CreateUser":     func() error { _, err := f.svc.CreateUser(ctx, validCreateUser()); return err },
		"UpdateUser":     func() error { _, err := f.svc.UpdateUser(ctx, id, UpdateUserInput{IsActive: ptr(false)}); return err },
		"ResetPassword":  func() error { return f.svc.ResetPassword(ctx, id, ResetPasswordInput{Password: "secret1"}) },
		"ListPeople":     func() error { _, err := f.svc.ListPeople(ctx); return err },
		"CreatePerson":   func() error { _, err := f.svc.CreatePerson(ctx, domain.PersonInput{FullName: "x"}); return err },
		"UpdatePerson":   func() error { _, err := f.svc.UpdatePerson(ctx, id, domain.PersonInput{FullName: "x"}); return err },
		"DeletePerson":   func() error { return f.svc.DeletePerson(ctx, id, true) },
		"ListCases":      func() error { _, err := f.svc.ListCases(ctx); return err },
		"CreateCase":     func() error { _, err := f.svc.CreateCase(ctx, domain.CaseInput{}); return err },
		"UpdateCase":     func() error { _, err := f.svc.UpdateCase(ctx, id, domain.CaseInput{}); return err },
		"DeleteCase":     func() error { return f.svc.DeleteCase(ctx, id, true) },
		"ListSearchLogs": func() error { _, err := f.svc.ListSearchLogs(ctx); return err },
	}

	before := len(f.mem.Calls())
	for name, call := range calls {
		assert.ErrorIs(t, call(), domain.ErrForbidden, name)
	}
	assert.Len(t, f.mem.Calls(), before, "no store call for non-admins")
	assert.Empty(t, f.idp.AdminCreateUserCalls())
	assert.Empty(t, f.idp.AdminSetPasswordCalls())
}

// ─── Users ──────────────────────────────────────────────────────────────────

func TestService_CreateUser_Success(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	created, err := f.svc.CreateUser(f.adminCtx(), validCreateUser())
	require.NoError(t, err)

	require.Len(t, f.idp.AdminCreateUserCalls(), 1)
	call := f.idp.AdminCreateUserCalls()[0]
	assert.Equal(t, "new.lawyer@example.com", call.Email)
	assert.Equal(t, "secret1", call.Password)

	assert.Equal(t, "New Lawyer", created.Name)
	assert.Equal(t, domain.RoleLawyer, created.Role)
	assert.True(t, created.IsActive)
	assert.True(t, created.MustChangePassword)

	users, err := f.svc.ListUsers(f.adminCtx())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, created.ID, users[0].ID, "newest first")
}

func TestService_CreateUser_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateUser(f.adminCtx(), CreateUserInput{Email: "not-an-email", Password: "123", Role: "guest"})

	assert.Equal(t, []string{"email", "password", "name", "role"}, fieldsOf(t, err))
	assert.Empty(t, f.idp.AdminCreateUserCalls())
}

func TestService_CreateUser_ProvisioningUnavailable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.idp.AdminCreateUserFunc = func(ctx context.Context, email, password string) (*domain.Identity, error) {
		return nil, domain.ErrProvisioningUnavailable
	}

	_, err := f.svc.CreateUser(f.adminCtx(), validCreateUser())

	require.ErrorIs(t, err, domain.ErrProvisioningUnavailable)
	assert.Equal(t, 1, f.mem.Rows("profiles"))
}

func TestService_CreateUser_CompensatesProfileFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	identityID := uuid.New()
	f.idp.AdminCreateUserFunc = func(ctx context.Context, email, password string) (*domain.Identity, error) {
		return &domain.Identity{ID: identityID, Email: email}, nil
	}
	f.mem.FailOn = func(op, table string) error {
		if op == "Insert" && table == "profiles" {
			return errors.New("permission denied for table profiles")
		}
		return nil
	}

	_, err := f.svc.CreateUser(f.adminCtx(), validCreateUser())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPartialFailure)
	require.Len(t, f.idp.AdminDeleteUserCalls(), 1)
	assert.Equal(t, identityID, f.idp.AdminDeleteUserCalls()[0].ID)
}

func TestService_CreateUser_CompensationFailureIsPartial(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.idp.AdminDeleteUserFunc = func(ctx context.Context, id uuid.UUID) error {
		return errors.New("provider unavailable")
	}
	f.mem.FailOn = func(op, table string) error {
		if op == "Insert" && table == "profiles" {
			return errors.New("permission denied for table profiles")
		}
		return nil
	}

	_, err := f.svc.CreateUser(f.adminCtx(), validCreateUser())

	assert.ErrorIs(t, err, domain.ErrPartialFailure)
}

func TestService_UpdateUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	target, err := f.svc.CreateUser(f.adminCtx(), validCreateUser())
	require.NoError(t, err)
	events, cancel := f.bus.Subscribe()
	defer cancel()

	updated, err := f.svc.UpdateUser(f.adminCtx(), target.ID, UpdateUserInput{
		Name:     ptr("  Renamed  "),
		Role:     ptr(domain.RoleAdmin),
		IsActive: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)

	select {
	case ev := <-events:
		assert.Equal(t, domain.AuthEventUserUpdated, ev.Type)
		assert.Equal(t, target.ID, ev.IdentityID)
	case <-time.After(time.Second):
		t.Fatal("expected user_updated event")
	}
}

func TestService_UpdateUser_SelfProtection(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.UpdateUser(f.adminCtx(), f.adminID, UpdateUserInput{Role: ptr(domain.RoleLawyer)})
	assert.Equal(t, []string{"role"}, fieldsOf(t, err))

	_, err = f.svc.UpdateUser(f.adminCtx(), f.adminID, UpdateUserInput{IsActive: ptr(false)})
	assert.Equal(t, []string{"is_active"}, fieldsOf(t, err))

	renamed, err := f.svc.UpdateUser(f.adminCtx(), f.adminID, UpdateUserInput{Name: ptr("Chief Admin")})
	require.NoError(t, err)
	assert.Equal(t, "Chief Admin", renamed.Name)
}

func TestService_UpdateUser_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.UpdateUser(f.adminCtx(), uuid.New(), UpdateUserInput{IsActive: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	target, err := f.profiles.Create(context.Background(), domain.Profile{
		ID: uuid.New(), Name: "Lawyer", Email: "l@example.com", Role: domain.RoleLawyer, IsActive: true,
	})
	require.NoError(t, err)
	events, cancel := f.bus.Subscribe()
	defer cancel()

	require.NoError(t, f.svc.ResetPassword(f.adminCtx(), target.ID, ResetPasswordInput{Password: "fresh-pass"}))

	require.Len(t, f.idp.AdminSetPasswordCalls(), 1)
	assert.Equal(t, "fresh-pass", f.idp.AdminSetPasswordCalls()[0].Password)
	got, err := f.profiles.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, got.MustChangePassword)
	assert.Equal(t, domain.AuthEventUserUpdated, (<-events).Type)
}

func TestService_ResetPassword_FlagFailureIsPartial(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.mem.FailOn = func(op, table string) error {
		if op == "Update" && table == "profiles" {
			return errors.New("update denied")
		}
		return nil
	}

	err := f.svc.ResetPassword(f.adminCtx(), uuid.New(), ResetPasswordInput{Password: "fresh-pass"})

	require.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Len(t, f.idp.AdminSetPasswordCalls(), 1)
}

func TestService_ResetPassword_ProviderFailureSkipsFlag(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.idp.AdminSetPasswordFunc = func(ctx context.Context, id uuid.UUID, password string) error {
		return domain.ErrNotFound
	}

	err := f.svc.ResetPassword(f.adminCtx(), uuid.New(), ResetPasswordInput{Password: "fresh-pass"})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.mem.CallCount("Update", "profiles"))
}

func TestService_ResetPassword_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.svc.ResetPassword(f.adminCtx(), uuid.New(), ResetPasswordInput{Password: "123"})

	assert.Equal(t, []string{"password"}, fieldsOf(t, err))
	assert.Empty(t, f.idp.AdminSetPasswordCalls())
}
