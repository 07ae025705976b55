package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// ListUsers returns all profiles, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin.ListUsers: %w", err)
	}
	return users, nil
}

// CreateUser provisions an identity at the provider and then its profile.
// If the profile cannot be written the new identity is deleted again; when
// that also fails the error wraps domain.ErrPartialFailure.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.Profile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = domain.NormalizeName(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.idp.AdminCreateUser(ctx, input.Email, input.Password)
	if err != nil {
		s.metrics.IncrementAdminWrite("user", "create", err)
		return nil, fmt.Errorf("admin.CreateUser provision identity: %w", err)
	}

	profile, err := s.profiles.Create(ctx, domain.Profile{
		ID:                 identity.ID,
		Name:               input.Name,
		Email:              input.Email,
		Role:               input.Role,
		IsActive:           true,
		MustChangePassword: true,
	})
	if err != nil {
		s.metrics.IncrementAdminWrite("user", "create", err)
		if delErr := s.idp.AdminDeleteUser(ctx, identity.ID); delErr != nil {
			s.log.ErrorContext(ctx, "compensating identity delete failed",
				slog.String("identity_id", identity.ID.String()),
				slog.String("error", delErr.Error()))
			return nil, fmt.Errorf("admin.CreateUser: %w: identity %s kept: %w",
				domain.ErrPartialFailure, identity.ID, errors.Join(err, delErr))
		}
		s.log.WarnContext(ctx, "profile write failed, identity removed",
			slog.String("identity_id", identity.ID.String()))
		return nil, fmt.Errorf("admin.CreateUser create profile: %w", err)
	}

	s.metrics.IncrementAdminWrite("user", "create", nil)
	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", profile.ID.String()),
		slog.String("role", profile.Role.String()))

	return profile, nil
}

// UpdateUser changes the name, role or active flag of a profile. Admins
// cannot demote or disable themselves.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.Profile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if callerID == id {
		if input.Role != nil && *input.Role != domain.RoleAdmin {
			return nil, domain.NewValidationError("role", "cannot demote yourself")
		}
		if input.IsActive != nil && !*input.IsActive {
			return nil, domain.NewValidationError("is_active", "cannot disable yourself")
		}
	}

	patch := domain.ProfilePatch{Role: input.Role, IsActive: input.IsActive}
	if input.Name != nil {
		name := domain.NormalizeName(*input.Name)
		patch.Name = &name
	}

	profile, err := s.profiles.Update(ctx, id, patch)
	s.metrics.IncrementAdminWrite("user", "update", err)
	if err != nil {
		return nil, fmt.Errorf("admin.UpdateUser: %w", err)
	}

	s.userUpdated(ctx, id)
	s.log.InfoContext(ctx, "user updated",
		slog.String("target_user_id", id.String()),
		slog.String("role", profile.Role.String()),
		slog.Bool("is_active", profile.IsActive))

	return profile, nil
}

// ResetPassword sets a new credential for a user and forces a password
// change on their next use. The credential change cannot be undone, so a
// failure to set the flag is reported as domain.ErrPartialFailure.
func (s *Service) ResetPassword(ctx context.Context, id uuid.UUID, input ResetPasswordInput) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.idp.AdminSetPassword(ctx, id, input.Password); err != nil {
		s.metrics.IncrementAdminWrite("user", "reset_password", err)
		return fmt.Errorf("admin.ResetPassword: %w", err)
	}

	if err := s.profiles.SetMustChangePassword(ctx, id, true); err != nil {
		s.metrics.IncrementAdminWrite("user", "reset_password", err)
		s.log.ErrorContext(ctx, "password reset without forced change",
			slog.String("target_user_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("admin.ResetPassword: %w: password changed but flag not set: %w", domain.ErrPartialFailure, err)
	}

	s.metrics.IncrementAdminWrite("user", "reset_password", nil)
	s.userUpdated(ctx, id)
	s.log.InfoContext(ctx, "password reset", slog.String("target_user_id", id.String()))
	return nil
}
