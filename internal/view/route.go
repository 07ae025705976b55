// Package view decides which screen a session should render.
package view

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/caselookup-backend/internal/domain"
)

// Screen is one state of the view machine.
type Screen string

const (
	ScreenLoading                Screen = "loading"
	ScreenSignedOut              Screen = "signed_out"
	ScreenPasswordChangeRequired Screen = "password_change_required"
	ScreenAdminConsole           Screen = "admin_console"
	ScreenPersonDetail           Screen = "person_detail"
	ScreenSearchResults          Screen = "search_results"
)

func (s Screen) String() string { return string(s) }

// Input is everything Route looks at.
type Input struct {
	Loading          bool
	Identity         *domain.Identity
	Profile          *domain.Profile
	SelectedPersonID uuid.UUID
}

// Route evaluates the decision table in strict priority order.
func Route(in Input) Screen {
	switch {
	case in.Loading:
		return ScreenLoading
	case in.Identity == nil || in.Profile == nil:
		return ScreenSignedOut
	case in.Profile.MustChangePassword:
		return ScreenPasswordChangeRequired
	}

	switch in.Profile.Role {
	case domain.RoleAdmin:
		return ScreenAdminConsole
	case domain.RoleLawyer:
		if in.SelectedPersonID != uuid.Nil {
			return ScreenPersonDetail
		}
		return ScreenSearchResults
	}
	// Unknown roles never reach a profile, but fail closed.
	return ScreenSignedOut
}
