package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a profile. The set is closed: values
// coming from the store or from requests go through ParseRole.
type Role string

const (
	RoleLawyer Role = "lawyer"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleLawyer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole converts a raw role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", NewValidationError("role", "must be 'admin' or 'lawyer'")
	}
	return r, nil
}

// Profile is the application-level user record, linked 1:1 to an identity
// at the identity provider (ID equals the identity subject id).
type Profile struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Role               Role
	IsActive           bool
	MustChangePassword bool
	CreatedAt          time.Time
}

// Authorization is the derived access state of a profile.
type Authorization struct {
	Active             bool
	MustChangePassword bool
	Role               Role
}

// Authorization derives the access state of the profile.
func (p *Profile) Authorization() Authorization {
	return Authorization{
		Active:             p.IsActive,
		MustChangePassword: p.MustChangePassword,
		Role:               p.Role,
	}
}

// ProfilePatch lists the mutable profile columns. Nil fields are left untouched.
type ProfilePatch struct {
	Name               *string
	Role               *Role
	IsActive           *bool
	MustChangePassword *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Role == nil && p.IsActive == nil && p.MustChangePassword == nil
}
