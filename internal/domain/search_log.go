package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog is an immutable audit record of a person lookup.
type SearchLog struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	PersonID   uuid.UUID
	SearchedAt time.Time
}

// SearchLogEntry is a search log joined with the acting profile and the
// person looked up. Either side is nil when the referenced row is gone.
type SearchLogEntry struct {
	ID         uuid.UUID
	SearchedAt time.Time
	User       *SearchLogUser
	Person     *SearchLogPerson
}

// SearchLogUser is the profile projection shown in the audit log.
type SearchLogUser struct {
	Name  string
	Email string
}

// SearchLogPerson is the person projection shown in the audit log.
type SearchLogPerson struct {
	FullName   string
	NationalID *string
}
