package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is a searchable subject owning zero or more cases.
type Person struct {
	ID         uuid.UUID
	FullName   string
	NationalID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PersonWithCaseCount is a search result row.
type PersonWithCaseCount struct {
	Person
	CaseCount int
}

// PersonWithCases is the person detail read model.
type PersonWithCases struct {
	Person
	Cases []Case
}

// PersonInput is the writable part of a Person.
type PersonInput struct {
	FullName   string
	NationalID *string
}

// Normalize trims the name and turns a blank national id into nil.
func (in PersonInput) Normalize() PersonInput {
	in.FullName = NormalizeName(in.FullName)
	if in.NationalID != nil {
		nid := NormalizeName(*in.NationalID)
		if nid == "" {
			in.NationalID = nil
		} else {
			in.NationalID = &nid
		}
	}
	return in
}

// Validate checks required fields.
func (in PersonInput) Validate() error {
	if NormalizeName(in.FullName) == "" {
		return NewValidationError("full_name", "required")
	}
	return nil
}
