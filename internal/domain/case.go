package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CaseStatus is the lifecycle state of a legal case.
type CaseStatus string

const (
	CaseStatusOpen    CaseStatus = "Open"
	CaseStatusPending CaseStatus = "Pending"
	CaseStatusClosed  CaseStatus = "Closed"
)

func (s CaseStatus) String() string { return string(s) }

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusOpen, CaseStatusPending, CaseStatusClosed:
		return true
	}
	return false
}

// Case is a legal matter owned by exactly one Person.
type Case struct {
	ID          uuid.UUID
	PersonID    uuid.UUID
	CaseType    string
	CourtName   string
	CaseNumber  string
	SessionDate *time.Time
	Decision    *string
	Status      CaseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CaseWithPerson is a case joined with its owner, used by admin listings.
// Person is nil when the owner row could not be resolved.
type CaseWithPerson struct {
	Case
	Person *Person
}

// CaseInput is the writable part of a Case.
type CaseInput struct {
	PersonID    uuid.UUID
	CaseType    string
	CourtName   string
	CaseNumber  string
	SessionDate *time.Time
	Decision    *string
	Status      CaseStatus
}

// Normalize trims free-text fields and turns a blank decision into nil.
func (in CaseInput) Normalize() CaseInput {
	in.CaseType = NormalizeName(in.CaseType)
	in.CourtName = NormalizeName(in.CourtName)
	in.CaseNumber = NormalizeName(in.CaseNumber)
	if in.Decision != nil {
		d := strings.TrimSpace(*in.Decision)
		if d == "" {
			in.Decision = nil
		} else {
			in.Decision = &d
		}
	}
	return in
}

// Validate checks required fields, reporting every missing one.
func (in CaseInput) Validate() error {
	var errs []FieldError
	if in.PersonID == uuid.Nil {
		errs = append(errs, FieldError{Field: "person_id", Message: "required"})
	}
	if strings.TrimSpace(in.CaseType) == "" {
		errs = append(errs, FieldError{Field: "case_type", Message: "required"})
	}
	if strings.TrimSpace(in.CourtName) == "" {
		errs = append(errs, FieldError{Field: "court_name", Message: "required"})
	}
	if strings.TrimSpace(in.CaseNumber) == "" {
		errs = append(errs, FieldError{Field: "case_number", Message: "required"})
	}
	switch {
	case in.Status == "":
		errs = append(errs, FieldError{Field: "status", Message: "required"})
	case !in.Status.IsValid():
		errs = append(errs, FieldError{Field: "status", Message: "must be Open, Pending or Closed"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
