package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Valid reports membership only; any status may follow any other.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

type JobRef struct {
	Title            string
	Location         *string
	CompanyName      string
	PostedBy         uuid.UUID
	CompanyCreatedBy uuid.UUID
}

type ApplicantRef struct {
	FirstName *string
	LastName  *string
	Email     string
	ResumeURL *string
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter *string
	ResumeURL   *string
	Status      Status
	Notes       *string
	AppliedAt   time.Time
	UpdatedAt   time.Time

	Job       *JobRef
	Applicant *ApplicantRef
}
