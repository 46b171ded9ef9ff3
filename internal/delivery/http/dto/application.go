package dto

import (
	"time"

	"job-portal/internal/domain/application"

	"github.com/samber/lo"
)

type ApplyRequest struct {
	CoverLetter *string `json:"cover_letter" validate:"omitempty,max=10000"`
	ResumeURL   *string `json:"resume_url" validate:"omitempty,url"`
}

type ApplicationStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=pending reviewing interview offer rejected withdrawn"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

type ApplicationJobResponse struct {
	Title       string  `json:"title"`
	Location    *string `json:"location"`
	CompanyName string  `json:"company_name"`
}

type ApplicantResponse struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     string  `json:"email"`
	ResumeURL *string `json:"resume_url"`
}

type ApplicationResponse struct {
	ID          string                  `json:"id"`
	JobID       string                  `json:"job_id"`
	ApplicantID string                  `json:"applicant_id"`
	CoverLetter *string                 `json:"cover_letter"`
	ResumeURL   *string                 `json:"resume_url"`
	Status      string                  `json:"status"`
	Notes       *string                 `json:"notes,omitempty"`
	AppliedAt   time.Time               `json:"applied_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	Job         *ApplicationJobResponse `json:"job,omitempty"`
	Applicant   *ApplicantResponse      `json:"applicant,omitempty"`
}

// NewApplicationResponse renders a for its applicant; reviewer notes are left out.
func NewApplicationResponse(a application.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:          a.ID.String(),
		JobID:       a.JobID.String(),
		ApplicantID: a.ApplicantID.String(),
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Job != nil {
		out.Job = &ApplicationJobResponse{Title: a.Job.Title, Location: a.Job.Location, CompanyName: a.Job.CompanyName}
	}
	return out
}

// NewReviewerApplicationResponse adds the applicant and notes for the employer view.
func NewReviewerApplicationResponse(a application.Application) ApplicationResponse {
	out := NewApplicationResponse(a)
	out.Notes = a.Notes
	if a.Applicant != nil {
		out.Applicant = &ApplicantResponse{
			FirstName: a.Applicant.FirstName,
			LastName:  a.Applicant.LastName,
			Email:     a.Applicant.Email,
			ResumeURL: a.Applicant.ResumeURL,
		}
	}
	return out
}

func NewApplicationResponses(as []application.Application) []ApplicationResponse {
	return lo.Map(as, func(a application.Application, _ int) ApplicationResponse { return NewApplicationResponse(a) })
}

func NewReviewerApplicationResponses(as []application.Application) []ApplicationResponse {
	return lo.Map(as, func(a application.Application, _ int) ApplicationResponse { return NewReviewerApplicationResponse(a) })
}
