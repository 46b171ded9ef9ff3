package dto

import (
	"time"

	"job-portal/internal/domain/alert"
	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/savedjob"
	"job-portal/internal/usecase"

	"github.com/samber/lo"
)

type SavedJobResponse struct {
	ID      string       `json:"id"`
	JobID   string       `json:"job_id"`
	SavedAt time.Time    `json:"saved_at"`
	Job     *JobResponse `json:"job,omitempty"`
}

func NewSavedJobResponses(items []savedjob.SavedJob) []SavedJobResponse {
	return lo.Map(items, func(s savedjob.SavedJob, _ int) SavedJobResponse {
		out := SavedJobResponse{ID: s.ID.String(), JobID: s.JobID.String(), SavedAt: s.SavedAt}
		if s.Job != nil {
			j := NewJobResponse(*s.Job)
			out.Job = &j
		}
		return out
	})
}

type SeekerDashboardResponse struct {
	RecentApplications []ApplicationResponse `json:"recent_applications"`
	Stats              SeekerStatsResponse   `json:"stats"`
	RecommendedJobs    []JobResponse         `json:"recommended_jobs"`
}

type SeekerStatsResponse struct {
	Applications        int `json:"applications"`
	SavedJobs           int `json:"saved_jobs"`
	ProfileViews        int `json:"profile_views"`
	ProfileCompleteness int `json:"profile_completeness"`
}

func NewSeekerDashboardResponse(d usecase.SeekerDashboard) SeekerDashboardResponse {
	return SeekerDashboardResponse{
		RecentApplications: NewApplicationResponses(d.RecentApplications),
		Stats: SeekerStatsResponse{
			Applications:        d.ApplicationCount,
			SavedJobs:           d.SavedJobsCount,
			ProfileViews:        d.ProfileViews,
			ProfileCompleteness: d.ProfileCompleteness,
		},
		RecommendedJobs: NewJobResponses(d.RecommendedJobs),
	}
}

type EmployerStatsResponse struct {
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
	TotalViews        int `json:"total_views"`
	PendingReviews    int `json:"pending_reviews"`
}

type EmployerDashboardResponse struct {
	Company    *CompanyResponse      `json:"company"`
	Stats      EmployerStatsResponse `json:"stats"`
	RecentJobs []JobResponse         `json:"recent_jobs"`
}

func NewEmployerDashboardResponse(d usecase.EmployerDashboard) EmployerDashboardResponse {
	out := EmployerDashboardResponse{
		Stats: EmployerStatsResponse{
			ActiveJobs:        d.ActiveJobs,
			TotalApplications: d.TotalApplications,
			TotalViews:        d.TotalViews,
			PendingReviews:    d.PendingReviews,
		},
		RecentJobs: NewJobResponses(d.RecentJobs),
	}
	if d.Company != nil {
		c := NewCompanyResponse(*d.Company)
		out.Company = &c
	}
	return out
}

type AlertRequest struct {
	SearchQuery *string       `json:"search_query" validate:"omitempty,max=200"`
	Filters     alert.Filters `json:"filters"`
	IsActive    *bool         `json:"is_active"`
}

func (r AlertRequest) Input() usecase.AlertInput {
	return usecase.AlertInput{SearchQuery: r.SearchQuery, Filters: r.Filters, IsActive: r.IsActive}
}

type AlertResponse struct {
	ID          string        `json:"id"`
	SearchQuery *string       `json:"search_query"`
	Filters     alert.Filters `json:"filters"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	LastSent    *time.Time    `json:"last_sent"`
}

func NewAlertResponse(a alert.Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID.String(),
		SearchQuery: a.SearchQuery,
		Filters:     a.Filters,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		LastSent:    a.LastSent,
	}
}

func NewAlertResponses(as []alert.Alert) []AlertResponse {
	return lo.Map(as, func(a alert.Alert, _ int) AlertResponse { return NewAlertResponse(a) })
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	IsRead    bool           `json:"is_read"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewNotificationResponses(ns []notification.Notification) []NotificationResponse {
	return lo.Map(ns, func(n notification.Notification, _ int) NotificationResponse {
		return NotificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			Metadata:  n.Metadata,
			CreatedAt: n.CreatedAt,
		}
	})
}
