package dto

import (
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/usecase"

	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

type JobRequest struct {
	Title               string   `json:"title" validate:"required,max=200"`
	Description         string   `json:"description" validate:"required"`
	Requirements        *string  `json:"requirements"`
	Responsibilities    *string  `json:"responsibilities"`
	Location            *string  `json:"location" validate:"omitempty,max=200"`
	LocationType        string   `json:"location_type" validate:"omitempty,oneof=remote onsite hybrid"`
	JobType             string   `json:"job_type" validate:"omitempty,oneof=full_time part_time contract internship freelance"`
	ExperienceLevel     string   `json:"experience_level" validate:"omitempty,oneof=entry mid senior executive"`
	SalaryMin           *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax           *int     `json:"salary_max" validate:"omitempty,min=0"`
	SalaryCurrency      string   `json:"salary_currency" validate:"omitempty,len=3"`
	Benefits            []string `json:"benefits" validate:"omitempty,max=50,dive,max=200"`
	SkillsRequired      []string `json:"skills_required" validate:"omitempty,max=50,dive,max=100"`
	EducationRequired   *string  `json:"education_required"`
	ApplicationDeadline *string  `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	// Publish makes the job active right away; otherwise it is saved as a draft.
	Publish bool `json:"publish"`
}

func (r JobRequest) Input() usecase.JobInput {
	var deadline *time.Time
	if r.ApplicationDeadline != nil && *r.ApplicationDeadline != "" {
		if t, err := time.Parse(dateLayout, *r.ApplicationDeadline); err == nil {
			deadline = &t
		}
	}
	return usecase.JobInput{
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		Location:            r.Location,
		LocationType:        r.LocationType,
		JobType:             r.JobType,
		ExperienceLevel:     r.ExperienceLevel,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		SalaryCurrency:      r.SalaryCurrency,
		Benefits:            r.Benefits,
		SkillsRequired:      r.SkillsRequired,
		EducationRequired:   r.EducationRequired,
		ApplicationDeadline: deadline,
	}
}

type JobCompanyResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LogoURL  *string `json:"logo_url"`
	Location *string `json:"location"`
	Industry *string `json:"industry"`
}

type JobResponse struct {
	ID                  string              `json:"id"`
	CompanyID           string              `json:"company_id"`
	PostedBy            string              `json:"posted_by"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Requirements        *string             `json:"requirements"`
	Responsibilities    *string             `json:"responsibilities"`
	Location            *string             `json:"location"`
	LocationType        string              `json:"location_type"`
	JobType             string              `json:"job_type"`
	ExperienceLevel     string              `json:"experience_level"`
	SalaryMin           *int                `json:"salary_min"`
	SalaryMax           *int                `json:"salary_max"`
	SalaryCurrency      string              `json:"salary_currency"`
	Benefits            []string            `json:"benefits"`
	SkillsRequired      []string            `json:"skills_required"`
	EducationRequired   *string             `json:"education_required"`
	ApplicationDeadline *string             `json:"application_deadline"`
	IsActive            bool                `json:"is_active"`
	Status              string              `json:"status"`
	ViewCount           int                 `json:"view_count"`
	ApplicationCount    int                 `json:"application_count"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	PublishedAt         *time.Time          `json:"published_at"`
	Company             *JobCompanyResponse `json:"company,omitempty"`
}

func NewJobResponse(j job.Job) JobResponse {
	var deadline *string
	if j.ApplicationDeadline != nil {
		s := j.ApplicationDeadline.Format(dateLayout)
		deadline = &s
	}
	out := JobResponse{
		ID:                  j.ID.String(),
		CompanyID:           j.CompanyID.String(),
		PostedBy:            j.PostedBy.String(),
		Title:               j.Title,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		Location:            j.Location,
		LocationType:        string(j.LocationType),
		JobType:             string(j.JobType),
		ExperienceLevel:     string(j.ExperienceLevel),
		SalaryMin:           j.SalaryMin,
		SalaryMax:           j.SalaryMax,
		SalaryCurrency:      j.SalaryCurrency,
		Benefits:            orEmpty(j.Benefits),
		SkillsRequired:      orEmpty(j.SkillsRequired),
		EducationRequired:   j.EducationRequired,
		ApplicationDeadline: deadline,
		IsActive:            j.IsActive,
		Status:              j.Status(),
		ViewCount:           j.ViewCount,
		ApplicationCount:    j.ApplicationCount,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
		PublishedAt:         j.PublishedAt,
	}
	if j.Company != nil {
		out.Company = &JobCompanyResponse{
			ID:       j.Company.ID.String(),
			Name:     j.Company.Name,
			LogoURL:  j.Company.LogoURL,
			Location: j.Company.Location,
			Industry: j.Company.Industry,
		}
	}
	return out
}

func NewJobResponses(jobs []job.Job) []JobResponse {
	return lo.Map(jobs, func(j job.Job, _ int) JobResponse { return NewJobResponse(j) })
}

type JobDetailResponse struct {
	JobResponse
	FormattedSalary string `json:"formatted_salary"`
	PostedAgo       string `json:"posted_ago"`
	HasApplied      bool   `json:"has_applied"`
	IsSaved         bool   `json:"is_saved"`
}

func NewJobDetailResponse(v usecase.JobView) JobDetailResponse {
	return JobDetailResponse{
		JobResponse:     NewJobResponse(v.Job),
		FormattedSalary: v.FormattedSalary,
		PostedAgo:       v.PostedAgo,
		HasApplied:      v.HasApplied,
		IsSaved:         v.IsSaved,
	}
}

type JobStatsResponse struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Draft    int `json:"draft"`
	Archived int `json:"archived"`
}

type EmployerJobsResponse struct {
	Company *CompanyResponse `json:"company"`
	Jobs    []JobResponse    `json:"jobs"`
	Stats   JobStatsResponse `json:"stats"`
}

func NewEmployerJobsResponse(e usecase.EmployerJobs) EmployerJobsResponse {
	out := EmployerJobsResponse{
		Jobs:  NewJobResponses(e.Jobs),
		Stats: JobStatsResponse(e.Stats),
	}
	if e.Company != nil {
		c := NewCompanyResponse(*e.Company)
		out.Company = &c
	}
	return out
}
