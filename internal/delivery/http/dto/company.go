package dto

import (
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/usecase"

	"github.com/samber/lo"
)

type CompanyRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=10000"`
	Website       *string  `json:"website" validate:"omitempty,url"`
	LogoURL       *string  `json:"logo_url" validate:"omitempty,url"`
	Industry      *string  `json:"industry" validate:"omitempty,max=100"`
	Size          *string  `json:"size" validate:"omitempty,oneof=startup small medium large"`
	Location      *string  `json:"location" validate:"omitempty,max=200"`
	FoundedYear   *int     `json:"founded_year" validate:"omitempty,min=1800"`
	CultureImages []string `json:"culture_images" validate:"omitempty,max=20,dive,url"`
	Benefits      []string `json:"benefits" validate:"omitempty,max=50,dive,max=200"`
}

func (r CompanyRequest) Input() usecase.CompanyInput {
	return usecase.CompanyInput{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		LogoURL:       r.LogoURL,
		Industry:      r.Industry,
		Size:          r.Size,
		Location:      r.Location,
		FoundedYear:   r.FoundedYear,
		CultureImages: r.CultureImages,
		Benefits:      r.Benefits,
	}
}

type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Website        *string   `json:"website"`
	LogoURL        *string   `json:"logo_url"`
	Industry       *string   `json:"industry"`
	Size           *string   `json:"size"`
	Location       *string   `json:"location"`
	FoundedYear    *int      `json:"founded_year"`
	CultureImages  []string  `json:"culture_images"`
	Benefits       []string  `json:"benefits"`
	CreatedBy      string    `json:"created_by"`
	ActiveJobCount int       `json:"active_job_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCompanyResponse(c company.Company) CompanyResponse {
	var size *string
	if c.Size != nil {
		s := string(*c.Size)
		size = &s
	}
	return CompanyResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Description:    c.Description,
		Website:        c.Website,
		LogoURL:        c.LogoURL,
		Industry:       c.Industry,
		Size:           size,
		Location:       c.Location,
		FoundedYear:    c.FoundedYear,
		CultureImages:  orEmpty(c.CultureImages),
		Benefits:       orEmpty(c.Benefits),
		CreatedBy:      c.CreatedBy.String(),
		ActiveJobCount: c.ActiveJobCount,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func NewCompanyResponses(cs []company.Company) []CompanyResponse {
	return lo.Map(cs, func(c company.Company, _ int) CompanyResponse { return NewCompanyResponse(c) })
}

type CompanyDetailResponse struct {
	CompanyResponse
	Jobs []JobResponse `json:"jobs"`
}

func NewCompanyDetailResponse(d usecase.CompanyDetail) CompanyDetailResponse {
	return CompanyDetailResponse{CompanyResponse: NewCompanyResponse(d.Company), Jobs: NewJobResponses(d.Jobs)}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
