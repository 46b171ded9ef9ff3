package dto

import (
	"time"

	"job-portal/internal/domain/profile"
	"job-portal/internal/usecase"
)

type ProfileRequest struct {
	FirstName        *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string   `json:"last_name" validate:"omitempty,max=100"`
	Phone            *string   `json:"phone" validate:"omitempty,max=40"`
	Location         *string   `json:"location" validate:"omitempty,max=200"`
	AvatarURL        *string   `json:"avatar_url" validate:"omitempty,url"`
	ResumeURL        *string   `json:"resume_url" validate:"omitempty,url"`
	LinkedInURL      *string   `json:"linkedin_url" validate:"omitempty,url"`
	PortfolioURL     *string   `json:"portfolio_url" validate:"omitempty,url"`
	Bio              *string   `json:"bio" validate:"omitempty,max=5000"`
	Skills           *[]string `json:"skills" validate:"omitempty,max=100,dive,max=100"`
	ExperienceLevel  *string   `json:"experience_level" validate:"omitempty,oneof=entry mid senior executive"`
	DesiredSalaryMin *int      `json:"desired_salary_min" validate:"omitempty,min=0"`
	DesiredSalaryMax *int      `json:"desired_salary_max" validate:"omitempty,min=0"`
	IsOpenToWork     *bool     `json:"is_open_to_work"`
	Visibility       *string   `json:"profile_visibility" validate:"omitempty,oneof=public private employers_only"`
}

func (r ProfileRequest) Input() usecase.ProfileInput {
	return usecase.ProfileInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Phone:            r.Phone,
		Location:         r.Location,
		AvatarURL:        r.AvatarURL,
		ResumeURL:        r.ResumeURL,
		LinkedInURL:      r.LinkedInURL,
		PortfolioURL:     r.PortfolioURL,
		Bio:              r.Bio,
		Skills:           r.Skills,
		ExperienceLevel:  r.ExperienceLevel,
		DesiredSalaryMin: r.DesiredSalaryMin,
		DesiredSalaryMax: r.DesiredSalaryMax,
		IsOpenToWork:     r.IsOpenToWork,
		Visibility:       r.Visibility,
	}
}

type EmployerOnboardingRequest struct {
	Profile ProfileRequest `json:"profile"`
	Company CompanyRequest `json:"company"`
}

type ProfileResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	UserType         string    `json:"user_type"`
	FirstName        *string   `json:"first_name"`
	LastName         *string   `json:"last_name"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone"`
	Location         *string   `json:"location"`
	AvatarURL        *string   `json:"avatar_url"`
	ResumeURL        *string   `json:"resume_url"`
	LinkedInURL      *string   `json:"linkedin_url"`
	PortfolioURL     *string   `json:"portfolio_url"`
	Bio              *string   `json:"bio"`
	Skills           []string  `json:"skills"`
	ExperienceLevel  *string   `json:"experience_level"`
	DesiredSalaryMin *int      `json:"desired_salary_min"`
	DesiredSalaryMax *int      `json:"desired_salary_max"`
	IsOpenToWork     bool      `json:"is_open_to_work"`
	Visibility       string    `json:"profile_visibility"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	var level *string
	if p.ExperienceLevel != nil {
		s := string(*p.ExperienceLevel)
		level = &s
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		UserType:         string(p.UserType),
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		FullName:         p.FullName(),
		Email:            p.Email,
		Phone:            p.Phone,
		Location:         p.Location,
		AvatarURL:        p.AvatarURL,
		ResumeURL:        p.ResumeURL,
		LinkedInURL:      p.LinkedInURL,
		PortfolioURL:     p.PortfolioURL,
		Bio:              p.Bio,
		Skills:           skills,
		ExperienceLevel:  level,
		DesiredSalaryMin: p.DesiredSalaryMin,
		DesiredSalaryMax: p.DesiredSalaryMax,
		IsOpenToWork:     p.IsOpenToWork,
		Visibility:       string(p.Visibility),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// NewPublicProfileResponse hides contact details from other viewers.
func NewPublicProfileResponse(p profile.Profile, self bool) ProfileResponse {
	out := NewProfileResponse(p)
	if !self {
		out.Email = ""
		out.Phone = nil
		out.UserID = ""
	}
	return out
}
