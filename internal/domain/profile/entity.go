package profile

import (
	"errors"
	"math"
	"strings"
	"time"

	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type UserType string

const (
	UserTypeJobSeeker UserType = "job_seeker"
	UserTypeEmployer  UserType = "employer"
	UserTypeAdmin     UserType = "admin"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeJobSeeker, UserTypeEmployer, UserTypeAdmin:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityPrivate       Visibility = "private"
	VisibilityEmployersOnly Visibility = "employers_only"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityEmployersOnly:
		return true
	}
	return false
}

type Profile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	UserType         UserType
	FirstName        *string
	LastName         *string
	Email            string
	Phone            *string
	Location         *string
	AvatarURL        *string
	ResumeURL        *string
	LinkedInURL      *string
	PortfolioURL     *string
	Bio              *string
	Skills           []string
	ExperienceLevel  *job.ExperienceLevel
	DesiredSalaryMin *int
	DesiredSalaryMax *int
	IsOpenToWork     bool
	Visibility       Visibility
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Profile) IsEmployer() bool  { return p.UserType == UserTypeEmployer }
func (p Profile) IsJobSeeker() bool { return p.UserType == UserTypeJobSeeker }

func (p Profile) FullName() string {
	parts := make([]string, 0, 2)
	for _, s := range []*string{p.FirstName, p.LastName} {
		if s != nil && strings.TrimSpace(*s) != "" {
			parts = append(parts, strings.TrimSpace(*s))
		}
	}
	return strings.Join(parts, " ")
}

const completenessFields = 8

// Completeness is the rounded percentage of the eight profile fields a seeker
// is asked to fill in.
func Completeness(p *Profile) int {
	if p == nil {
		return 0
	}

	filled := func(s *string) bool { return s != nil && strings.TrimSpace(*s) != "" }

	checks := []bool{
		filled(p.FirstName),
		filled(p.LastName),
		filled(p.Phone),
		filled(p.Location),
		filled(p.Bio),
		len(p.Skills) > 0,
		p.ExperienceLevel != nil && *p.ExperienceLevel != "",
		filled(p.ResumeURL),
	}

	completed := 0
	for _, ok := range checks {
		if ok {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / completenessFields))
}
