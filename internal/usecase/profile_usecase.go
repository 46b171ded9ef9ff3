package usecase

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/logger"
	"job-portal/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ProfileInput is a partial update; nil leaves a field untouched and an empty
// string clears it.
type ProfileInput struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	Location         *string
	AvatarURL        *string
	ResumeURL        *string
	LinkedInURL      *string
	PortfolioURL     *string
	Bio              *string
	Skills           *[]string
	ExperienceLevel  *string
	DesiredSalaryMin *int
	DesiredSalaryMax *int
	IsOpenToWork     *bool
	Visibility       *string
}

type ProfileUsecase interface {
	UpdateMe(ctx context.Context, me profile.Profile, in ProfileInput) (profile.Profile, error)
	OnboardJobSeeker(ctx context.Context, me profile.Profile, in ProfileInput) (profile.Profile, error)
	OnboardEmployer(ctx context.Context, me profile.Profile, in ProfileInput, c CompanyInput) (profile.Profile, company.Company, error)
	GetPublic(ctx context.Context, viewer policy.Actor, profileID uuid.UUID) (profile.Profile, error)
}

type ProfileService struct {
	profiles repository.ProfileRepository
	log      log.FieldLogger
}

func NewProfileUsecase(profiles repository.ProfileRepository, l log.FieldLogger) *ProfileService {
	if l == nil {
		l = logger.Discard()
	}
	return &ProfileService{profiles: profiles, log: l}
}

func (u *ProfileService) UpdateMe(ctx context.Context, me profile.Profile, in ProfileInput) (profile.Profile, error) {
	if err := applyProfileInput(&me, in); err != nil {
		return profile.Profile{}, err
	}
	return u.save(ctx, me)
}

func (u *ProfileService) OnboardJobSeeker(ctx context.Context, me profile.Profile, in ProfileInput) (profile.Profile, error) {
	if !me.IsJobSeeker() {
		return profile.Profile{}, ErrWrongRole
	}
	if err := applyProfileInput(&me, in); err != nil {
		return profile.Profile{}, err
	}
	me.IsOpenToWork = true
	return u.save(ctx, me)
}

func (u *ProfileService) OnboardEmployer(ctx context.Context, me profile.Profile, in ProfileInput, c CompanyInput) (profile.Profile, company.Company, error) {
	if err := authorize(policy.ActorFrom(&me), policy.CreateCompany, policy.None()); err != nil {
		return profile.Profile{}, company.Company{}, err
	}
	if err := applyProfileInput(&me, in); err != nil {
		return profile.Profile{}, company.Company{}, err
	}
	var co company.Company
	if err := applyCompanyInput(&co, c); err != nil {
		return profile.Profile{}, company.Company{}, err
	}

	p, saved, err := u.profiles.OnboardEmployer(ctx, me, co)
	if err != nil {
		if errors.Is(err, company.ErrAlreadyExists) {
			return profile.Profile{}, company.Company{}, ErrConflict
		}
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, company.Company{}, ErrNotFound
		}
		u.logDBError(err, "onboard employer failed")
		return profile.Profile{}, company.Company{}, ErrInternal
	}
	return p, saved, nil
}

func (u *ProfileService) GetPublic(ctx context.Context, viewer policy.Actor, profileID uuid.UUID) (profile.Profile, error) {
	p, err := u.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		u.logDBError(err, "get profile failed")
		return profile.Profile{}, ErrInternal
	}
	if err := authorize(viewer, policy.ViewProfile, policy.ProfileResource(p)); err != nil {
		// hidden profiles look absent to outsiders
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrWrongRole) {
			return profile.Profile{}, ErrNotFound
		}
		return profile.Profile{}, err
	}
	return p, nil
}

func (u *ProfileService) save(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	out, err := u.profiles.Update(ctx, p)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNotFound
		}
		u.logDBError(err, "update profile failed")
		return profile.Profile{}, ErrInternal
	}
	return out, nil
}

func (u *ProfileService) logDBError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}

func applyProfileInput(p *profile.Profile, in ProfileInput) error {
	setStr := func(dst **string, src *string) {
		if src == nil {
			return
		}
		v := strings.TrimSpace(*src)
		if v == "" {
			*dst = nil
			return
		}
		*dst = &v
	}

	setStr(&p.FirstName, in.FirstName)
	setStr(&p.LastName, in.LastName)
	setStr(&p.Phone, in.Phone)
	setStr(&p.Location, in.Location)
	setStr(&p.AvatarURL, in.AvatarURL)
	setStr(&p.ResumeURL, in.ResumeURL)
	setStr(&p.LinkedInURL, in.LinkedInURL)
	setStr(&p.PortfolioURL, in.PortfolioURL)
	setStr(&p.Bio, in.Bio)

	if in.Skills != nil {
		p.Skills = cleanList(*in.Skills)
	}
	if in.ExperienceLevel != nil {
		if *in.ExperienceLevel == "" {
			p.ExperienceLevel = nil
		} else {
			lvl := job.ExperienceLevel(*in.ExperienceLevel)
			if !lvl.Valid() {
				return invalid("experience_level", "oneof")
			}
			p.ExperienceLevel = &lvl
		}
	}
	if in.DesiredSalaryMin != nil {
		if *in.DesiredSalaryMin < 0 {
			return invalid("desired_salary_min", "min")
		}
		p.DesiredSalaryMin = in.DesiredSalaryMin
	}
	if in.DesiredSalaryMax != nil {
		if *in.DesiredSalaryMax < 0 {
			return invalid("desired_salary_max", "min")
		}
		p.DesiredSalaryMax = in.DesiredSalaryMax
	}
	if p.DesiredSalaryMin != nil && p.DesiredSalaryMax != nil && *p.DesiredSalaryMin > *p.DesiredSalaryMax {
		return invalid("desired_salary_max", "gtefield")
	}
	if in.IsOpenToWork != nil {
		p.IsOpenToWork = *in.IsOpenToWork
	}
	if in.Visibility != nil {
		v := profile.Visibility(*in.Visibility)
		if !v.Valid() {
			return invalid("profile_visibility", "oneof")
		}
		p.Visibility = v
	}
	return nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(in []string) []string {
	trimmed := lo.Compact(lo.Map(in, func(s string, _ int) string { return strings.TrimSpace(s) }))
	return lo.UniqBy(trimmed, strings.ToLower)
}
