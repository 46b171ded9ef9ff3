package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/logger"
	"job-portal/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type CompanyInput struct {
	Name          string
	Description   *string
	Website       *string
	LogoURL       *string
	Industry      *string
	Size          *string
	Location      *string
	FoundedYear   *int
	CultureImages []string
	Benefits      []string
}

type CompanyDetail struct {
	Company company.Company
	Jobs    []job.Job
}

type CompanyUsecase interface {
	Create(ctx context.Context, actor policy.Actor, in CompanyInput) (company.Company, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in CompanyInput) (company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (CompanyDetail, error)
	GetMine(ctx context.Context, actor policy.Actor) (company.Company, error)
	List(ctx context.Context, search, industry string) ([]company.Company, error)
	Industries(ctx context.Context) ([]string, error)
}

type CompanyService struct {
	companies repository.CompanyRepository
	jobs      repository.JobRepository
	log       log.FieldLogger
}

func NewCompanyUsecase(companies repository.CompanyRepository, jobs repository.JobRepository, l log.FieldLogger) *CompanyService {
	if l == nil {
		l = logger.Discard()
	}
	return &CompanyService{companies: companies, jobs: jobs, log: l}
}

func (u *CompanyService) Create(ctx context.Context, actor policy.Actor, in CompanyInput) (company.Company, error) {
	if err := authorize(actor, policy.CreateCompany, policy.None()); err != nil {
		return company.Company{}, err
	}
	c := company.Company{CreatedBy: actor.ProfileID}
	if err := applyCompanyInput(&c, in); err != nil {
		return company.Company{}, err
	}

	out, err := u.companies.Create(ctx, c)
	if err != nil {
		if errors.Is(err, company.ErrAlreadyExists) {
			return company.Company{}, ErrConflict
		}
		u.dbError(err, "create company failed")
		return company.Company{}, ErrInternal
	}
	return out, nil
}

func (u *CompanyService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in CompanyInput) (company.Company, error) {
	current, err := u.load(ctx, id)
	if err != nil {
		return company.Company{}, err
	}
	if err := authorize(actor, policy.EditCompany, policy.CompanyResource(current)); err != nil {
		return company.Company{}, err
	}
	if err := applyCompanyInput(&current, in); err != nil {
		return company.Company{}, err
	}

	out, err := u.companies.Update(ctx, current)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		u.dbError(err, "update company failed")
		return company.Company{}, ErrInternal
	}
	return out, nil
}

func (u *CompanyService) Get(ctx context.Context, id uuid.UUID) (CompanyDetail, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return CompanyDetail{}, err
	}
	jobs, err := u.jobs.ListByCompany(ctx, id)
	if err != nil {
		u.dbError(err, "list company jobs failed")
		jobs = nil
	}
	active := lo.Filter(jobs, func(j job.Job, _ int) bool { return j.IsActive })
	return CompanyDetail{Company: c, Jobs: active}, nil
}

func (u *CompanyService) GetMine(ctx context.Context, actor policy.Actor) (company.Company, error) {
	if actor.Anonymous() {
		return company.Company{}, ErrUnauthorized
	}
	c, err := u.companies.GetByCreator(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		u.dbError(err, "get own company failed")
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *CompanyService) List(ctx context.Context, search, industry string) ([]company.Company, error) {
	out, err := u.companies.List(ctx, repository.CompanyFilter{Search: search, Industry: industry})
	if err != nil {
		u.dbError(err, "list companies failed")
		return []company.Company{}, nil
	}
	return out, nil
}

func (u *CompanyService) Industries(ctx context.Context) ([]string, error) {
	out, err := u.companies.Industries(ctx)
	if err != nil {
		u.dbError(err, "list industries failed")
		return []string{}, nil
	}
	return out, nil
}

func (u *CompanyService) load(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Company{}, ErrNotFound
		}
		u.dbError(err, "get company failed")
		return company.Company{}, ErrInternal
	}
	return c, nil
}

func (u *CompanyService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}

func applyCompanyInput(c *company.Company, in CompanyInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name", "required")
	}
	c.Name = name
	c.Description = trimmedOrNil(in.Description)
	c.Website = trimmedOrNil(in.Website)
	c.LogoURL = trimmedOrNil(in.LogoURL)
	c.Industry = trimmedOrNil(in.Industry)
	c.Location = trimmedOrNil(in.Location)

	c.Size = nil
	if in.Size != nil && *in.Size != "" {
		s := company.Size(*in.Size)
		if !s.Valid() {
			return invalid("size", "oneof")
		}
		c.Size = &s
	}

	if in.FoundedYear != nil && (*in.FoundedYear < 1800 || *in.FoundedYear > time.Now().Year()) {
		return invalid("founded_year", "range")
	}
	c.FoundedYear = in.FoundedYear
	c.CultureImages = cleanList(in.CultureImages)
	c.Benefits = cleanList(in.Benefits)
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
