package usecase

import (
	"context"
	"errors"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/profile"
	"job-portal/internal/logger"
	"job-portal/internal/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	dashboardRecentApplications = 5
	dashboardRecommendedJobs    = 5
	dashboardRecentJobs         = 5
)

type SeekerDashboard struct {
	RecentApplications  []application.Application
	ApplicationCount    int
	SavedJobsCount      int
	ProfileCompleteness int
	RecommendedJobs     []job.Job
	// always zero; profile views are not tracked
	ProfileViews int
}

type EmployerDashboard struct {
	Company           *company.Company
	ActiveJobs        int
	TotalApplications int
	TotalViews        int
	PendingReviews    int
	RecentJobs        []job.Job
}

type DashboardUsecase interface {
	Seeker(ctx context.Context, me profile.Profile) (SeekerDashboard, error)
	Employer(ctx context.Context, me profile.Profile) (EmployerDashboard, error)
}

type DashboardService struct {
	applications repository.ApplicationRepository
	saved        repository.SavedJobRepository
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	log          log.FieldLogger
}

func NewDashboardUsecase(
	applications repository.ApplicationRepository,
	saved repository.SavedJobRepository,
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	l log.FieldLogger,
) *DashboardService {
	if l == nil {
		l = logger.Discard()
	}
	return &DashboardService{applications: applications, saved: saved, jobs: jobs, companies: companies, log: l}
}

func (u *DashboardService) Seeker(ctx context.Context, me profile.Profile) (SeekerDashboard, error) {
	if me.IsEmployer() {
		return SeekerDashboard{}, ErrUseEmployerBoard
	}

	recent, err := u.applications.ListByApplicant(ctx, me.ID, dashboardRecentApplications)
	if err != nil {
		return SeekerDashboard{}, u.dbError(err, "recent applications failed")
	}
	appCount, err := u.applications.CountByApplicant(ctx, me.ID)
	if err != nil {
		return SeekerDashboard{}, u.dbError(err, "count applications failed")
	}
	savedCount, err := u.saved.CountByUser(ctx, me.ID)
	if err != nil {
		return SeekerDashboard{}, u.dbError(err, "count saved jobs failed")
	}
	recommended, err := u.jobs.ListRecentActive(ctx, dashboardRecommendedJobs)
	if err != nil {
		return SeekerDashboard{}, u.dbError(err, "recommended jobs failed")
	}

	return SeekerDashboard{
		RecentApplications:  recent,
		ApplicationCount:    appCount,
		SavedJobsCount:      savedCount,
		ProfileCompleteness: profile.Completeness(&me),
		RecommendedJobs:     recommended,
	}, nil
}

// Employer summarises the employer's company. Without a company every
// figure is zero.
func (u *DashboardService) Employer(ctx context.Context, me profile.Profile) (EmployerDashboard, error) {
	if !me.IsEmployer() {
		return EmployerDashboard{}, ErrWrongRole
	}

	co, err := u.companies.GetByCreator(ctx, me.ID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return EmployerDashboard{RecentJobs: []job.Job{}}, nil
		}
		return EmployerDashboard{}, u.dbError(err, "get employer company failed")
	}

	all, err := u.jobs.ListByCompany(ctx, co.ID)
	if err != nil {
		return EmployerDashboard{}, u.dbError(err, "list company jobs failed")
	}
	active := lo.Filter(all, func(j job.Job, _ int) bool { return j.IsActive })

	pending, err := u.applications.CountPendingForJobs(ctx, lo.Map(active, func(j job.Job, _ int) uuid.UUID { return j.ID }))
	if err != nil {
		return EmployerDashboard{}, u.dbError(err, "count pending applications failed")
	}

	// ListByCompany is newest first
	recent := all
	if len(recent) > dashboardRecentJobs {
		recent = recent[:dashboardRecentJobs]
	}

	return EmployerDashboard{
		Company:           &co,
		ActiveJobs:        len(active),
		TotalApplications: lo.SumBy(active, func(j job.Job) int { return j.ApplicationCount }),
		TotalViews:        lo.SumBy(active, func(j job.Job) int { return j.ViewCount }),
		PendingReviews:    pending,
		RecentJobs:        recent,
	}, nil
}

func (u *DashboardService) dbError(err error, msg string) error {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
	return ErrInternal
}
