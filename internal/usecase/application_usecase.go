package usecase

import (
	"context"
	"errors"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/events"
	"job-portal/internal/logger"
	"job-portal/internal/metrics"
	"job-portal/internal/repository"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type ApplyInput struct {
	CoverLetter *string
	ResumeURL   *string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor policy.Actor, jobID uuid.UUID, in ApplyInput) (application.Application, error)
	ListMine(ctx context.Context, actor policy.Actor) ([]application.Application, error)
	ListForJob(ctx context.Context, actor policy.Actor, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, status application.Status, notes *string) (application.Application, error)
	Withdraw(ctx context.Context, actor policy.Actor, id uuid.UUID) (application.Application, error)
}

type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	bus          EventBus.Bus
	log          log.FieldLogger
}

func NewApplicationUsecase(applications repository.ApplicationRepository, jobs repository.JobRepository, bus EventBus.Bus, l log.FieldLogger) *ApplicationService {
	if l == nil {
		l = logger.Discard()
	}
	return &ApplicationService{applications: applications, jobs: jobs, bus: bus, log: l}
}

func (u *ApplicationService) Apply(ctx context.Context, actor policy.Actor, jobID uuid.UUID, in ApplyInput) (application.Application, error) {
	if err := authorize(actor, policy.Apply, policy.None()); err != nil {
		return application.Application{}, err
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		u.dbError(err, "get job failed")
		return application.Application{}, ErrInternal
	}
	if !j.IsActive {
		return application.Application{}, ErrNotFound
	}

	applied, err := u.applications.Exists(ctx, jobID, actor.ProfileID)
	if err != nil {
		u.dbError(err, "application lookup failed")
		return application.Application{}, ErrInternal
	}
	if applied {
		return application.Application{}, ErrConflict
	}

	a, err := u.applications.Create(ctx, application.Application{
		JobID:       jobID,
		ApplicantID: actor.ProfileID,
		CoverLetter: trimmedOrNil(in.CoverLetter),
		ResumeURL:   trimmedOrNil(in.ResumeURL),
		Status:      application.StatusPending,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAlreadyApplied):
			return application.Application{}, ErrConflict
		case errors.Is(err, job.ErrNotFound):
			return application.Application{}, ErrNotFound
		}
		u.dbError(err, "create application failed")
		return application.Application{}, ErrInternal
	}

	metrics.ApplicationsCreated.Inc()
	events.Publish(u.bus, events.ApplicationCreatedTopic, events.ApplicationCreated{
		ApplicationID: a.ID,
		JobID:         j.ID,
		JobTitle:      j.Title,
		ApplicantID:   actor.ProfileID,
		Reviewers:     lo.Uniq(policy.JobResource(j).Owners),
		At:            a.AppliedAt,
	})
	return a, nil
}

func (u *ApplicationService) ListMine(ctx context.Context, actor policy.Actor) ([]application.Application, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthorized
	}
	out, err := u.applications.ListByApplicant(ctx, actor.ProfileID, 0)
	if err != nil {
		u.dbError(err, "list applications failed")
		return nil, ErrInternal
	}
	return out, nil
}

func (u *ApplicationService) ListForJob(ctx context.Context, actor policy.Actor, jobID uuid.UUID) ([]application.Application, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthorized
	}
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrNotFound
		}
		u.dbError(err, "get job failed")
		return nil, ErrInternal
	}
	if err := authorize(actor, policy.ViewJobApplications, policy.JobResource(j)); err != nil {
		return nil, err
	}

	out, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		u.dbError(err, "list job applications failed")
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateStatus lets a reviewer move an application to any status.
func (u *ApplicationService) UpdateStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, status application.Status, notes *string) (application.Application, error) {
	if !status.Valid() {
		return application.Application{}, invalid("status", "oneof")
	}
	a, err := u.loadFor(ctx, actor, policy.ReviewApplication, id)
	if err != nil {
		return application.Application{}, err
	}

	out, err := u.applications.UpdateStatus(ctx, id, status, trimmedOrNil(notes))
	if err != nil {
		return application.Application{}, u.mapWriteErr(err)
	}

	title := ""
	if a.Job != nil {
		title = a.Job.Title
	}
	events.Publish(u.bus, events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
		ApplicationID: out.ID,
		JobID:         out.JobID,
		JobTitle:      title,
		ApplicantID:   out.ApplicantID,
		Status:        string(out.Status),
		At:            out.UpdatedAt,
	})
	return out, nil
}

func (u *ApplicationService) Withdraw(ctx context.Context, actor policy.Actor, id uuid.UUID) (application.Application, error) {
	if _, err := u.loadFor(ctx, actor, policy.EditApplication, id); err != nil {
		return application.Application{}, err
	}
	out, err := u.applications.UpdateStatus(ctx, id, application.StatusWithdrawn, nil)
	if err != nil {
		return application.Application{}, u.mapWriteErr(err)
	}
	return out, nil
}

func (u *ApplicationService) loadFor(ctx context.Context, actor policy.Actor, action policy.Action, id uuid.UUID) (application.Application, error) {
	if actor.Anonymous() {
		return application.Application{}, ErrUnauthorized
	}
	a, err := u.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		u.dbError(err, "get application failed")
		return application.Application{}, ErrInternal
	}

	res := policy.ApplicationResource(a)
	if action == policy.ReviewApplication {
		res = policy.ApplicationJobResource(a)
	}
	if err := authorize(actor, action, res); err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func (u *ApplicationService) mapWriteErr(err error) error {
	if errors.Is(err, application.ErrNotFound) {
		return ErrNotFound
	}
	u.dbError(err, "update application failed")
	return ErrInternal
}

func (u *ApplicationService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}
