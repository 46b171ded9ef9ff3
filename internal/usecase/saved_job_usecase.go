package usecase

import (
	"context"
	"errors"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/savedjob"
	"job-portal/internal/logger"
	"job-portal/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type SavedJobUsecase interface {
	Toggle(ctx context.Context, actor policy.Actor, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, actor policy.Actor) ([]savedjob.SavedJob, error)
	Remove(ctx context.Context, actor policy.Actor, jobID uuid.UUID) error
}

type SavedJobService struct {
	saved repository.SavedJobRepository
	jobs  repository.JobRepository
	log   log.FieldLogger
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository, l log.FieldLogger) *SavedJobService {
	if l == nil {
		l = logger.Discard()
	}
	return &SavedJobService{saved: saved, jobs: jobs, log: l}
}

// Toggle saves the job when it is not saved yet and unsaves it otherwise. It
// reports the resulting state. Only live jobs can be saved.
func (u *SavedJobService) Toggle(ctx context.Context, actor policy.Actor, jobID uuid.UUID) (bool, error) {
	if err := authorize(actor, policy.SaveJob, policy.None()); err != nil {
		return false, err
	}

	saved, err := u.saved.Exists(ctx, actor.ProfileID, jobID)
	if err != nil {
		u.dbError(err, "saved job lookup failed")
		return false, ErrInternal
	}
	if saved {
		if _, err := u.saved.Remove(ctx, actor.ProfileID, jobID); err != nil {
			u.dbError(err, "unsave job failed")
			return false, ErrInternal
		}
		return false, nil
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return false, ErrNotFound
		}
		u.dbError(err, "get job failed")
		return false, ErrInternal
	}
	// drafts are only visible to their owners
	if !j.IsActive {
		return false, ErrNotFound
	}
	if err := u.saved.Save(ctx, actor.ProfileID, jobID); err != nil {
		u.dbError(err, "save job failed")
		return false, ErrInternal
	}
	return true, nil
}

func (u *SavedJobService) List(ctx context.Context, actor policy.Actor) ([]savedjob.SavedJob, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthorized
	}
	out, err := u.saved.ListByUser(ctx, actor.ProfileID)
	if err != nil {
		u.dbError(err, "list saved jobs failed")
		return nil, ErrInternal
	}
	return out, nil
}

func (u *SavedJobService) Remove(ctx context.Context, actor policy.Actor, jobID uuid.UUID) error {
	if actor.Anonymous() {
		return ErrUnauthorized
	}
	s, err := u.saved.Get(ctx, actor.ProfileID, jobID)
	if err != nil {
		if errors.Is(err, savedjob.ErrNotFound) {
			return ErrNotFound
		}
		u.dbError(err, "get saved job failed")
		return ErrInternal
	}
	if err := authorize(actor, policy.ManageSavedJob, policy.OwnedBy(s.UserID)); err != nil {
		return err
	}

	removed, err := u.saved.Remove(ctx, actor.ProfileID, jobID)
	if err != nil {
		u.dbError(err, "remove saved job failed")
		return ErrInternal
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (u *SavedJobService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}
