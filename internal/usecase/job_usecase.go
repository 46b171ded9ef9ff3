package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/events"
	"job-portal/internal/logger"
	"job-portal/internal/metrics"
	"job-portal/internal/repository"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type JobInput struct {
	Title               string
	Description         string
	Requirements        *string
	Responsibilities    *string
	Location            *string
	LocationType        string
	JobType             string
	ExperienceLevel     string
	SalaryMin           *int
	SalaryMax           *int
	SalaryCurrency      string
	Benefits            []string
	SkillsRequired      []string
	EducationRequired   *string
	ApplicationDeadline *time.Time
}

// JobView is a job as shown on its detail page.
type JobView struct {
	Job             job.Job
	FormattedSalary string
	PostedAgo       string
	HasApplied      bool
	IsSaved         bool
}

const (
	TabAll    = "all"
	TabActive = "active"
	TabDraft  = "draft"
)

type JobStats struct {
	Total    int
	Active   int
	Draft    int
	Archived int
}

type EmployerJobs struct {
	Company *company.Company
	Jobs    []job.Job
	Stats   JobStats
}

type JobUsecase interface {
	Create(ctx context.Context, actor policy.Actor, in JobInput, publish bool) (job.Job, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in JobInput) (job.Job, error)
	Publish(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error)
	Unpublish(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	Duplicate(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error)
	GetPublic(ctx context.Context, viewer policy.Actor, id uuid.UUID) (JobView, error)
	Preview(ctx context.Context, actor policy.Actor, id uuid.UUID) (JobView, error)
	ListForEmployer(ctx context.Context, actor policy.Actor, tab string) (EmployerJobs, error)
}

type JobService struct {
	jobs         repository.JobRepository
	companies    repository.CompanyRepository
	applications repository.ApplicationRepository
	saved        repository.SavedJobRepository
	bus          EventBus.Bus
	log          log.FieldLogger
	now          func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	applications repository.ApplicationRepository,
	saved repository.SavedJobRepository,
	bus EventBus.Bus,
	l log.FieldLogger,
) *JobService {
	if l == nil {
		l = logger.Discard()
	}
	return &JobService{
		jobs:         jobs,
		companies:    companies,
		applications: applications,
		saved:        saved,
		bus:          bus,
		log:          l,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (u *JobService) Create(ctx context.Context, actor policy.Actor, in JobInput, publish bool) (job.Job, error) {
	if err := authorize(actor, policy.CreateJob, policy.None()); err != nil {
		return job.Job{}, err
	}
	co, err := u.companies.GetByCreator(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return job.Job{}, ErrCompanyRequired
		}
		u.dbError(err, "get employer company failed")
		return job.Job{}, ErrInternal
	}

	j := job.Job{CompanyID: co.ID, PostedBy: actor.ProfileID, IsActive: publish}
	if err := applyJobInput(&j, in); err != nil {
		return job.Job{}, err
	}

	out, err := u.jobs.Create(ctx, j)
	if err != nil {
		u.dbError(err, "create job failed")
		return job.Job{}, ErrInternal
	}

	if out.IsActive {
		u.published(out)
	}
	u.changed(out.ID, "created")
	return out, nil
}

func (u *JobService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in JobInput) (job.Job, error) {
	current, err := u.loadFor(ctx, actor, policy.EditJob, id)
	if err != nil {
		return job.Job{}, err
	}
	if err := applyJobInput(&current, in); err != nil {
		return job.Job{}, err
	}

	out, err := u.jobs.Update(ctx, current)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.dbError(err, "update job failed")
		return job.Job{}, ErrInternal
	}
	u.changed(out.ID, "updated")
	return out, nil
}

// Publish makes a job visible. Publishing an active job succeeds without
// emitting anything.
func (u *JobService) Publish(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error) {
	j, err := u.loadFor(ctx, actor, policy.PublishJob, id)
	if err != nil {
		return job.Job{}, err
	}
	if j.IsActive {
		return j, nil
	}

	if err := u.jobs.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.dbError(err, "publish job failed")
		return job.Job{}, ErrInternal
	}
	j.IsActive = true
	j.UpdatedAt = u.now()

	metrics.JobsPublished.Inc()
	u.published(j)
	u.changed(j.ID, "published")
	return j, nil
}

func (u *JobService) Unpublish(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error) {
	j, err := u.loadFor(ctx, actor, policy.EditJob, id)
	if err != nil {
		return job.Job{}, err
	}
	if !j.IsActive {
		return j, nil
	}

	if err := u.jobs.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.dbError(err, "unpublish job failed")
		return job.Job{}, ErrInternal
	}
	j.IsActive = false
	j.UpdatedAt = u.now()
	u.changed(j.ID, "unpublished")
	return j, nil
}

func (u *JobService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if _, err := u.loadFor(ctx, actor, policy.DeleteJob, id); err != nil {
		return err
	}
	if err := u.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		u.dbError(err, "delete job failed")
		return ErrInternal
	}
	u.changed(id, "deleted")
	return nil
}

func (u *JobService) Duplicate(ctx context.Context, actor policy.Actor, id uuid.UUID) (job.Job, error) {
	src, err := u.loadFor(ctx, actor, policy.DuplicateJob, id)
	if err != nil {
		return job.Job{}, err
	}

	out, err := u.jobs.Create(ctx, job.Duplicate(src, actor.ProfileID, u.now()))
	if err != nil {
		u.dbError(err, "duplicate job failed")
		return job.Job{}, ErrInternal
	}
	return out, nil
}

// GetPublic shows an active job and counts the view. Drafts look missing.
func (u *JobService) GetPublic(ctx context.Context, viewer policy.Actor, id uuid.UUID) (JobView, error) {
	j, err := u.load(ctx, id)
	if err != nil {
		return JobView{}, err
	}
	if !j.IsActive {
		return JobView{}, ErrNotFound
	}

	if err := u.jobs.IncrementViews(ctx, id); err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Warn("increment job views failed")
	} else {
		j.ViewCount++
	}

	view := u.view(j)
	if viewer.Role == profile.UserTypeJobSeeker && !viewer.Anonymous() {
		if ok, err := u.applications.Exists(ctx, id, viewer.ProfileID); err == nil {
			view.HasApplied = ok
		} else {
			u.log.WithError(err).Warn("has_applied lookup failed")
		}
		if ok, err := u.saved.Exists(ctx, viewer.ProfileID, id); err == nil {
			view.IsSaved = ok
		} else {
			u.log.WithError(err).Warn("is_saved lookup failed")
		}
	}
	return view, nil
}

func (u *JobService) Preview(ctx context.Context, actor policy.Actor, id uuid.UUID) (JobView, error) {
	j, err := u.loadFor(ctx, actor, policy.PreviewJob, id)
	if err != nil {
		return JobView{}, err
	}
	return u.view(j), nil
}

func (u *JobService) ListForEmployer(ctx context.Context, actor policy.Actor, tab string) (EmployerJobs, error) {
	if err := authorize(actor, policy.CreateJob, policy.None()); err != nil {
		return EmployerJobs{}, err
	}
	switch tab {
	case "":
		tab = TabAll
	case TabAll, TabActive, TabDraft:
	default:
		return EmployerJobs{}, invalid("tab", "oneof")
	}

	co, err := u.companies.GetByCreator(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return EmployerJobs{Jobs: []job.Job{}}, nil
		}
		u.dbError(err, "get employer company failed")
		return EmployerJobs{}, ErrInternal
	}

	all, err := u.jobs.ListByCompany(ctx, co.ID)
	if err != nil {
		u.dbError(err, "list company jobs failed")
		return EmployerJobs{}, ErrInternal
	}

	active := lo.CountBy(all, func(j job.Job) bool { return j.IsActive })
	stats := JobStats{Total: len(all), Active: active, Draft: len(all) - active}

	items := lo.Filter(all, func(j job.Job, _ int) bool {
		switch tab {
		case TabActive:
			return j.IsActive
		case TabDraft:
			return !j.IsActive
		}
		return true
	})
	return EmployerJobs{Company: &co, Jobs: items, Stats: stats}, nil
}

func (u *JobService) view(j job.Job) JobView {
	return JobView{
		Job:             j,
		FormattedSalary: job.FormatSalary(j.SalaryMin, j.SalaryMax, j.SalaryCurrency),
		PostedAgo:       job.PostedAgo(j.CreatedAt, u.now()),
	}
}

func (u *JobService) load(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		u.dbError(err, "get job failed")
		return job.Job{}, ErrInternal
	}
	return j, nil
}

// loadFor fetches the job and checks action against it. Anonymous callers
// are rejected before the lookup.
func (u *JobService) loadFor(ctx context.Context, actor policy.Actor, action policy.Action, id uuid.UUID) (job.Job, error) {
	if actor.Anonymous() {
		return job.Job{}, ErrUnauthorized
	}
	j, err := u.load(ctx, id)
	if err != nil {
		return job.Job{}, err
	}
	if err := authorize(actor, action, policy.JobResource(j)); err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (u *JobService) published(j job.Job) {
	events.Publish(u.bus, events.JobPublishedTopic, events.JobPublished{
		JobID:     j.ID,
		CompanyID: j.CompanyID,
		Title:     j.Title,
		At:        u.now(),
	})
}

func (u *JobService) changed(id uuid.UUID, kind string) {
	events.Publish(u.bus, events.JobChangedTopic, events.JobChanged{JobID: id, Kind: kind, At: u.now()})
}

func (u *JobService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}

func applyJobInput(j *job.Job, in JobInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return invalid("title", "required")
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return invalid("description", "required")
	}

	jobType := job.Type(lo.CoalesceOrEmpty(in.JobType, string(job.TypeFullTime)))
	if !jobType.Valid() {
		return invalid("job_type", "oneof")
	}
	level := job.ExperienceLevel(lo.CoalesceOrEmpty(in.ExperienceLevel, string(job.ExperienceMid)))
	if !level.Valid() {
		return invalid("experience_level", "oneof")
	}
	locType := job.LocationType(lo.CoalesceOrEmpty(in.LocationType, string(job.LocationOnsite)))
	if !locType.Valid() {
		return invalid("location_type", "oneof")
	}

	if in.SalaryMin != nil && *in.SalaryMin < 0 {
		return invalid("salary_min", "min")
	}
	if in.SalaryMax != nil && *in.SalaryMax < 0 {
		return invalid("salary_max", "min")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return invalid("salary_max", "gtefield")
	}

	currency := strings.ToUpper(strings.TrimSpace(in.SalaryCurrency))
	if currency == "" {
		currency = job.DefaultCurrency
	}
	if len(currency) != 3 {
		return invalid("salary_currency", "len")
	}

	j.Title = title
	j.Description = desc
	j.Requirements = trimmedOrNil(in.Requirements)
	j.Responsibilities = trimmedOrNil(in.Responsibilities)
	j.Location = trimmedOrNil(in.Location)
	j.LocationType = locType
	j.JobType = jobType
	j.ExperienceLevel = level
	j.SalaryMin = in.SalaryMin
	j.SalaryMax = in.SalaryMax
	j.SalaryCurrency = currency
	j.Benefits = cleanList(in.Benefits)
	j.SkillsRequired = cleanList(in.SkillsRequired)
	j.EducationRequired = trimmedOrNil(in.EducationRequired)
	j.ApplicationDeadline = in.ApplicationDeadline
	return nil
}
