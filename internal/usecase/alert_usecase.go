package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/domain/alert"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/policy"
	"job-portal/internal/logger"
	"job-portal/internal/metrics"
	"job-portal/internal/repository"
	"job-portal/internal/search"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type AlertInput struct {
	SearchQuery *string
	Filters     alert.Filters
	IsActive    *bool
}

type AlertUsecase interface {
	List(ctx context.Context, actor policy.Actor) ([]alert.Alert, error)
	Create(ctx context.Context, actor policy.Actor, in AlertInput) (alert.Alert, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in AlertInput) (alert.Alert, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	RunAlerts(ctx context.Context, now time.Time) (int, error)
}

type AlertService struct {
	alerts        repository.AlertRepository
	jobs          repository.JobRepository
	notifications repository.NotificationRepository
	log           log.FieldLogger
}

func NewAlertUsecase(alerts repository.AlertRepository, jobs repository.JobRepository, notifications repository.NotificationRepository, l log.FieldLogger) *AlertService {
	if l == nil {
		l = logger.Discard()
	}
	return &AlertService{alerts: alerts, jobs: jobs, notifications: notifications, log: l}
}

func (u *AlertService) List(ctx context.Context, actor policy.Actor) ([]alert.Alert, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthorized
	}
	out, err := u.alerts.ListByUser(ctx, actor.ProfileID)
	if err != nil {
		u.dbError(err, "list alerts failed")
		return nil, ErrInternal
	}
	return out, nil
}

func (u *AlertService) Create(ctx context.Context, actor policy.Actor, in AlertInput) (alert.Alert, error) {
	if err := authorize(actor, policy.CreateAlert, policy.None()); err != nil {
		return alert.Alert{}, err
	}
	a := alert.Alert{UserID: actor.ProfileID, IsActive: true}
	if err := applyAlertInput(&a, in); err != nil {
		return alert.Alert{}, err
	}

	out, err := u.alerts.Create(ctx, a)
	if err != nil {
		u.dbError(err, "create alert failed")
		return alert.Alert{}, ErrInternal
	}
	return out, nil
}

func (u *AlertService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, in AlertInput) (alert.Alert, error) {
	a, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return alert.Alert{}, err
	}
	if err := applyAlertInput(&a, in); err != nil {
		return alert.Alert{}, err
	}

	out, err := u.alerts.Update(ctx, a)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			return alert.Alert{}, ErrNotFound
		}
		u.dbError(err, "update alert failed")
		return alert.Alert{}, ErrInternal
	}
	return out, nil
}

func (u *AlertService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if _, err := u.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := u.alerts.Delete(ctx, id); err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			return ErrNotFound
		}
		u.dbError(err, "delete alert failed")
		return ErrInternal
	}
	return nil
}

// RunAlerts checks every active alert against jobs posted since it last fired
// and leaves one notification per alert with matches. It returns how many
// notifications were created. A failing alert is logged and skipped.
func (u *AlertService) RunAlerts(ctx context.Context, now time.Time) (int, error) {
	alerts, err := u.alerts.ListActive(ctx)
	if err != nil {
		u.dbError(err, "list active alerts failed")
		return 0, ErrInternal
	}
	if len(alerts) == 0 {
		return 0, nil
	}

	oldest := lo.MinBy(alerts, func(a, b alert.Alert) bool { return a.Since().Before(b.Since()) }).Since()
	fresh, err := u.jobs.ListActive(ctx, repository.JobFilter{PublishedAfter: &oldest})
	if err != nil {
		u.dbError(err, "list new jobs failed")
		return 0, ErrInternal
	}

	sent := 0
	for _, a := range alerts {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		matches := MatchAlert(a, fresh)
		if len(matches) == 0 {
			continue
		}

		entry := u.log.WithField("alert_id", a.ID)
		if _, err := u.notifications.Create(ctx, alertNotification(a, matches)); err != nil {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeAlerts).WithError(err).Error("create alert notification failed")
			continue
		}
		if err := u.alerts.MarkSent(ctx, a.ID, now); err != nil {
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeAlerts).WithError(err).Error("mark alert sent failed")
		}
		metrics.AlertNotifications.Inc()
		sent++
	}
	return sent, nil
}

// MatchAlert returns the jobs published after the alert's watermark that pass
// its query and filters.
func MatchAlert(a alert.Alert, jobs []job.Job) []job.Job {
	since := a.Since()
	unseen := lo.Filter(jobs, func(j job.Job, _ int) bool { return j.ListedAt().After(since) })
	return search.Filter(unseen, search.Criteria{
		Query:    a.Query(),
		Location: a.Filters.Location,
		JobType:  job.Type(a.Filters.JobType),
		Category: a.Filters.Category,
	})
}

func alertNotification(a alert.Alert, matches []job.Job) notification.Notification {
	title := "New jobs match your alert"
	if len(matches) == 1 {
		title = "A new job matches your alert"
	}
	msg := fmt.Sprintf("%d new job(s) posted", len(matches))
	if q := a.Query(); q != "" {
		msg = fmt.Sprintf("%d new job(s) posted for %q", len(matches), q)
	}
	return notification.Notification{
		UserID:  a.UserID,
		Type:    notification.TypeNewJobAlert,
		Title:   title,
		Message: msg,
		Metadata: map[string]any{
			"alert_id": a.ID.String(),
			"job_ids":  lo.Map(matches, func(j job.Job, _ int) string { return j.ID.String() }),
		},
	}
}

func (u *AlertService) loadOwned(ctx context.Context, actor policy.Actor, id uuid.UUID) (alert.Alert, error) {
	if actor.Anonymous() {
		return alert.Alert{}, ErrUnauthorized
	}
	a, err := u.alerts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, alert.ErrNotFound) {
			return alert.Alert{}, ErrNotFound
		}
		u.dbError(err, "get alert failed")
		return alert.Alert{}, ErrInternal
	}
	if err := authorize(actor, policy.ManageAlert, policy.OwnedBy(a.UserID)); err != nil {
		return alert.Alert{}, err
	}
	return a, nil
}

func (u *AlertService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}

func applyAlertInput(a *alert.Alert, in AlertInput) error {
	f := alert.Filters{
		Location: strings.TrimSpace(in.Filters.Location),
		JobType:  strings.TrimSpace(in.Filters.JobType),
		Category: strings.TrimSpace(in.Filters.Category),
	}
	if f.JobType != "" && !job.Type(f.JobType).Valid() {
		return invalid("filters.job_type", "oneof")
	}
	if f.Category != "" {
		if _, ok := search.Categories[f.Category]; !ok {
			return invalid("filters.category", "oneof")
		}
	}

	a.SearchQuery = trimmedOrNil(in.SearchQuery)
	a.Filters = f
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	return nil
}
