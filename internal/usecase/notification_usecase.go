package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/policy"
	"job-portal/internal/events"
	"job-portal/internal/logger"
	"job-portal/internal/repository"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type NotificationUsecase interface {
	List(ctx context.Context, actor policy.Actor, unreadOnly bool) ([]notification.Notification, error)
	MarkRead(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error)
}

type NotificationService struct {
	notifications repository.NotificationRepository
	log           log.FieldLogger
}

func NewNotificationUsecase(notifications repository.NotificationRepository, l log.FieldLogger) *NotificationService {
	if l == nil {
		l = logger.Discard()
	}
	return &NotificationService{notifications: notifications, log: l}
}

func (u *NotificationService) List(ctx context.Context, actor policy.Actor, unreadOnly bool) ([]notification.Notification, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthorized
	}
	out, err := u.notifications.ListByUser(ctx, actor.ProfileID, unreadOnly)
	if err != nil {
		u.dbError(err, "list notifications failed")
		return nil, ErrInternal
	}
	return out, nil
}

func (u *NotificationService) MarkRead(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if actor.Anonymous() {
		return ErrUnauthorized
	}
	n, err := u.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return ErrNotFound
		}
		u.dbError(err, "get notification failed")
		return ErrInternal
	}
	if err := authorize(actor, policy.ReadNotification, policy.OwnedBy(n.UserID)); err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	if err := u.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return ErrNotFound
		}
		u.dbError(err, "mark notification read failed")
		return ErrInternal
	}
	return nil
}

func (u *NotificationService) MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error) {
	if actor.Anonymous() {
		return 0, ErrUnauthorized
	}
	n, err := u.notifications.MarkAllRead(ctx, actor.ProfileID)
	if err != nil {
		u.dbError(err, "mark all notifications read failed")
		return 0, ErrInternal
	}
	return n, nil
}

// SubscribeApplicationEvents turns application activity into
// application_update notifications: reviewers hear about new applications and
// applicants hear about status changes.
func (u *NotificationService) SubscribeApplicationEvents(bus EventBus.Bus) error {
	return events.Subscribe(bus, map[string]any{
		events.ApplicationCreatedTopic: func(e events.ApplicationCreated) {
			for _, reviewer := range e.Reviewers {
				u.notify(notification.Notification{
					UserID:  reviewer,
					Type:    notification.TypeApplicationUpdate,
					Title:   "New application",
					Message: fmt.Sprintf("Someone applied to %s", e.JobTitle),
					Metadata: map[string]any{
						"application_id": e.ApplicationID.String(),
						"job_id":         e.JobID.String(),
					},
				})
			}
		},
		events.ApplicationStatusChangedTopic: func(e events.ApplicationStatusChanged) {
			u.notify(notification.Notification{
				UserID:  e.ApplicantID,
				Type:    notification.TypeApplicationUpdate,
				Title:   "Application update",
				Message: fmt.Sprintf("Your application for %s is now %s", e.JobTitle, strings.ReplaceAll(e.Status, "_", " ")),
				Metadata: map[string]any{
					"application_id": e.ApplicationID.String(),
					"job_id":         e.JobID.String(),
					"status":         e.Status,
				},
			})
		},
	})
}

func (u *NotificationService) notify(n notification.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := u.notifications.Create(ctx, n); err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).
			WithField("user_id", n.UserID).
			WithError(err).Error("create notification failed")
	}
}

func (u *NotificationService) dbError(err error, msg string) {
	u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error(msg)
}
