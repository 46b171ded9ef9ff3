// Package events defines the in-process topics published on the EventBus.
package events

import (
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	JobPublishedTopic             = "job:published"
	JobChangedTopic               = "job:changed"
	ApplicationCreatedTopic       = "application:created"
	ApplicationStatusChangedTopic = "application:status_changed"
)

type JobPublished struct {
	JobID     uuid.UUID
	CompanyID uuid.UUID
	Title     string
	At        time.Time
}

// JobChanged covers any write that can alter public listings.
type JobChanged struct {
	JobID uuid.UUID
	Kind  string
	At    time.Time
}

type ApplicationCreated struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	JobTitle      string
	ApplicantID   uuid.UUID
	// profile ids allowed to review the application
	Reviewers []uuid.UUID
	At        time.Time
}

type ApplicationStatusChanged struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	JobTitle      string
	ApplicantID   uuid.UUID
	Status        string
	At            time.Time
}

func New() EventBus.Bus {
	return EventBus.New()
}

// Subscribe registers all handlers, stopping at the first failure.
func Subscribe(bus EventBus.Bus, handlers map[string]any) error {
	for topic, fn := range handlers {
		if err := bus.Subscribe(topic, fn); err != nil {
			return errors.Wrapf(err, "subscribe %s", topic)
		}
	}
	return nil
}

// Publish is a no-op on a nil bus so writers can run without subscribers.
func Publish(bus EventBus.Bus, topic string, payload any) {
	if bus == nil {
		return
	}
	bus.Publish(topic, payload)
}
