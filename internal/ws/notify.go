package ws

import (
	"encoding/json"
	"time"

	"job-portal/internal/events"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
)

const (
	EventJobPublished       = "job_published"
	EventApplicationCreated = "application_created"
)

type Event struct {
	Type      string    `json:"type"`
	JobID     uuid.UUID `json:"job_id"`
	Timestamp string    `json:"timestamp"`
}

func encode(typ string, jobID uuid.UUID, at time.Time) []byte {
	if at.IsZero() {
		at = time.Now()
	}
	b, err := json.Marshal(Event{Type: typ, JobID: jobID, Timestamp: at.UTC().Format(time.RFC3339)})
	if err != nil {
		return nil
	}
	return b
}

// Bridge forwards bus events to every connected websocket client.
func Bridge(bus EventBus.Bus, hub *Hub) error {
	return events.Subscribe(bus, map[string]any{
		events.JobPublishedTopic: func(e events.JobPublished) {
			if b := encode(EventJobPublished, e.JobID, e.At); b != nil {
				hub.Broadcast(b)
			}
		},
		events.ApplicationCreatedTopic: func(e events.ApplicationCreated) {
			if b := encode(EventApplicationCreated, e.JobID, e.At); b != nil {
				hub.Broadcast(b)
			}
		},
	})
}
