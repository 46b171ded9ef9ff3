package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeApplicationUpdate  Type = "application_update"
	TypeNewJobAlert        Type = "new_job_alert"
	TypeInterviewScheduled Type = "interview_scheduled"
	TypeMessage            Type = "message"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Title     string
	Message   string
	IsRead    bool
	Metadata  map[string]any
	CreatedAt time.Time
}
