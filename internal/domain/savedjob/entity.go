package savedjob

import (
	"errors"
	"time"

	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("saved job not found")

type SavedJob struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	JobID   uuid.UUID
	SavedAt time.Time

	Job *job.Job
}
