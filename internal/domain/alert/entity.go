package alert

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job alert not found")

type Filters struct {
	Location string `json:"location,omitempty"`
	JobType  string `json:"job_type,omitempty"`
	Category string `json:"category,omitempty"`
}

type Alert struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SearchQuery *string
	Filters     Filters
	IsActive    bool
	CreatedAt   time.Time
	LastSent    *time.Time
}

// Since is the point after which new jobs are considered unseen by this alert.
func (a Alert) Since() time.Time {
	if a.LastSent != nil && a.LastSent.After(a.CreatedAt) {
		return *a.LastSent
	}
	return a.CreatedAt
}

func (a Alert) Query() string {
	if a.SearchQuery == nil {
		return ""
	}
	return *a.SearchQuery
}
