package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

const DefaultCurrency = "USD"

// CompanyRef is the slice of the owning company a job carries around.
type CompanyRef struct {
	ID        uuid.UUID
	Name      string
	LogoURL   *string
	Location  *string
	Industry  *string
	CreatedBy uuid.UUID
}

type Job struct {
	ID                  uuid.UUID
	CompanyID           uuid.UUID
	PostedBy            uuid.UUID
	Title               string
	Description         string
	Requirements        *string
	Responsibilities    *string
	Location            *string
	LocationType        LocationType
	JobType             Type
	ExperienceLevel     ExperienceLevel
	SalaryMin           *int
	SalaryMax           *int
	SalaryCurrency      string
	Benefits            []string
	SkillsRequired      []string
	EducationRequired   *string
	ApplicationDeadline *time.Time
	IsActive            bool
	ViewCount           int
	ApplicationCount    int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	PublishedAt         *time.Time

	Company *CompanyRef
}

func (j Job) Status() string {
	if j.IsActive {
		return "active"
	}
	return "draft"
}

// ListedAt is when the job last went live, falling back to creation for rows
// that predate the publish stamp.
func (j Job) ListedAt() time.Time {
	if j.PublishedAt != nil {
		return *j.PublishedAt
	}
	return j.CreatedAt
}

func (j Job) LocationText() string {
	if j.Location == nil {
		return ""
	}
	return *j.Location
}

// Duplicate returns a draft copy of j owned by actor. Identity, timestamps and
// counters are reset; every other field is carried over.
func Duplicate(j Job, actor uuid.UUID, now time.Time) Job {
	cp := j
	cp.ID = uuid.Nil
	cp.Title = j.Title + " (Copy)"
	cp.PostedBy = actor
	cp.IsActive = false
	cp.ViewCount = 0
	cp.ApplicationCount = 0
	cp.CreatedAt = now
	cp.UpdatedAt = now
	cp.PublishedAt = nil
	cp.Benefits = append([]string(nil), j.Benefits...)
	cp.SkillsRequired = append([]string(nil), j.SkillsRequired...)
	return cp
}
