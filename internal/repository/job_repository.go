package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

// JobFilter holds the equality filters pushed down to SQL. Text search and
// categories are applied in memory by the search package.
type JobFilter struct {
	JobType         job.Type
	ExperienceLevel job.ExperienceLevel
	LocationType    job.LocationType
	PublishedAfter  *time.Time
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	Update(ctx context.Context, j job.Job) (job.Job, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, f JobFilter) ([]job.Job, error)
	ListRecentActive(ctx context.Context, limit int) ([]job.Job, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error)
}

const jobColumns = `j.id, j.company_id, j.posted_by, j.title, j.description, j.requirements, j.responsibilities,
	j.location, j.location_type::text, j.job_type::text, j.experience_level::text,
	j.salary_min, j.salary_max, j.salary_currency, j.benefits, j.skills_required, j.education_required,
	j.application_deadline, j.is_active, j.view_count, j.application_count, j.created_at, j.updated_at,
	j.published_at, c.id, c.name, c.logo_url, c.location, c.industry, c.created_by`

const jobFrom = ` FROM jobs j JOIN companies c ON c.id = j.company_id`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	now := time.Now().UTC()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = job.DefaultCurrency
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, company_id, posted_by, title, description, requirements, responsibilities,
		                   location, location_type, job_type, experience_level, salary_min, salary_max,
		                   salary_currency, benefits, skills_required, education_required, application_deadline,
		                   is_active, view_count, application_count, created_at, updated_at, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::location_type, $10::job_type, $11::experience_level,
		         $12, $13, $14, $15, $16, $17, $18, $19, 0, 0, $20, $20, CASE WHEN $19 THEN $20::timestamptz END)`,
		j.ID,
		j.CompanyID,
		j.PostedBy,
		j.Title,
		j.Description,
		j.Requirements,
		j.Responsibilities,
		j.Location,
		string(j.LocationType),
		string(j.JobType),
		string(j.ExperienceLevel),
		j.SalaryMin,
		j.SalaryMax,
		j.SalaryCurrency,
		nonNil(j.Benefits),
		nonNil(j.SkillsRequired),
		j.EducationRequired,
		j.ApplicationDeadline,
		j.IsActive,
		now,
	)
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) Update(ctx context.Context, j job.Job) (job.Job, error) {
	if j.SalaryCurrency == "" {
		j.SalaryCurrency = job.DefaultCurrency
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET
			title = $2,
			description = $3,
			requirements = $4,
			responsibilities = $5,
			location = $6,
			location_type = $7::location_type,
			job_type = $8::job_type,
			experience_level = $9::experience_level,
			salary_min = $10,
			salary_max = $11,
			salary_currency = $12,
			benefits = $13,
			skills_required = $14,
			education_required = $15,
			application_deadline = $16,
			updated_at = $17
		 WHERE id = $1`,
		j.ID,
		j.Title,
		j.Description,
		j.Requirements,
		j.Responsibilities,
		j.Location,
		string(j.LocationType),
		string(j.JobType),
		string(j.ExperienceLevel),
		j.SalaryMin,
		j.SalaryMax,
		j.SalaryCurrency,
		nonNil(j.Benefits),
		nonNil(j.SkillsRequired),
		j.EducationRequired,
		j.ApplicationDeadline,
		time.Now().UTC(),
	)
	if err != nil {
		return job.Job{}, err
	}
	if affected == 0 {
		return job.Job{}, job.ErrNotFound
	}
	return r.GetByID(ctx, j.ID)
}

// SetActive flips the publish flag. A draft going live is stamped with
// published_at. Setting the current value again still succeeds.
func (r *PostgresJobRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET
			published_at = CASE WHEN $2 AND NOT is_active THEN $3 ELSE published_at END,
			is_active = $2,
			updated_at = $3
		 WHERE id = $1`,
		id, active, time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+` WHERE j.id = $1`, id))
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f JobFilter) ([]job.Job, error) {
	var jobType, experience, locationType *string
	if f.JobType != "" {
		jobType = enumArg(&f.JobType)
	}
	if f.ExperienceLevel != "" {
		experience = enumArg(&f.ExperienceLevel)
	}
	if f.LocationType != "" {
		locationType = enumArg(&f.LocationType)
	}

	return r.list(ctx,
		`SELECT `+jobColumns+jobFrom+`
		 WHERE j.is_active
		   AND ($1::job_type IS NULL OR j.job_type = $1::job_type)
		   AND ($2::experience_level IS NULL OR j.experience_level = $2::experience_level)
		   AND ($3::location_type IS NULL OR j.location_type = $3::location_type)
		   AND ($4::timestamptz IS NULL OR COALESCE(j.published_at, j.created_at) > $4)
		 ORDER BY j.created_at DESC`,
		jobType, experience, locationType, f.PublishedAfter,
	)
}

func (r *PostgresJobRepository) ListRecentActive(ctx context.Context, limit int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.list(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.is_active ORDER BY j.created_at DESC LIMIT $1`,
		limit,
	)
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]job.Job, error) {
	return r.list(ctx,
		`SELECT `+jobColumns+jobFrom+` WHERE j.company_id = $1 ORDER BY j.created_at DESC`,
		companyID,
	)
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var (
		j                                 job.Job
		c                                 job.CompanyRef
		locationType, jobType, experience string
	)
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.PostedBy, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities,
		&j.Location, &locationType, &jobType, &experience,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &j.Benefits, &j.SkillsRequired, &j.EducationRequired,
		&j.ApplicationDeadline, &j.IsActive, &j.ViewCount, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt,
		&j.PublishedAt, &c.ID, &c.Name, &c.LogoURL, &c.Location, &c.Industry, &c.CreatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.LocationType = job.LocationType(locationType)
	j.JobType = job.Type(jobType)
	j.ExperienceLevel = job.ExperienceLevel(experience)
	j.Company = &c
	return j, nil
}
