package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]application.Application, error)
	CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	CountPendingForJobs(ctx context.Context, jobIDs []uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) (application.Application, error)
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status::text, a.notes,
	a.applied_at, a.updated_at,
	j.title, j.location, c.name, j.posted_by, c.created_by,
	p.first_name, p.last_name, p.email, p.resume_url`

const applicationFrom = ` FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN user_profiles p ON p.id = a.applicant_id`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Create stores the application and bumps the job's application counter in one transaction.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	now := time.Now().UTC()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO applications (id, job_id, applicant_id, cover_letter, resume_url, status, applied_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6::application_status, $7, $7)`,
			a.ID, a.JobID, a.ApplicantID, a.CoverLetter, a.ResumeURL, string(a.Status), now,
		); err != nil {
			if isUniqueViolation(err) {
				return application.ErrAlreadyApplied
			}
			return err
		}

		affected, err := tx.Exec(ctx,
			`UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, a.JobID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return job.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return application.Application{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+applicationFrom+` WHERE a.id = $1`, id))
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// ListByApplicant returns newest first; limit <= 0 means no limit.
func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, limit int) ([]application.Application, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	return r.list(ctx,
		`SELECT `+applicationColumns+applicationFrom+`
		 WHERE a.applicant_id = $1
		 ORDER BY a.applied_at DESC
		 LIMIT $2`,
		applicantID, lim,
	)
}

func (r *PostgresApplicationRepository) CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, applicantID).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+applicationFrom+` WHERE a.job_id = $1 ORDER BY a.applied_at DESC`,
		jobID,
	)
}

func (r *PostgresApplicationRepository) CountPendingForJobs(ctx context.Context, jobIDs []uuid.UUID) (int, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = ANY($1::uuid[]) AND status = 'pending'`,
		jobIDs,
	).Scan(&n)
	return n, err
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status, notes *string) (application.Application, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET status = $2::application_status, notes = COALESCE($3, notes), updated_at = $4
		 WHERE id = $1`,
		id, string(status), notes, time.Now().UTC(),
	)
	if err != nil {
		return application.Application{}, err
	}
	if affected == 0 {
		return application.Application{}, application.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var (
		a         application.Application
		jr        application.JobRef
		applicant application.ApplicantRef
		status    string
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.CoverLetter, &a.ResumeURL, &status, &a.Notes,
		&a.AppliedAt, &a.UpdatedAt,
		&jr.Title, &jr.Location, &jr.CompanyName, &jr.PostedBy, &jr.CompanyCreatedBy,
		&applicant.FirstName, &applicant.LastName, &applicant.Email, &applicant.ResumeURL,
	)
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.Job = &jr
	a.Applicant = &applicant
	return a, nil
}
