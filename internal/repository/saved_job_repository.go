package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/savedjob"

	"github.com/google/uuid"
)

type SavedJobRepository interface {
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	Get(ctx context.Context, userID, jobID uuid.UUID) (savedjob.SavedJob, error)
	Save(ctx context.Context, userID, jobID uuid.UUID) error
	Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresSavedJobRepository) Get(ctx context.Context, userID, jobID uuid.UUID) (savedjob.SavedJob, error) {
	var s savedjob.SavedJob
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, saved_at FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	).Scan(&s.ID, &s.UserID, &s.JobID, &s.SavedAt)
	if err != nil {
		if isNoRows(err) {
			return savedjob.SavedJob{}, savedjob.ErrNotFound
		}
		return savedjob.SavedJob{}, err
	}
	return s, nil
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, userID, jobID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id, saved_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, job_id) DO NOTHING`,
		uuid.New(), userID, jobID, time.Now().UTC(),
	)
	return err
}

// Remove reports whether a row was deleted.
func (r *PostgresSavedJobRepository) Remove(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListByUser returns the user's bookmarks on live jobs. Bookmarks on jobs that
// were unpublished since stay stored and reappear on republish.
func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.job_id, s.saved_at, `+jobColumns+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE s.user_id = $1 AND j.is_active
		 ORDER BY s.saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]savedjob.SavedJob, 0)
	for rows.Next() {
		var s savedjob.SavedJob
		j, err := scanJob(prefixRow{row: rows, prefix: []any{&s.ID, &s.UserID, &s.JobID, &s.SavedAt}})
		if err != nil {
			return nil, err
		}
		s.Job = &j
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM saved_jobs s JOIN jobs j ON j.id = s.job_id WHERE s.user_id = $1 AND j.is_active`,
		userID,
	).Scan(&n)
	return n, err
}

// prefixRow lets a shared scanner read a row that carries extra leading columns.
type prefixRow struct {
	row    database.Row
	prefix []any
}

func (p prefixRow) Scan(dest ...any) error {
	return p.row.Scan(append(append([]any{}, p.prefix...), dest...)...)
}
