package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/alert"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, a alert.Alert) (alert.Alert, error)
	Update(ctx context.Context, a alert.Alert) (alert.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (alert.Alert, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error)
	ListActive(ctx context.Context) ([]alert.Alert, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
}

const alertColumns = `id, user_id, search_query, filters, is_active, created_at, last_sent`

type PostgresAlertRepository struct {
	db database.DB
}

func NewPostgresAlertRepository(db database.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

func (r *PostgresAlertRepository) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return scanAlert(r.db.QueryRow(ctx,
		`INSERT INTO job_alerts (id, user_id, search_query, filters, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+alertColumns,
		a.ID, a.UserID, a.SearchQuery, a.Filters, a.IsActive, time.Now().UTC(),
	))
}

func (r *PostgresAlertRepository) Update(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	return scanAlert(r.db.QueryRow(ctx,
		`UPDATE job_alerts SET search_query = $2, filters = $3, is_active = $4
		 WHERE id = $1
		 RETURNING `+alertColumns,
		a.ID, a.SearchQuery, a.Filters, a.IsActive,
	))
}

func (r *PostgresAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return alert.ErrNotFound
	}
	return nil
}

func (r *PostgresAlertRepository) GetByID(ctx context.Context, id uuid.UUID) (alert.Alert, error) {
	return scanAlert(r.db.QueryRow(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE id = $1`, id))
}

func (r *PostgresAlertRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresAlertRepository) ListActive(ctx context.Context) ([]alert.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM job_alerts WHERE is_active ORDER BY created_at ASC`)
}

func (r *PostgresAlertRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE job_alerts SET last_sent = $2 WHERE id = $1`, id, at)
	return err
}

func (r *PostgresAlertRepository) list(ctx context.Context, query string, args ...any) ([]alert.Alert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]alert.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
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

func scanAlert(row database.Row) (alert.Alert, error) {
	var a alert.Alert
	err := row.Scan(&a.ID, &a.UserID, &a.SearchQuery, &a.Filters, &a.IsActive, &a.CreatedAt, &a.LastSent)
	if err != nil {
		if isNoRows(err) {
			return alert.Alert{}, alert.ErrNotFound
		}
		return alert.Alert{}, err
	}
	return a, nil
}
