package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/profile"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateWithProfile(ctx context.Context, u user.User, p profile.Profile) (user.User, profile.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateWithProfile inserts the login row and its profile in one transaction.
func (r *PostgresUserRepository) CreateWithProfile(ctx context.Context, u user.User, p profile.Profile) (user.User, profile.Profile, error) {
	now := time.Now().UTC()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	u.CreatedAt, u.UpdatedAt = now, now
	p.UserID = u.ID
	p.Email = u.Email
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Visibility == "" {
		p.Visibility = profile.VisibilityPublic
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, password_hash, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO user_profiles (id, user_id, user_type, email, first_name, last_name, skills,
			                            is_open_to_work, profile_visibility, created_at, updated_at)
			 VALUES ($1, $2, $3::user_type, $4, $5, $6, $7, $8, $9::profile_visibility, $10, $11)`,
			p.ID, p.UserID, string(p.UserType), p.Email, p.FirstName, p.LastName, p.Skills,
			p.IsOpenToWork, string(p.Visibility), p.CreatedAt, p.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}
	return u, p, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	var u user.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
