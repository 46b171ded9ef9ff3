package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Update(ctx context.Context, p profile.Profile) (profile.Profile, error)
	OnboardEmployer(ctx context.Context, p profile.Profile, c company.Company) (profile.Profile, company.Company, error)
}

const profileColumns = `id, user_id, user_type::text, first_name, last_name, email, phone, location,
	avatar_url, resume_url, linkedin_url, portfolio_url, bio, skills, experience_level::text,
	desired_salary_min, desired_salary_max, is_open_to_work, profile_visibility::text,
	created_at, updated_at`

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id))
}

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	return updateProfile(ctx, r.db, p)
}

// OnboardEmployer saves the profile and creates the employer's company atomically.
func (r *PostgresProfileRepository) OnboardEmployer(ctx context.Context, p profile.Profile, c company.Company) (profile.Profile, company.Company, error) {
	var (
		savedProfile profile.Profile
		savedCompany company.Company
	)
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var err error
		savedProfile, err = updateProfile(ctx, tx, p)
		if err != nil {
			return err
		}
		c.CreatedBy = savedProfile.ID
		savedCompany, err = insertCompany(ctx, tx, c)
		return err
	})
	if err != nil {
		return profile.Profile{}, company.Company{}, err
	}
	return savedProfile, savedCompany, nil
}

func updateProfile(ctx context.Context, q database.Querier, p profile.Profile) (profile.Profile, error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	row := q.QueryRow(ctx,
		`UPDATE user_profiles SET
			user_type = $2::user_type,
			first_name = $3,
			last_name = $4,
			phone = $5,
			location = $6,
			avatar_url = $7,
			resume_url = $8,
			linkedin_url = $9,
			portfolio_url = $10,
			bio = $11,
			skills = $12,
			experience_level = $13::experience_level,
			desired_salary_min = $14,
			desired_salary_max = $15,
			is_open_to_work = $16,
			profile_visibility = $17::profile_visibility,
			updated_at = $18
		 WHERE id = $1
		 RETURNING `+profileColumns,
		p.ID,
		string(p.UserType),
		p.FirstName,
		p.LastName,
		p.Phone,
		p.Location,
		p.AvatarURL,
		p.ResumeURL,
		p.LinkedInURL,
		p.PortfolioURL,
		p.Bio,
		p.Skills,
		enumArg(p.ExperienceLevel),
		p.DesiredSalaryMin,
		p.DesiredSalaryMax,
		p.IsOpenToWork,
		string(p.Visibility),
		time.Now().UTC(),
	)
	return scanProfile(row)
}

func scanProfile(row database.Row) (profile.Profile, error) {
	var (
		p          profile.Profile
		userType   string
		experience *string
		visibility string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &userType, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Location,
		&p.AvatarURL, &p.ResumeURL, &p.LinkedInURL, &p.PortfolioURL, &p.Bio, &p.Skills, &experience,
		&p.DesiredSalaryMin, &p.DesiredSalaryMax, &p.IsOpenToWork, &visibility,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.UserType = profile.UserType(userType)
	p.ExperienceLevel = enumPtr[job.ExperienceLevel](experience)
	p.Visibility = profile.Visibility(visibility)
	return p, nil
}
