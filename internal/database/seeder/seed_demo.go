package seeder

import (
	"context"

	"job-portal/internal/database"

	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmployerEmail    = "employer@demo.local"
	DemoEmployerPassword = "demo-password"
)

// Defaults is the demo data set: one employer with a company, then its jobs.
func Defaults() []Seeder {
	return []Seeder{DemoEmployerSeeder{}, DemoJobsSeeder{}}
}

type DemoEmployerSeeder struct{}

func (DemoEmployerSeeder) Name() string { return "demo_employer" }

func (DemoEmployerSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireSchema(ctx, db, map[string][]string{
		"users":         {"id", "email", "password_hash"},
		"user_profiles": {"id", "user_id", "user_type"},
		"companies":     {"id", "name", "created_by"},
	}); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoEmployerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var userID string
		err := tx.QueryRow(
			ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2)
			 ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
			 RETURNING id`,
			DemoEmployerEmail,
			string(hash),
		).Scan(&userID)
		if err != nil {
			return err
		}

		var profileID string
		err = tx.QueryRow(
			ctx,
			`INSERT INTO user_profiles (user_id, user_type, email, first_name, last_name, location)
			 VALUES ($1, 'employer', $2, 'Demo', 'Employer', 'San Francisco, CA')
			 ON CONFLICT (user_id) DO UPDATE SET user_type = 'employer'
			 RETURNING id`,
			userID,
			DemoEmployerEmail,
		).Scan(&profileID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`INSERT INTO companies (name, description, website, industry, size, location, founded_year, benefits, created_by)
			 VALUES ('Acme Labs', 'Builds tools for builders.', 'https://acme.example.com', 'Technology', 'medium',
			         'San Francisco, CA', 2012, ARRAY['Health insurance', 'Remote stipend'], $1)
			 ON CONFLICT (created_by) DO NOTHING`,
			profileID,
		)
		return err
	})
}

type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireSchema(ctx, db, map[string][]string{
		"jobs": {"id", "company_id", "posted_by", "title", "is_active", "published_at"},
	}); err != nil {
		return err
	}

	items := []struct {
		Title        string
		Description  string
		Location     string
		LocationType string
		JobType      string
		Experience   string
		SalaryMin    *int
		SalaryMax    *int
		Skills       []string
	}{
		{
			Title:        "Senior Backend Engineer",
			Description:  "Own the services behind our hiring platform.",
			Location:     "San Francisco, CA",
			LocationType: "hybrid",
			JobType:      "full_time",
			Experience:   "senior",
			SalaryMin:    intPtr(140000),
			SalaryMax:    intPtr(180000),
			Skills:       []string{"Go", "PostgreSQL", "Redis"},
		},
		{
			Title:        "Product Designer",
			Description:  "Shape UI and UX across web and mobile.",
			Location:     "Remote",
			LocationType: "remote",
			JobType:      "full_time",
			Experience:   "mid",
			SalaryMin:    intPtr(90000),
			Skills:       []string{"Figma", "Prototyping"},
		},
		{
			Title:        "Marketing Intern",
			Description:  "Help with content and social media campaigns.",
			Location:     "New York, NY",
			LocationType: "onsite",
			JobType:      "internship",
			Experience:   "entry",
			Skills:       []string{"SEO", "Copywriting"},
		},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		var companyID, profileID string
		err := tx.QueryRow(
			ctx,
			`SELECT c.id, c.created_by FROM companies c
			 JOIN user_profiles p ON p.id = c.created_by
			 WHERE p.email = $1`,
			DemoEmployerEmail,
		).Scan(&companyID, &profileID)
		if err != nil {
			return err
		}

		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (company_id, posted_by, title, description, location, location_type, job_type,
				                   experience_level, salary_min, salary_max, skills_required, is_active, published_at)
				 SELECT $1, $2, $3, $4, $5, $6::location_type, $7::job_type, $8::experience_level, $9, $10, $11, true, now()
				 WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE company_id = $1 AND title = $3)`,
				companyID,
				profileID,
				it.Title,
				it.Description,
				it.Location,
				it.LocationType,
				it.JobType,
				it.Experience,
				it.SalaryMin,
				it.SalaryMax,
				it.Skills,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func intPtr(v int) *int { return &v }
