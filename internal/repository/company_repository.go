package repository

import (
	"context"
	"strings"
	"time"

	"job-portal/internal/database"
	"job-portal/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyFilter struct {
	Search   string
	Industry string
}

type CompanyRepository interface {
	Create(ctx context.Context, c company.Company) (company.Company, error)
	Update(ctx context.Context, c company.Company) (company.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	GetByCreator(ctx context.Context, profileID uuid.UUID) (company.Company, error)
	List(ctx context.Context, f CompanyFilter) ([]company.Company, error)
	Industries(ctx context.Context) ([]string, error)
}

const companyColumns = `c.id, c.name, c.description, c.website, c.logo_url, c.industry, c.size::text,
	c.location, c.founded_year, c.culture_images, c.benefits, c.created_by, c.created_at, c.updated_at`

const activeJobCount = `(SELECT COUNT(*) FROM jobs j WHERE j.company_id = c.id AND j.is_active)`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	return insertCompany(ctx, r.db, c)
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies c SET
			name = $2,
			description = $3,
			website = $4,
			logo_url = $5,
			industry = $6,
			size = $7::company_size,
			location = $8,
			founded_year = $9,
			culture_images = $10,
			benefits = $11,
			updated_at = $12
		 WHERE c.id = $1
		 RETURNING `+companyColumns+`, `+activeJobCount,
		c.ID,
		c.Name,
		c.Description,
		c.Website,
		c.LogoURL,
		c.Industry,
		enumArg(c.Size),
		c.Location,
		c.FoundedYear,
		nonNil(c.CultureImages),
		nonNil(c.Benefits),
		time.Now().UTC(),
	)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+`, `+activeJobCount+` FROM companies c WHERE c.id = $1`, id))
}

func (r *PostgresCompanyRepository) GetByCreator(ctx context.Context, profileID uuid.UUID) (company.Company, error) {
	return scanCompany(r.db.QueryRow(ctx,
		`SELECT `+companyColumns+`, `+activeJobCount+` FROM companies c WHERE c.created_by = $1`, profileID))
}

func (r *PostgresCompanyRepository) List(ctx context.Context, f CompanyFilter) ([]company.Company, error) {
	var search, industry *string
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		search = &pattern
	}
	if s := strings.TrimSpace(f.Industry); s != "" {
		industry = &s
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+`, `+activeJobCount+`
		 FROM companies c
		 WHERE ($1::text IS NULL OR c.name ILIKE $1)
		   AND ($2::text IS NULL OR c.industry = $2)
		 ORDER BY c.name ASC`,
		search, industry,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) Industries(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT industry FROM companies WHERE industry IS NOT NULL AND industry <> '' ORDER BY industry`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func insertCompany(ctx context.Context, q database.Querier, c company.Company) (company.Company, error) {
	now := time.Now().UTC()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := q.QueryRow(ctx,
		`INSERT INTO companies AS c (id, name, description, website, logo_url, industry, size, location,
		                          founded_year, culture_images, benefits, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::company_size, $8, $9, $10, $11, $12, $13, $13)
		 RETURNING `+companyColumns+`, 0`,
		c.ID,
		c.Name,
		c.Description,
		c.Website,
		c.LogoURL,
		c.Industry,
		enumArg(c.Size),
		c.Location,
		c.FoundedYear,
		nonNil(c.CultureImages),
		nonNil(c.Benefits),
		c.CreatedBy,
		now,
	)
	out, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			return company.Company{}, company.ErrAlreadyExists
		}
		return company.Company{}, err
	}
	return out, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var (
		c    company.Company
		size *string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Website, &c.LogoURL, &c.Industry, &size,
		&c.Location, &c.FoundedYear, &c.CultureImages, &c.Benefits, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		&c.ActiveJobCount,
	)
	if err != nil {
		if isNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	c.Size = enumPtr[company.Size](size)
	return c, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
