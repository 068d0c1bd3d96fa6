package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	id, err := uuid.NewV7()
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to generate company id: %w", err)
	}

	query := `
		INSERT INTO companies (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, created_at, updated_at
	`

	var created company.Company
	err = q.QueryRow(ctx, query, id.String(), newCompany.Name, newCompany.Slug).Scan(
		&created.ID,
		&created.Name,
		&created.Slug,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return company.Company{}, company.ErrCompanySlugExists
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	return c.getOne(ctx, "id", id)
}

// GetBySlug implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetBySlug(ctx context.Context, slug string) (company.Company, error) {
	return c.getOne(ctx, "slug", slug)
}

func (c *companyRepositoryImpl) getOne(ctx context.Context, column, value string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, name, slug, created_at, updated_at FROM companies WHERE ` + column + ` = $1`

	var found company.Company
	err := q.QueryRow(ctx, query, value).Scan(
		&found.ID,
		&found.Name,
		&found.Slug,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by %s: %w", column, err)
	}

	return found, nil
}
