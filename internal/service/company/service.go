package company

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
)

// maxSlugAttempts bounds the suffix search for a free slug.
const maxSlugAttempts = 50

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
}

func NewCompanyService(companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{companyRepo: companyRepo}
}

// Create implements company.CompanyService. The free slug is looked up
// before inserting so a surrounding transaction is never aborted by a
// unique violation.
func (c *CompanyServiceImpl) Create(ctx context.Context, name string) (company.Company, error) {
	base := company.Slugify(name)
	if base == "" {
		return company.Company{}, company.ErrInvalidCompanyName
	}

	slug := base
	for i := 2; ; i++ {
		_, err := c.companyRepo.GetBySlug(ctx, slug)
		if errors.Is(err, company.ErrCompanyNotFound) {
			break
		}
		if err != nil {
			return company.Company{}, fmt.Errorf("failed to check company slug: %w", err)
		}
		if i > maxSlugAttempts {
			return company.Company{}, company.ErrCompanySlugExists
		}
		slug = base + "-" + strconv.Itoa(i)
	}

	created, err := c.companyRepo.Create(ctx, company.Company{Name: name, Slug: slug})
	if err != nil {
		return company.Company{}, err
	}
	return created, nil
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context, companyID string) (company.CompanyResponse, error) {
	if companyID == "" {
		return company.CompanyResponse{}, company.ErrCompanyNotFound
	}
	found, err := c.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(found), nil
}
