package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
)

type companyRepository struct {
	s *Store
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.companies {
		if c.Slug == slug {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (r *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.companies {
		if c.Slug == newCompany.Slug {
			return company.Company{}, company.ErrCompanySlugExists
		}
	}
	newCompany.ID = newID()
	now := time.Now()
	newCompany.CreatedAt, newCompany.UpdatedAt = now, now
	r.s.companies[newCompany.ID] = newCompany
	return newCompany, nil
}
