package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetBySlug(ctx context.Context, slug string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
}
