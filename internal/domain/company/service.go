package company

import "context"

type CompanyService interface {
	// Create stores a tenant under a slug derived from name, suffixed
	// until it is free.
	Create(ctx context.Context, name string) (Company, error)
	GetMyCompany(ctx context.Context, companyID string) (CompanyResponse, error)
}
