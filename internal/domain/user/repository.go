package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, companyID, id string) (User, error)
	// GetByIDs returns the users of the company among ids, ordered by id.
	// Unknown ids are silently skipped; callers compare lengths.
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]User, error)
	// LockByIDs is GetByIDs with the rows held FOR UPDATE until the
	// surrounding transaction ends.
	LockByIDs(ctx context.Context, companyID string, ids []string) ([]User, error)
	ListByCompany(ctx context.Context, companyID string) ([]User, error)
	ListEmployers(ctx context.Context, companyID string) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (User, error)
	// AdjustUsedHolidays adds each delta to used_holidays in one statement.
	// A result below zero fails the whole batch.
	AdjustUsedHolidays(ctx context.Context, companyID string, deltas map[string]int) error
}
