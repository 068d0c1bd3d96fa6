package holiday

import (
	"context"
	"time"
)

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Statuses []Status
	Types    []Type
	UserID   string
	// Overlap window, both ends inclusive.
	From *time.Time
	To   *time.Time
	// Order by end_date descending instead of start_date ascending.
	LatestFirst bool
}

// HolidayRepository - interface for holidays and holiday_users tables
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, companyID, id string) (Holiday, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, companyID, id string) (Holiday, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]Holiday, error)
	// Update writes live fields, pending fields and status.
	Update(ctx context.Context, h Holiday) error
	SetUsers(ctx context.Context, holidayID string, userIDs []string) error
	Delete(ctx context.Context, companyID, id string) error
}
