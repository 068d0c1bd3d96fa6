package holiday

import (
	"context"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
)

type HolidayService interface {
	// Workflow
	CreateHoliday(ctx context.Context, actor user.Actor, req CreateHolidayRequest) (ActionResponse, error)
	EditHoliday(ctx context.Context, actor user.Actor, id string, req EditHolidayRequest) (ActionResponse, error)
	DeleteHoliday(ctx context.Context, actor user.Actor, id string) (ActionResponse, error)
	ProcessHoliday(ctx context.Context, actor user.Actor, id string, req ProcessHolidayRequest) (ActionResponse, error)
	// Read
	GetHoliday(ctx context.Context, actor user.Actor, id string) (HolidayResponse, error)
	ListHolidays(ctx context.Context, actor user.Actor, filter HolidayFilter) ([]HolidayResponse, error)
	ListBankHolidays(ctx context.Context, actor user.Actor) ([]HolidayResponse, error)
	ListRequests(ctx context.Context, actor user.Actor) ([]HolidayResponse, error)
	Calendar(ctx context.Context, actor user.Actor, req CalendarRequest) (CalendarResponse, error)
}
