package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/holiday-backend-go/internal/service/ledger"
)

// statusDeleted is reported for actions that remove the record.
const statusDeleted = "deleted"

type HolidayServiceImpl struct {
	tx          database.Transactor
	holidayRepo holiday.HolidayRepository
	userRepo    user.UserRepository
	ledger      *ledger.Ledger
	notifier    notification.Service
}

// NewHolidayService wires the workflow. notifier may be nil.
func NewHolidayService(
	tx database.Transactor,
	holidayRepo holiday.HolidayRepository,
	userRepo user.UserRepository,
	notifier notification.Service,
) holiday.HolidayService {
	return &HolidayServiceImpl{
		tx:          tx,
		holidayRepo: holidayRepo,
		userRepo:    userRepo,
		ledger:      ledger.New(userRepo),
		notifier:    notifier,
	}
}

// run executes fn in one transaction and publishes the events it collected
// once the transaction has committed.
func (s *HolidayServiceImpl) run(ctx context.Context, fn func(txCtx context.Context, events *[]notification.PublishRequest) error) error {
	var events []notification.PublishRequest
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		events = events[:0]
		return fn(txCtx, &events)
	})
	if err != nil {
		return err
	}

	if s.notifier == nil {
		return nil
	}
	for _, e := range events {
		if err := s.notifier.Publish(ctx, e); err != nil {
			slog.Warn("failed to publish holiday event", "type", e.Type, "holiday_id", e.HolidayID, "error", err)
		}
	}
	return nil
}

// lockUsers locks ids in the actor's tenant. Every id must exist.
func (s *HolidayServiceImpl) lockUsers(ctx context.Context, companyID string, ids []string) ([]user.User, error) {
	users, err := s.userRepo.LockByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("lock users: %w", err)
	}
	if len(users) != len(unique(ids)) {
		return nil, user.ErrUserNotFound
	}
	return users, nil
}

// lockHoliday loads the record for update and hides records an employee is
// not assigned to.
func (s *HolidayServiceImpl) lockHoliday(ctx context.Context, actor user.Actor, id string) (holiday.Holiday, error) {
	if !validator.IsValidUUID(id) {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	h, err := s.holidayRepo.GetByIDForUpdate(ctx, actor.CompanyID, id)
	if err != nil {
		return holiday.Holiday{}, err
	}
	if !actor.IsEmployer() && !h.HasUser(actor.UserID) {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func shortfalls(users []user.User, days int) []holiday.Shortfall {
	var out []holiday.Shortfall
	for _, u := range ledger.Shortfalls(users, days) {
		out = append(out, holiday.Shortfall{
			UserID:    u.ID,
			Name:      u.FullName(),
			Remaining: ledger.Remaining(u),
			Required:  days,
		})
	}
	return out
}

func insufficient(groups ...[]holiday.Shortfall) error {
	var all []holiday.Shortfall
	for _, g := range groups {
		all = append(all, g...)
	}
	if len(all) == 0 {
		return nil
	}
	return &holiday.InsufficientBalanceError{Shortfalls: all}
}

// adjustAll applies the same delta to every id.
func adjustAll(ids []string, delta int) []ledger.Adjustment {
	adjustments := make([]ledger.Adjustment, 0, len(ids))
	for _, id := range ids {
		adjustments = append(adjustments, ledger.Adjustment{UserID: id, Delta: delta})
	}
	return adjustments
}

func unique(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func without(ids []string, exclude string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

// employerIDs returns the tenant's employers other than the actor.
func (s *HolidayServiceImpl) employerIDs(ctx context.Context, actor user.Actor) ([]string, error) {
	employers, err := s.userRepo.ListEmployers(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list employers: %w", err)
	}
	ids := make([]string, 0, len(employers))
	for _, e := range employers {
		if e.ID != actor.UserID {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

func event(actor user.Actor, recipients []string, t notification.EventType, h holiday.Holiday, message string) notification.PublishRequest {
	return notification.PublishRequest{
		CompanyID:    actor.CompanyID,
		RecipientIDs: without(recipients, actor.UserID),
		ActorID:      actor.UserID,
		Type:         t,
		HolidayID:    h.ID,
		Message:      message,
	}
}

func period(d holiday.Details) string {
	return d.StartDate.Format(validator.DateLayout) + " to " + d.EndDate.Format(validator.DateLayout)
}

// typeChangeError rejects moving a record into or out of bank_holiday.
func typeChangeError() error {
	return validator.ValidationErrors{{
		Field:   "type",
		Message: "type cannot be changed to or from bank_holiday",
	}}
}
