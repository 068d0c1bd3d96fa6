// Package ledger owns every change to a user's used_holidays.
package ledger

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
)

// ErrNegativeBalance is returned when an adjustment would take
// used_holidays below zero. The whole batch is rejected.
var ErrNegativeBalance = user.ErrNegativeBalance

// Adjustment adds Delta days to a user's used_holidays. Negative deltas
// give days back.
type Adjustment struct {
	UserID string
	Delta  int
}

type Ledger struct {
	userRepo user.UserRepository
}

func New(userRepo user.UserRepository) *Ledger {
	return &Ledger{userRepo: userRepo}
}

func Remaining(u user.User) int {
	return u.RemainingHolidays()
}

func HasEnough(u user.User, days int) bool {
	return u.HasEnoughHolidays(days)
}

// Shortfalls returns the users that cannot afford days, in input order.
func Shortfalls(users []user.User, days int) []user.User {
	var short []user.User
	for _, u := range users {
		if !HasEnough(u, days) {
			short = append(short, u)
		}
	}
	return short
}

func (l *Ledger) Adjust(ctx context.Context, companyID, userID string, delta int) error {
	return l.AdjustMany(ctx, companyID, Adjustment{UserID: userID, Delta: delta})
}

// AdjustMany persists all adjustments in a single statement. Deltas for
// the same user are summed and zero totals are skipped. Run it with a
// transaction context to make it part of a larger action.
func (l *Ledger) AdjustMany(ctx context.Context, companyID string, adjustments ...Adjustment) error {
	deltas := make(map[string]int, len(adjustments))
	for _, a := range adjustments {
		deltas[a.UserID] += a.Delta
	}
	for id, d := range deltas {
		if d == 0 {
			delete(deltas, id)
		}
	}
	if len(deltas) == 0 {
		return nil
	}

	if err := l.userRepo.AdjustUsedHolidays(ctx, companyID, deltas); err != nil {
		return fmt.Errorf("adjust used holidays: %w", err)
	}
	return nil
}
