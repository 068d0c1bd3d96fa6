package holiday

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrHolidayNotFound         = errors.New("holiday not found")
	ErrInvalidDateRange        = errors.New("Start date must be before end date.")
	ErrBankHolidayEmployerOnly = errors.New("bank holidays can only be managed by an employer")
	ErrInvalidHolidayState     = errors.New("holiday is not in a state that allows this action")
)

// Shortfall is one user lacking the days an action needs.
type Shortfall struct {
	UserID    string
	Name      string
	Remaining int
	Required  int
}

// InsufficientBalanceError lists every user that cannot afford an action.
// No balance is touched when it is returned.
type InsufficientBalanceError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientBalanceError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		unit := "days"
		if s.Remaining == 1 {
			unit = "day"
		}
		parts = append(parts, fmt.Sprintf("%s (%d %s left)", s.Name, s.Remaining, unit))
	}
	return "Not enough holidays for: " + strings.Join(parts, ", ")
}

// Remaining maps user id to remaining days.
func (e *InsufficientBalanceError) Remaining() map[string]int {
	m := make(map[string]int, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		m[s.UserID] = s.Remaining
	}
	return m
}
