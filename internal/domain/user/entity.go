package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployer Role = "employer" // Approves requests and assigns bank holidays
	RoleEmployee Role = "employee" // Requests holidays for themselves
)

// DefaultAnnualHolidays is the entitlement given to new accounts.
const DefaultAnnualHolidays = 20

func (r Role) IsValid() bool {
	return r == RoleEmployer || r == RoleEmployee
}

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	FirstName    string
	LastName     string
	Role         Role

	// Holiday ledger
	AnnualHolidays int
	UsedHolidays   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmployer checks if user can approve requests and manage bank holidays
func (u *User) IsEmployer() bool {
	return u.Role == RoleEmployer
}

// RemainingHolidays is the entitlement left for the current period.
func (u *User) RemainingHolidays() int {
	return u.AnnualHolidays - u.UsedHolidays
}

// HasEnoughHolidays reports whether days can be taken without overdrawing.
func (u *User) HasEnoughHolidays(days int) bool {
	return u.RemainingHolidays() >= days
}

// FullName falls back to the email when no name is set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Actor is the authenticated caller of a workflow operation, passed
// explicitly instead of being read from request state.
type Actor struct {
	UserID    string
	CompanyID string
	Role      Role
}

func (a Actor) IsEmployer() bool {
	return a.Role == RoleEmployer
}
