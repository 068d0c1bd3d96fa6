package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
)

// ==========================================
// DEMO TENANT
// ==========================================

const (
	DemoCompanyName = "Acme Holidays"
	DemoPassword    = "password"
)

// ErrAlreadySeeded is returned when the demo employer already exists.
var ErrAlreadySeeded = errors.New("demo data already seeded")

// SeededDataIDs holds the IDs created for the demo tenant.
type SeededDataIDs struct {
	CompanyID string

	// User IDs by email
	UserIDs map[string]string // e.g., "erin@acme.test" -> "uuid"
}

// NewSeededDataIDs creates a new SeededDataIDs with initialized maps
func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{UserIDs: make(map[string]string)}
}

// GetDemoUsers returns the accounts of the demo tenant. The first entry is
// the employer; the rest are employees with varied balances.
func GetDemoUsers() []user.User {
	return []user.User{
		{Email: "erin@acme.test", FirstName: "Erin", LastName: "Walker", Role: user.RoleEmployer, AnnualHolidays: user.DefaultAnnualHolidays},
		{Email: "alice@acme.test", FirstName: "Alice", LastName: "Moreno", Role: user.RoleEmployee, AnnualHolidays: user.DefaultAnnualHolidays},
		{Email: "bob@acme.test", FirstName: "Bob", LastName: "Tanaka", Role: user.RoleEmployee, AnnualHolidays: user.DefaultAnnualHolidays, UsedHolidays: 6},
		{Email: "carol@acme.test", FirstName: "Carol", LastName: "Okafor", Role: user.RoleEmployee, AnnualHolidays: 25, UsedHolidays: 2},
	}
}

// ==========================================
// SEEDING
// ==========================================

// Seed creates the demo company and its users in one transaction. Every
// account shares passwordHash.
func Seed(
	ctx context.Context,
	tx database.Transactor,
	companyService company.CompanyService,
	userRepo user.UserRepository,
	passwordHash string,
) (*SeededDataIDs, error) {
	users := GetDemoUsers()

	_, err := userRepo.GetByEmail(ctx, users[0].Email)
	if err == nil {
		return nil, ErrAlreadySeeded
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check demo employer: %w", err)
	}

	ids := NewSeededDataIDs()
	err = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newCompany, err := companyService.Create(txCtx, DemoCompanyName)
		if err != nil {
			return fmt.Errorf("failed to create demo company: %w", err)
		}
		ids.CompanyID = newCompany.ID

		for _, u := range users {
			u.CompanyID = &newCompany.ID
			u.PasswordHash = &passwordHash
			created, err := userRepo.Create(txCtx, u)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", u.Email, err)
			}
			ids.UserIDs[created.Email] = created.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
