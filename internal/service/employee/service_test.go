package employee_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/holiday-backend-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*memory.Store, user.EmployeeService, user.Actor, user.User) {
	t.Helper()
	store := memory.NewStore()
	c := store.AddCompany(company.Company{Name: "Acme", Slug: "acme"})
	boss := store.AddUser(user.User{CompanyID: &c.ID, Email: "boss@acme.com", FirstName: "Erin", Role: user.RoleEmployer, AnnualHolidays: 25})
	worker := store.AddUser(user.User{CompanyID: &c.ID, Email: "ann@acme.com", FirstName: "Ann", Role: user.RoleEmployee, AnnualHolidays: 20, UsedHolidays: 6})

	svc := employee.NewEmployeeService(store, store.Users())
	actor := user.Actor{UserID: boss.ID, CompanyID: c.ID, Role: user.RoleEmployer}
	return store, svc, actor, worker
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestListEmployees(t *testing.T) {
	store, svc, boss, worker := setup(t)
	other := store.AddCompany(company.Company{Name: "Globex", Slug: "globex"})
	store.AddUser(user.User{CompanyID: &other.ID, Email: "x@globex.com", Role: user.RoleEmployee})

	got, err := svc.ListEmployees(context.Background(), boss)
	require.NoError(t, err)
	require.Len(t, got, 2)

	var found bool
	for _, u := range got {
		if u.ID == worker.ID {
			found = true
			assert.Equal(t, 14, u.RemainingHolidays)
		}
	}
	assert.True(t, found)

	asWorker := user.Actor{UserID: worker.ID, CompanyID: boss.CompanyID, Role: user.RoleEmployee}
	_, err = svc.ListEmployees(context.Background(), asWorker)
	assert.ErrorIs(t, err, user.ErrEmployerAccessRequired)
}

func TestGetBalanceAndProfile(t *testing.T) {
	_, svc, boss, worker := setup(t)
	asWorker := user.Actor{UserID: worker.ID, CompanyID: boss.CompanyID, Role: user.RoleEmployee}

	balance, err := svc.GetBalance(context.Background(), asWorker)
	require.NoError(t, err)
	assert.Equal(t, user.BalanceResponse{AnnualHolidays: 20, UsedHolidays: 6, RemainingHolidays: 14}, balance)

	profile, err := svc.GetProfile(context.Background(), asWorker)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.FullName)
	assert.Equal(t, "employee", profile.Role)
}

func TestUpdateEmployee(t *testing.T) {
	store, svc, boss, worker := setup(t)

	got, err := svc.UpdateEmployee(context.Background(), boss, worker.ID, user.UpdateEmployeeRequest{
		AnnualHolidays: intPtr(12),
		LastName:       strPtr("Lee"),
	})
	require.NoError(t, err)

	assert.Equal(t, 12, got.AnnualHolidays)
	assert.Equal(t, 6, got.UsedHolidays)
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, 12, store.User(worker.ID).AnnualHolidays)
}

func TestUpdateEmployee_AnnualBelowUsed(t *testing.T) {
	store, svc, boss, worker := setup(t)

	_, err := svc.UpdateEmployee(context.Background(), boss, worker.ID, user.UpdateEmployeeRequest{AnnualHolidays: intPtr(5)})
	assert.ErrorIs(t, err, user.ErrAnnualBelowUsed)
	assert.Equal(t, 20, store.User(worker.ID).AnnualHolidays)
}

func TestUpdateEmployee_Rejections(t *testing.T) {
	_, svc, boss, worker := setup(t)

	_, err := svc.UpdateEmployee(context.Background(), boss, worker.ID, user.UpdateEmployeeRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateEmployee(context.Background(), boss, "0190a3c4-0000-7000-8000-00000000ffff", user.UpdateEmployeeRequest{AnnualHolidays: intPtr(10)})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.UpdateEmployee(context.Background(), boss, "abc", user.UpdateEmployeeRequest{AnnualHolidays: intPtr(10)})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	asWorker := user.Actor{UserID: worker.ID, CompanyID: boss.CompanyID, Role: user.RoleEmployee}
	_, err = svc.UpdateEmployee(context.Background(), asWorker, worker.ID, user.UpdateEmployeeRequest{AnnualHolidays: intPtr(30)})
	assert.ErrorIs(t, err, user.ErrEmployerAccessRequired)
}
