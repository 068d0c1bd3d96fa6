package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestHolidayRepository_CreateGetUpdate(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	c := createTestCompany(t, ctx, "Acme")
	u1 := createTestUser(t, ctx, c.ID, "1@example.com", user.RoleEmployee, 20, 0)
	u2 := createTestUser(t, ctx, c.ID, "2@example.com", user.RoleEmployee, 20, 0)
	repo := postgresql.NewHolidayRepository(testDB)

	created, err := repo.Create(ctx, holiday.Holiday{
		CompanyID: c.ID,
		StartDate: date("2025-03-03"),
		EndDate:   date("2025-03-05"),
		Reason:    "trip",
		Type:      holiday.TypeHoliday,
		Paid:      true,
		Status:    holiday.StatusPending,
		UserIDs:   []string{u2.ID, u1.ID},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.ElementsMatch(t, []string{u1.ID, u2.ID}, created.UserIDs)
	assert.Equal(t, 3, created.NumberOfDays())

	created.ProposeEdit(holiday.Details{
		StartDate: date("2025-03-03"),
		EndDate:   date("2025-03-07"),
		Reason:    "longer",
		Type:      holiday.TypeSickDay,
		Paid:      false,
	})
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, c.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, holiday.StatusPendingEdit, got.Status)
	require.NotNil(t, got.PendingType)
	assert.Equal(t, holiday.TypeSickDay, *got.PendingType)
	assert.Equal(t, 5, got.PendingNumberOfDays())
	assert.Equal(t, "trip", got.Reason)

	got.ApplyPending()
	require.NoError(t, repo.Update(ctx, got))
	require.NoError(t, repo.SetUsers(ctx, got.ID, []string{u1.ID}))

	final, err := repo.GetByID(ctx, c.ID, got.ID)
	require.NoError(t, err)
	assert.Equal(t, holiday.StatusApproved, final.Status)
	assert.Nil(t, final.PendingStartDate)
	assert.Equal(t, "longer", final.Reason)
	assert.Equal(t, []string{u1.ID}, final.UserIDs)
}

func TestHolidayRepository_TenantIsolation(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	a := createTestCompany(t, ctx, "Acme")
	b := createTestCompany(t, ctx, "Globex")
	u := createTestUser(t, ctx, a.ID, "1@example.com", user.RoleEmployee, 20, 0)
	repo := postgresql.NewHolidayRepository(testDB)

	h, err := repo.Create(ctx, holiday.Holiday{
		CompanyID: a.ID,
		StartDate: date("2025-03-03"),
		EndDate:   date("2025-03-03"),
		Type:      holiday.TypeOther,
		Status:    holiday.StatusApproved,
		UserIDs:   []string{u.ID},
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, b.ID, h.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID, h.ID), holiday.ErrHolidayNotFound)

	require.NoError(t, repo.Delete(ctx, a.ID, h.ID))
	_, err = repo.GetByID(ctx, a.ID, h.ID)
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}

func TestHolidayRepository_List(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	c := createTestCompany(t, ctx, "Acme")
	u1 := createTestUser(t, ctx, c.ID, "1@example.com", user.RoleEmployee, 20, 0)
	u2 := createTestUser(t, ctx, c.ID, "2@example.com", user.RoleEmployee, 20, 0)
	repo := postgresql.NewHolidayRepository(testDB)

	mk := func(start, end string, typ holiday.Type, status holiday.Status, users ...string) holiday.Holiday {
		h, err := repo.Create(ctx, holiday.Holiday{
			CompanyID: c.ID,
			StartDate: date(start),
			EndDate:   date(end),
			Type:      typ,
			Status:    status,
			UserIDs:   users,
		})
		require.NoError(t, err)
		return h
	}
	march := mk("2025-03-03", "2025-03-05", holiday.TypeHoliday, holiday.StatusApproved, u1.ID)
	bank := mk("2025-04-18", "2025-04-18", holiday.TypeBankHoliday, holiday.StatusApproved, u1.ID, u2.ID)
	pending := mk("2025-05-05", "2025-05-06", holiday.TypeSickDay, holiday.StatusPending, u2.ID)

	all, err := repo.List(ctx, c.ID, holiday.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, march.ID, all[0].ID)

	byUser, err := repo.List(ctx, c.ID, holiday.ListFilter{UserID: u2.ID})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	requests, err := repo.List(ctx, c.ID, holiday.ListFilter{
		Statuses: []holiday.Status{holiday.StatusPending, holiday.StatusPendingEdit, holiday.StatusPendingDelete},
	})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, pending.ID, requests[0].ID)

	banks, err := repo.List(ctx, c.ID, holiday.ListFilter{Types: []holiday.Type{holiday.TypeBankHoliday}, LatestFirst: true})
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.Equal(t, bank.ID, banks[0].ID)

	from, to := date("2025-03-05"), date("2025-04-30")
	window, err := repo.List(ctx, c.ID, holiday.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestHolidayRepository_TransactionRollback(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	c := createTestCompany(t, ctx, "Acme")
	u := createTestUser(t, ctx, c.ID, "1@example.com", user.RoleEmployee, 20, 0)
	holidays := postgresql.NewHolidayRepository(testDB)
	users := postgresql.NewUserRepository(testDB)
	tx := postgresql.NewTransactor(testDB)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := holidays.Create(txCtx, holiday.Holiday{
			CompanyID: c.ID,
			StartDate: date("2025-03-03"),
			EndDate:   date("2025-03-07"),
			Type:      holiday.TypeHoliday,
			Status:    holiday.StatusPending,
			UserIDs:   []string{u.ID},
		})
		require.NoError(t, err)
		require.NoError(t, users.AdjustUsedHolidays(txCtx, c.ID, map[string]int{u.ID: 5}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := holidays.List(ctx, c.ID, holiday.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	after, err := users.GetByID(ctx, c.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.UsedHolidays)
}

func TestHolidayRepository_MalformedIDIsNotFound(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	c := createTestCompany(t, ctx, "Acme")
	repo := postgresql.NewHolidayRepository(testDB)

	_, err := repo.GetByID(ctx, c.ID, "abc")
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)

	err = postgresql.NewTransactor(testDB).WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := repo.GetByIDForUpdate(txCtx, c.ID, "abc")
		return err
	})
	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID, "abc"), holiday.ErrHolidayNotFound)
}
