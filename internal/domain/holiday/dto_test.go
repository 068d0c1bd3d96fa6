package holiday

import (
	"testing"

	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userA = "0190a3c4-1111-7000-8000-000000000001"

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestCreateHolidayRequest_Validate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "2025-03-03", EndDate: "2025-03-05", Reason: "  trip  "}
		require.NoError(t, req.Validate())

		d := req.Details()
		assert.Equal(t, TypeOther, d.Type)
		assert.True(t, d.Paid)
		assert.Equal(t, "trip", d.Reason)
		assert.Equal(t, 3, d.NumberOfDays())
	})

	t.Run("start after end", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "2025-03-05", EndDate: "2025-03-03"}
		fields := fieldsOf(t, req.Validate())
		assert.Equal(t, "Start date must be before end date.", fields["start_date"])
	})

	t.Run("bank holiday needs employees", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "2025-03-03", EndDate: "2025-03-03", Type: "bank_holiday"}
		assert.Contains(t, fieldsOf(t, req.Validate()), "employees")
	})

	t.Run("invalid employee id", func(t *testing.T) {
		req := CreateHolidayRequest{
			StartDate: "2025-03-03",
			EndDate:   "2025-03-03",
			Type:      "bank_holiday",
			Employees: []string{userA, "42"},
		}
		assert.Contains(t, fieldsOf(t, req.Validate()), "employees")
	})

	t.Run("unknown type", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "2025-03-03", EndDate: "2025-03-03", Type: "vacation"}
		assert.Contains(t, fieldsOf(t, req.Validate()), "type")
	})

	t.Run("range too long", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "0001-01-01", EndDate: "9999-12-31"}
		assert.Equal(t, "date range must not exceed 366 days", fieldsOf(t, req.Validate())["end_date"])
	})

	t.Run("leap year fits", func(t *testing.T) {
		req := CreateHolidayRequest{StartDate: "2024-01-01", EndDate: "2024-12-31"}
		require.NoError(t, req.Validate())
	})

	t.Run("unpaid", func(t *testing.T) {
		paid := false
		req := CreateHolidayRequest{StartDate: "2025-03-03", EndDate: "2025-03-03", Type: "sick_day", Paid: &paid}
		require.NoError(t, req.Validate())
		assert.False(t, req.Details().Paid)
	})
}

func TestEditHolidayRequest_Merge(t *testing.T) {
	current := Details{
		StartDate: day("2025-03-03"),
		EndDate:   day("2025-03-05"),
		Reason:    "trip",
		Type:      TypeHoliday,
		Paid:      true,
	}

	end := "2025-03-07"
	req := EditHolidayRequest{EndDate: &end}
	require.NoError(t, req.Validate())
	got, err := req.Merge(current)
	require.NoError(t, err)
	assert.Equal(t, day("2025-03-03"), got.StartDate)
	assert.Equal(t, day("2025-03-07"), got.EndDate)
	assert.Equal(t, "trip", got.Reason)

	early := "2025-03-01"
	req = EditHolidayRequest{EndDate: &early}
	require.NoError(t, req.Validate())
	_, err = req.Merge(current)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	far := "2027-03-03"
	req = EditHolidayRequest{EndDate: &far}
	require.NoError(t, req.Validate())
	_, err = req.Merge(current)
	assert.Contains(t, fieldsOf(t, err), "end_date")
}

func TestCalendarRequest_Validate(t *testing.T) {
	req := CalendarRequest{Start: "2025-01-01", End: "2026-01-01"}
	require.NoError(t, req.Validate())

	req = CalendarRequest{Start: "2025-01-01", End: "2026-01-03"}
	assert.Contains(t, fieldsOf(t, req.Validate()), "end")

	req = CalendarRequest{Start: "0001-01-01", End: "9999-12-31"}
	assert.Contains(t, fieldsOf(t, req.Validate()), "end")
}

func TestEditHolidayRequest_Validate(t *testing.T) {
	bad := "03/07/2025"
	empty := []string{}
	req := EditHolidayRequest{StartDate: &bad, Employees: &empty}
	fields := fieldsOf(t, req.Validate())
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "employees")
}

func TestProcessHolidayRequest_Validate(t *testing.T) {
	for _, a := range Actions {
		assert.NoError(t, (&ProcessHolidayRequest{Action: a}).Validate(), a)
	}
	assert.Error(t, (&ProcessHolidayRequest{}).Validate())
	assert.Error(t, (&ProcessHolidayRequest{Action: "approve"}).Validate())
}

func TestHolidayFilter(t *testing.T) {
	f := HolidayFilter{Status: "pending", Type: "holiday", UserID: userA}
	require.NoError(t, f.Validate())
	lf := f.ToListFilter()
	assert.Equal(t, []Status{StatusPending}, lf.Statuses)
	assert.Equal(t, []Type{TypeHoliday}, lf.Types)
	assert.Equal(t, userA, lf.UserID)

	bad := HolidayFilter{Status: "done", UserID: "x"}
	fields := fieldsOf(t, bad.Validate())
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "user_id")
}

func TestNewHolidayResponse(t *testing.T) {
	h := approvedHoliday()
	resp := NewHolidayResponse(h)
	assert.Equal(t, "2025-03-03", resp.StartDate)
	assert.Equal(t, 3, resp.NumberOfDays)
	assert.Nil(t, resp.Pending)

	h.ProposeEdit(Details{StartDate: day("2025-03-03"), EndDate: day("2025-03-07"), Type: TypeHoliday})
	resp = NewHolidayResponse(h)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, 5, resp.Pending.NumberOfDays)
	assert.Equal(t, "pending_edit", resp.Status)
}
