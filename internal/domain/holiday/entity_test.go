package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func approvedHoliday() Holiday {
	return Holiday{
		ID:        "h1",
		StartDate: day("2025-03-03"),
		EndDate:   day("2025-03-05"),
		Reason:    "trip",
		Type:      TypeHoliday,
		Paid:      true,
		Status:    StatusApproved,
		UserIDs:   []string{"u1"},
	}
}

func TestHoliday_NumberOfDays(t *testing.T) {
	h := approvedHoliday()
	assert.Equal(t, 3, h.NumberOfDays())

	h.StartDate, h.EndDate = day("2025-03-05"), day("2025-03-05")
	assert.Equal(t, 1, h.NumberOfDays(), "single weekday")

	h.StartDate, h.EndDate = day("2025-03-08"), day("2025-03-08")
	assert.Equal(t, 0, h.NumberOfDays(), "single saturday")
}

func TestHoliday_ProposeAndApply(t *testing.T) {
	h := approvedHoliday()
	h.ProposeEdit(Details{
		StartDate: day("2025-03-03"),
		EndDate:   day("2025-03-07"),
		Reason:    "longer trip",
		Type:      TypeHoliday,
		Paid:      false,
	})

	assert.Equal(t, StatusPendingEdit, h.Status)
	assert.Equal(t, 3, h.NumberOfDays(), "live fields untouched")
	assert.Equal(t, 5, h.PendingNumberOfDays())

	h.ApplyPending()

	assert.Equal(t, StatusApproved, h.Status)
	assert.Equal(t, day("2025-03-07"), h.EndDate)
	assert.Equal(t, "longer trip", h.Reason)
	assert.False(t, h.Paid)
	assert.Nil(t, h.PendingStartDate)
	assert.Nil(t, h.PendingEndDate)
	assert.Nil(t, h.PendingReason)
	assert.Nil(t, h.PendingType)
	assert.Nil(t, h.PendingPaid)
}

func TestHoliday_ClearPending(t *testing.T) {
	h := approvedHoliday()
	h.ProposeEdit(Details{StartDate: day("2025-03-10"), EndDate: day("2025-03-14"), Type: TypeSickDay})

	h.ClearPending()

	assert.Equal(t, StatusApproved, h.Status)
	want := approvedHoliday()
	assert.Equal(t, want.Live(), h.Live())
	_, ok := h.Pending()
	assert.False(t, ok)
	assert.Equal(t, 3, h.PendingNumberOfDays())
}

func TestHoliday_ApplyPendingWithoutProposal(t *testing.T) {
	h := approvedHoliday()
	h.Status = StatusPendingDelete

	h.ApplyPending()

	assert.Equal(t, StatusApproved, h.Status)
	want := approvedHoliday()
	assert.Equal(t, want.Live(), h.Live())
}

func TestInsufficientBalanceError(t *testing.T) {
	err := &InsufficientBalanceError{Shortfalls: []Shortfall{
		{UserID: "b", Name: "Bob", Remaining: 2, Required: 5},
		{UserID: "c", Name: "Cy", Remaining: 1, Required: 5},
	}}

	assert.Equal(t, "Not enough holidays for: Bob (2 days left), Cy (1 day left)", err.Error())
	assert.Equal(t, map[string]int{"b": 2, "c": 1}, err.Remaining())

	var target *InsufficientBalanceError
	require.ErrorAs(t, error(err), &target)
}

func TestStatus_AwaitsEmployer(t *testing.T) {
	var queue []Status
	for _, s := range Statuses {
		if s.AwaitsEmployer() {
			queue = append(queue, s)
		}
	}
	assert.Equal(t, []Status{StatusPending, StatusPendingEdit, StatusPendingDelete}, queue)
	assert.False(t, Status("archived").AwaitsEmployer())
}
