package holiday

import (
	"slices"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/workday"
)

type Type string

const (
	TypeHoliday     Type = "holiday"
	TypeBankHoliday Type = "bank_holiday"
	TypeSickDay     Type = "sick_day"
	TypeOther       Type = "other"
)

var Types = []Type{TypeHoliday, TypeBankHoliday, TypeSickDay, TypeOther}

func (t Type) IsValid() bool {
	return slices.Contains(Types, t)
}

// Display is the human label used by the calendar.
func (t Type) Display() string {
	switch t {
	case TypeHoliday:
		return "Holiday"
	case TypeBankHoliday:
		return "Bank Holiday"
	case TypeSickDay:
		return "Sick Day"
	default:
		return "Other"
	}
}

type Status string

const (
	StatusPending       Status = "pending"
	StatusApproved      Status = "approved"
	StatusPendingEdit   Status = "pending_edit"
	StatusPendingDelete Status = "pending_delete"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusPendingEdit, StatusPendingDelete}

func (s Status) IsValid() bool {
	return slices.Contains(Statuses, s)
}

// AwaitsEmployer reports whether the record sits in an employer's queue.
func (s Status) AwaitsEmployer() bool {
	return s == StatusPending || s == StatusPendingEdit || s == StatusPendingDelete
}

// Details is the editable part of a holiday, used both for the live
// fields and for a proposed edit.
type Details struct {
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Type      Type
	Paid      bool
}

// NumberOfDays counts the weekdays in the inclusive range.
func (d Details) NumberOfDays() int {
	return workday.Count(d.StartDate, d.EndDate)
}

// Holiday entity
type Holiday struct {
	ID        string
	CompanyID string

	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Type      Type
	Paid      bool
	Status    Status

	// Proposed edit awaiting an employer. Nil unless Status is pending_edit.
	PendingStartDate *time.Time
	PendingEndDate   *time.Time
	PendingReason    *string
	PendingType      *Type
	PendingPaid      *bool

	UserIDs []string

	RequestedAt time.Time
	UpdatedAt   time.Time
}

func (h *Holiday) IsBankHoliday() bool {
	return h.Type == TypeBankHoliday
}

func (h *Holiday) HasUser(userID string) bool {
	return slices.Contains(h.UserIDs, userID)
}

func (h *Holiday) Live() Details {
	return Details{
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		Reason:    h.Reason,
		Type:      h.Type,
		Paid:      h.Paid,
	}
}

// SetLive overwrites the live fields.
func (h *Holiday) SetLive(d Details) {
	h.StartDate = workday.Truncate(d.StartDate)
	h.EndDate = workday.Truncate(d.EndDate)
	h.Reason = d.Reason
	h.Type = d.Type
	h.Paid = d.Paid
}

// Pending returns the proposed edit, if any.
func (h *Holiday) Pending() (Details, bool) {
	if h.PendingStartDate == nil || h.PendingEndDate == nil {
		return Details{}, false
	}

	d := h.Live()
	d.StartDate = *h.PendingStartDate
	d.EndDate = *h.PendingEndDate
	if h.PendingReason != nil {
		d.Reason = *h.PendingReason
	}
	if h.PendingType != nil {
		d.Type = *h.PendingType
	}
	if h.PendingPaid != nil {
		d.Paid = *h.PendingPaid
	}
	return d, true
}

// ProposeEdit stores d as the pending edit and moves to pending_edit.
// Live fields are left untouched.
func (h *Holiday) ProposeEdit(d Details) {
	start, end := workday.Truncate(d.StartDate), workday.Truncate(d.EndDate)
	h.PendingStartDate = &start
	h.PendingEndDate = &end
	h.PendingReason = &d.Reason
	h.PendingType = &d.Type
	h.PendingPaid = &d.Paid
	h.Status = StatusPendingEdit
}

// ApplyPending copies the pending fields onto the live ones, clears them
// and approves the record.
func (h *Holiday) ApplyPending() {
	if d, ok := h.Pending(); ok {
		h.SetLive(d)
	}
	h.ClearPending()
}

// ClearPending drops the pending fields and approves the record.
func (h *Holiday) ClearPending() {
	h.PendingStartDate = nil
	h.PendingEndDate = nil
	h.PendingReason = nil
	h.PendingType = nil
	h.PendingPaid = nil
	h.Status = StatusApproved
}

func (h *Holiday) NumberOfDays() int {
	return workday.Count(h.StartDate, h.EndDate)
}

// PendingNumberOfDays is the day count of the proposed edit, or the live
// count when there is none.
func (h *Holiday) PendingNumberOfDays() int {
	if d, ok := h.Pending(); ok {
		return d.NumberOfDays()
	}
	return h.NumberOfDays()
}
