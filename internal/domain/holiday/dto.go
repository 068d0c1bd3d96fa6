package holiday

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
)

const maxReasonLength = 500

const (
	// MaxHolidayDays bounds a single record, inclusive of both ends.
	MaxHolidayDays = 366
	// MaxCalendarDays bounds a calendar window.
	MaxCalendarDays = 366
)

type CreateHolidayRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Type      string   `json:"type"`
	Reason    string   `json:"reason"`
	Paid      *bool    `json:"paid,omitempty"`
	Employees []string `json:"employees,omitempty"`

	details Details
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	// Dates
	start, end, errs := validator.ValidateDateRange(errs, "start_date", r.StartDate, "end_date", r.EndDate)
	if len(errs) == 0 {
		errs = validator.ValidateMaxSpan(errs, "end_date", start, end, MaxHolidayDays)
	}

	// Type
	t := TypeOther
	if !validator.IsEmpty(r.Type) {
		t = Type(r.Type)
		if !t.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: holiday, bank_holiday, sick_day, other",
			})
		}
	}

	// Reason
	if len(r.Reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	// Employees
	if t == TypeBankHoliday && len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employees",
			Message: "employees is required for a bank holiday",
		})
	}
	errs = validateEmployeeIDs(errs, r.Employees)

	if len(errs) > 0 {
		return errs
	}

	paid := true
	if r.Paid != nil {
		paid = *r.Paid
	}
	r.details = Details{
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(r.Reason),
		Type:      t,
		Paid:      paid,
	}

	return nil
}

// Details is only meaningful after a successful Validate.
func (r *CreateHolidayRequest) Details() Details {
	return r.details
}

// EditHolidayRequest carries a full or partial edit. Omitted fields keep
// their current value; employees is only read for bank holidays.
type EditHolidayRequest struct {
	StartDate *string   `json:"start_date,omitempty"`
	EndDate   *string   `json:"end_date,omitempty"`
	Type      *string   `json:"type,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	Paid      *bool     `json:"paid,omitempty"`
	Employees *[]string `json:"employees,omitempty"`
}

func (r *EditHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Type != nil && !Type(*r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: holiday, bank_holiday, sick_day, other",
		})
	}

	if r.Reason != nil && len(*r.Reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if r.Employees != nil {
		if len(*r.Employees) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "employees",
				Message: "employees must not be empty",
			})
		}
		errs = validateEmployeeIDs(errs, *r.Employees)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Merge applies the request onto current. It fails with
// ErrInvalidDateRange when the resulting start is after the end, and with a
// validation error when the range grows past MaxHolidayDays.
func (r *EditHolidayRequest) Merge(current Details) (Details, error) {
	d := current
	if r.StartDate != nil {
		d.StartDate, _ = validator.IsValidDate(*r.StartDate)
	}
	if r.EndDate != nil {
		d.EndDate, _ = validator.IsValidDate(*r.EndDate)
	}
	if r.Type != nil {
		d.Type = Type(*r.Type)
	}
	if r.Reason != nil {
		d.Reason = strings.TrimSpace(*r.Reason)
	}
	if r.Paid != nil {
		d.Paid = *r.Paid
	}

	if d.StartDate.After(d.EndDate) {
		return Details{}, ErrInvalidDateRange
	}
	if errs := validator.ValidateMaxSpan(nil, "end_date", d.StartDate, d.EndDate, MaxHolidayDays); len(errs) > 0 {
		return Details{}, errs
	}
	return d, nil
}

type Action string

const (
	ActionAccept        Action = "accept"
	ActionDecline       Action = "decline"
	ActionAcceptEdit    Action = "accept_edit"
	ActionDeclineEdit   Action = "decline_edit"
	ActionAcceptDelete  Action = "accept_delete"
	ActionDeclineDelete Action = "decline_delete"
)

var Actions = []string{
	string(ActionAccept),
	string(ActionDecline),
	string(ActionAcceptEdit),
	string(ActionDeclineEdit),
	string(ActionAcceptDelete),
	string(ActionDeclineDelete),
}

type ProcessHolidayRequest struct {
	Action string `json:"action"`
}

func (r *ProcessHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if !validator.IsInSlice(r.Action, Actions) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: " + strings.Join(Actions, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// HolidayFilter is the query string of GET /holidays.
type HolidayFilter struct {
	Status string
	Type   string
	UserID string
}

func (f *HolidayFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, pending_edit, pending_delete",
		})
	}
	if f.Type != "" && !Type(f.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: holiday, bank_holiday, sick_day, other",
		})
	}
	if f.UserID != "" && !validator.IsValidUUID(f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (f HolidayFilter) ToListFilter() ListFilter {
	var lf ListFilter
	if f.Status != "" {
		lf.Statuses = []Status{Status(f.Status)}
	}
	if f.Type != "" {
		lf.Types = []Type{Type(f.Type)}
	}
	lf.UserID = f.UserID
	return lf
}

// CalendarRequest is a [Start, End) window as sent by calendar widgets.
type CalendarRequest struct {
	Start string
	End   string

	from, to time.Time
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	from, to, errs := validator.ValidateDateRange(errs, "start", r.Start, "end", r.End)
	if len(errs) == 0 {
		// end is exclusive
		errs = validator.ValidateMaxSpan(errs, "end", from, to.AddDate(0, 0, -1), MaxCalendarDays)
	}
	if len(errs) > 0 {
		return errs
	}

	r.from, r.to = from, to
	return nil
}

// Window returns the validated bounds, end exclusive.
func (r *CalendarRequest) Window() (time.Time, time.Time) {
	return r.from, r.to
}

func validateEmployeeIDs(errs validator.ValidationErrors, ids []string) validator.ValidationErrors {
	for _, id := range ids {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employees",
				Message: "employees must contain valid user IDs",
			})
			break
		}
	}
	return errs
}

// HolidayResponse represents a holiday in API responses
type HolidayResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Reason       string          `json:"reason"`
	Type         string          `json:"type"`
	Paid         bool            `json:"paid"`
	Status       string          `json:"status"`
	NumberOfDays int             `json:"number_of_days"`
	Pending      *PendingPayload `json:"pending,omitempty"`
	UserIDs      []string        `json:"user_ids"`
	RequestedAt  string          `json:"requested_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type PendingPayload struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
	Type         string `json:"type"`
	Paid         bool   `json:"paid"`
	NumberOfDays int    `json:"number_of_days"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:           h.ID,
		CompanyID:    h.CompanyID,
		StartDate:    h.StartDate.Format(validator.DateLayout),
		EndDate:      h.EndDate.Format(validator.DateLayout),
		Reason:       h.Reason,
		Type:         string(h.Type),
		Paid:         h.Paid,
		Status:       string(h.Status),
		NumberOfDays: h.NumberOfDays(),
		UserIDs:      h.UserIDs,
		RequestedAt:  h.RequestedAt.Format(time.RFC3339),
		UpdatedAt:    h.UpdatedAt.Format(time.RFC3339),
	}
	if resp.UserIDs == nil {
		resp.UserIDs = []string{}
	}
	if d, ok := h.Pending(); ok {
		resp.Pending = &PendingPayload{
			StartDate:    d.StartDate.Format(validator.DateLayout),
			EndDate:      d.EndDate.Format(validator.DateLayout),
			Reason:       d.Reason,
			Type:         string(d.Type),
			Paid:         d.Paid,
			NumberOfDays: d.NumberOfDays(),
		}
	}
	return resp
}

// ActionResponse is returned by every mutating endpoint.
type ActionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	// End is exclusive, one day after the last holiday date.
	End           string   `json:"end"`
	Type          string   `json:"type"`
	TypeDisplay   string   `json:"type_display"`
	Status        string   `json:"status"`
	Reason        string   `json:"reason"`
	Paid          bool     `json:"paid"`
	IsOwn         bool     `json:"is_own"`
	Days          int      `json:"days"`
	Users         []string `json:"users"`
	DisplayPeriod string   `json:"display_period"`
}

type CalendarResponse struct {
	Events []CalendarEvent `json:"events"`
	// Own weekday dates by type, for highlighting.
	OwnDates map[string][]string `json:"own_dates"`
}
