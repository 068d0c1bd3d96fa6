package holiday

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/workday"
)

// GetHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) GetHoliday(ctx context.Context, actor user.Actor, id string) (holiday.HolidayResponse, error) {
	if !validator.IsValidUUID(id) {
		return holiday.HolidayResponse{}, holiday.ErrHolidayNotFound
	}
	h, err := s.holidayRepo.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.NewHolidayResponse(h), nil
}

// ListHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListHolidays(ctx context.Context, actor user.Actor, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.list(ctx, actor, filter.ToListFilter())
}

// ListBankHolidays implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListBankHolidays(ctx context.Context, actor user.Actor) ([]holiday.HolidayResponse, error) {
	if !actor.IsEmployer() {
		return nil, user.ErrEmployerAccessRequired
	}
	return s.list(ctx, actor, holiday.ListFilter{
		Types:       []holiday.Type{holiday.TypeBankHoliday},
		LatestFirst: true,
	})
}

// ListRequests implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListRequests(ctx context.Context, actor user.Actor) ([]holiday.HolidayResponse, error) {
	if !actor.IsEmployer() {
		return nil, user.ErrEmployerAccessRequired
	}
	var queue []holiday.Status
	for _, st := range holiday.Statuses {
		if st.AwaitsEmployer() {
			queue = append(queue, st)
		}
	}
	return s.list(ctx, actor, holiday.ListFilter{Statuses: queue})
}

func (s *HolidayServiceImpl) list(ctx context.Context, actor user.Actor, filter holiday.ListFilter) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}

	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.NewHolidayResponse(h))
	}
	return resp, nil
}

// Calendar implements holiday.HolidayService.
func (s *HolidayServiceImpl) Calendar(ctx context.Context, actor user.Actor, req holiday.CalendarRequest) (holiday.CalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.CalendarResponse{}, err
	}
	from, until := req.Window()
	resp := holiday.CalendarResponse{
		Events:   []holiday.CalendarEvent{},
		OwnDates: map[string][]string{},
	}
	if !from.Before(until) {
		return resp, nil
	}
	to := until.AddDate(0, 0, -1)

	holidays, err := s.holidayRepo.List(ctx, actor.CompanyID, holiday.ListFilter{From: &from, To: &to})
	if err != nil {
		return holiday.CalendarResponse{}, fmt.Errorf("list calendar holidays: %w", err)
	}

	var ids []string
	for _, h := range holidays {
		ids = append(ids, h.UserIDs...)
	}
	users, err := s.userRepo.GetByIDs(ctx, actor.CompanyID, unique(ids))
	if err != nil {
		return holiday.CalendarResponse{}, fmt.Errorf("load calendar users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName()
	}

	for _, h := range holidays {
		resp.Events = append(resp.Events, calendarEvent(actor, h, names))

		if h.HasUser(actor.UserID) {
			for _, d := range workday.Dates(maxTime(h.StartDate, from), minTime(h.EndDate, to)) {
				key := string(h.Type)
				resp.OwnDates[key] = append(resp.OwnDates[key], d.Format(validator.DateLayout))
			}
		}
	}
	return resp, nil
}

func calendarEvent(actor user.Actor, h holiday.Holiday, names map[string]string) holiday.CalendarEvent {
	userNames := make([]string, 0, len(h.UserIDs))
	for _, id := range h.UserIDs {
		userNames = append(userNames, names[id])
	}

	return holiday.CalendarEvent{
		ID:            h.ID,
		Title:         calendarTitle(actor, h, names),
		Start:         h.StartDate.Format(validator.DateLayout),
		End:           h.EndDate.AddDate(0, 0, 1).Format(validator.DateLayout),
		Type:          string(h.Type),
		TypeDisplay:   h.Type.Display(),
		Status:        string(h.Status),
		Reason:        h.Reason,
		Paid:          h.Paid,
		IsOwn:         h.HasUser(actor.UserID),
		Days:          h.NumberOfDays(),
		Users:         userNames,
		DisplayPeriod: h.StartDate.Format("02/01/06") + " - " + h.EndDate.Format("02/01/06"),
	}
}

// calendarTitle names the single user with a status suffix, or the first
// user (the caller when included) plus a count of the others.
func calendarTitle(actor user.Actor, h holiday.Holiday, names map[string]string) string {
	switch n := len(h.UserIDs); {
	case n == 0:
		return h.Type.Display()
	case n == 1:
		title := names[h.UserIDs[0]]
		switch h.Status {
		case holiday.StatusPending:
			title += " (pending)"
		case holiday.StatusPendingEdit:
			title += " (pending edit)"
		case holiday.StatusPendingDelete:
			title += " (pending delete)"
		}
		return title
	default:
		first := names[h.UserIDs[0]]
		if h.HasUser(actor.UserID) {
			first = names[actor.UserID]
		}
		return first + " and " + strconv.Itoa(n-1) + " more"
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
