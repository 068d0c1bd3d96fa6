package holiday

import (
	"context"
	"fmt"
	"slices"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/service/ledger"
)

// CreateHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) CreateHoliday(ctx context.Context, actor user.Actor, req holiday.CreateHolidayRequest) (holiday.ActionResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ActionResponse{}, err
	}
	d := req.Details()

	if d.Type == holiday.TypeBankHoliday {
		if !actor.IsEmployer() {
			return holiday.ActionResponse{}, holiday.ErrBankHolidayEmployerOnly
		}
		return s.createBankHoliday(ctx, actor, d, unique(req.Employees))
	}
	return s.createPersonal(ctx, actor, d)
}

func (s *HolidayServiceImpl) createBankHoliday(ctx context.Context, actor user.Actor, d holiday.Details, recipients []string) (holiday.ActionResponse, error) {
	days := d.NumberOfDays()

	var created holiday.Holiday
	err := s.run(ctx, func(txCtx context.Context, events *[]notification.PublishRequest) error {
		users, err := s.lockUsers(txCtx, actor.CompanyID, recipients)
		if err != nil {
			return err
		}
		// Every recipient is checked before anyone is debited.
		if err := insufficient(shortfalls(users, days)); err != nil {
			return err
		}

		h := holiday.Holiday{CompanyID: actor.CompanyID, Status: holiday.StatusApproved, UserIDs: recipients}
		h.SetLive(d)
		created, err = s.holidayRepo.Create(txCtx, h)
		if err != nil {
			return fmt.Errorf("create bank holiday: %w", err)
		}

		if err := s.ledger.AdjustMany(txCtx, actor.CompanyID, adjustAll(recipients, days)...); err != nil {
			return err
		}

		*events = append(*events, event(actor, recipients, notification.TypeHolidayApproved, created,
			"Bank holiday assigned: "+period(d)))
		return nil
	})
	if err != nil {
		return holiday.ActionResponse{}, err
	}

	return holiday.ActionResponse{ID: created.ID, Status: string(created.Status)}, nil
}

func (s *HolidayServiceImpl) createPersonal(ctx context.Context, actor user.Actor, d holiday.Details) (holiday.ActionResponse, error) {
	days := d.NumberOfDays()
	status := holiday.StatusPending
	if actor.IsEmployer() {
		status = holiday.StatusApproved
	}

	var created holiday.Holiday
	err := s.run(ctx, func(txCtx context.Context, events *[]notification.PublishRequest) error {
		users, err := s.lockUsers(txCtx, actor.CompanyID, []string{actor.UserID})
		if err != nil {
			return err
		}
		if err := insufficient(shortfalls(users, days)); err != nil {
			return err
		}

		h := holiday.Holiday{CompanyID: actor.CompanyID, Status: status, UserIDs: []string{actor.UserID}}
		h.SetLive(d)
		created, err = s.holidayRepo.Create(txCtx, h)
		if err != nil {
			return fmt.Errorf("create holiday: %w", err)
		}

		// Days are reserved on submission, before approval.
		if err := s.ledger.Adjust(txCtx, actor.CompanyID, actor.UserID, days); err != nil {
			return err
		}

		if status == holiday.StatusPending {
			employers, err := s.employerIDs(txCtx, actor)
			if err != nil {
				return err
			}
			*events = append(*events, event(actor, employers, notification.TypeHolidayRequested, created,
				users[0].FullName()+" requested "+d.Type.Display()+": "+period(d)))
		}
		return nil
	})
	if err != nil {
		return holiday.ActionResponse{}, err
	}

	return holiday.ActionResponse{ID: created.ID, Status: string(created.Status)}, nil
}

// EditHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) EditHoliday(ctx context.Context, actor user.Actor, id string, req holiday.EditHolidayRequest) (holiday.ActionResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ActionResponse{}, err
	}

	var result holiday.Holiday
	err := s.run(ctx, func(txCtx context.Context, events *[]notification.PublishRequest) error {
		h, err := s.lockHoliday(txCtx, actor, id)
		if err != nil {
			return err
		}

		if h.IsBankHoliday() && !actor.IsEmployer() {
			return holiday.ErrBankHolidayEmployerOnly
		}

		next, err := req.Merge(h.Live())
		if err != nil {
			return err
		}
		if (next.Type == holiday.TypeBankHoliday) != h.IsBankHoliday() {
			return typeChangeError()
		}

		switch {
		case h.IsBankHoliday():
			recipients := h.UserIDs
			if req.Employees != nil {
				recipients = unique(*req.Employees)
			}
			err = s.editBankHoliday(txCtx, actor, &h, next, recipients, events)
		case actor.IsEmployer():
			err = s.editByEmployer(txCtx, actor, &h, next, events)
		default:
			err = s.editByEmployee(txCtx, actor, &h, next, events)
		}
		if err != nil {
			return err
		}

		result = h
		return nil
	})
	if err != nil {
		return holiday.ActionResponse{}, err
	}

	return holiday.ActionResponse{ID: result.ID, Status: string(result.Status)}, nil
}

// editBankHoliday replaces dates and recipients. Removed users get their
// old days back, kept users pay the difference and added users pay the
// full new length.
func (s *HolidayServiceImpl) editBankHoliday(ctx context.Context, actor user.Actor, h *holiday.Holiday, next holiday.Details, recipients []string, events *[]notification.PublishRequest) error {
	oldDays, newDays := h.NumberOfDays(), next.NumberOfDays()
	diff := newDays - oldDays

	var kept, added, removed []string
	for _, id := range recipients {
		if h.HasUser(id) {
			kept = append(kept, id)
		} else {
			added = append(added, id)
		}
	}
	for _, id := range h.UserIDs {
		if !slices.Contains(recipients, id) {
			removed = append(removed, id)
		}
	}

	locked, err := s.lockUsers(ctx, actor.CompanyID, append(slices.Clone(h.UserIDs), added...))
	if err != nil {
		return err
	}
	var keptUsers, addedUsers []user.User
	for _, u := range locked {
		switch {
		case slices.Contains(kept, u.ID):
			keptUsers = append(keptUsers, u)
		case slices.Contains(added, u.ID):
			addedUsers = append(addedUsers, u)
		}
	}

	var keptShort []holiday.Shortfall
	if diff > 0 {
		keptShort = shortfalls(keptUsers, diff)
	}
	if err := insufficient(keptShort, shortfalls(addedUsers, newDays)); err != nil {
		return err
	}

	var adjustments []ledger.Adjustment
	adjustments = append(adjustments, adjustAll(removed, -oldDays)...)
	adjustments = append(adjustments, adjustAll(kept, diff)...)
	adjustments = append(adjustments, adjustAll(added, newDays)...)
	if err := s.ledger.AdjustMany(ctx, actor.CompanyID, adjustments...); err != nil {
		return err
	}

	notify := unique(append(slices.Clone(recipients), removed...))
	h.SetLive(next)
	h.ClearPending()
	if err := s.holidayRepo.Update(ctx, *h); err != nil {
		return fmt.Errorf("update bank holiday: %w", err)
	}
	if len(added) > 0 || len(removed) > 0 {
		if err := s.holidayRepo.SetUsers(ctx, h.ID, recipients); err != nil {
			return fmt.Errorf("set bank holiday users: %w", err)
		}
		h.UserIDs = recipients
	}

	*events = append(*events, event(actor, notify, notification.TypeHolidayUpdated, *h,
		"Bank holiday updated: "+period(next)))
	return nil
}

// editByEmployer overwrites the live fields at once and drops any pending
// proposal.
func (s *HolidayServiceImpl) editByEmployer(ctx context.Context, actor user.Actor, h *holiday.Holiday, next holiday.Details, events *[]notification.PublishRequest) error {
	diff := next.NumberOfDays() - h.NumberOfDays()

	users, err := s.lockUsers(ctx, actor.CompanyID, h.UserIDs)
	if err != nil {
		return err
	}
	if diff > 0 {
		if err := insufficient(shortfalls(users, diff)); err != nil {
			return err
		}
	}

	h.SetLive(next)
	h.ClearPending()
	if err := s.holidayRepo.Update(ctx, *h); err != nil {
		return fmt.Errorf("update holiday: %w", err)
	}
	if err := s.ledger.AdjustMany(ctx, actor.CompanyID, adjustAll(h.UserIDs, diff)...); err != nil {
		return err
	}

	*events = append(*events, event(actor, h.UserIDs, notification.TypeHolidayUpdated, *h,
		"Your holiday was updated: "+period(next)))
	return nil
}

// editByEmployee changes an own pending request in place, or proposes an
// edit of an approved one.
func (s *HolidayServiceImpl) editByEmployee(ctx context.Context, actor user.Actor, h *holiday.Holiday, next holiday.Details, events *[]notification.PublishRequest) error {
	if h.Status == holiday.StatusPendingDelete {
		return holiday.ErrInvalidHolidayState
	}

	diff := next.NumberOfDays() - h.NumberOfDays()
	users, err := s.lockUsers(ctx, actor.CompanyID, []string{actor.UserID})
	if err != nil {
		return err
	}
	if diff > 0 {
		if err := insufficient(shortfalls(users, diff)); err != nil {
			return err
		}
	}

	if h.Status == holiday.StatusPending {
		h.SetLive(next)
		if err := s.holidayRepo.Update(ctx, *h); err != nil {
			return fmt.Errorf("update holiday: %w", err)
		}
		if err := s.ledger.Adjust(ctx, actor.CompanyID, actor.UserID, diff); err != nil {
			return err
		}
	} else {
		// Ledger is settled when the employer accepts the edit.
		h.ProposeEdit(next)
		if err := s.holidayRepo.Update(ctx, *h); err != nil {
			return fmt.Errorf("propose holiday edit: %w", err)
		}
	}

	employers, err := s.employerIDs(ctx, actor)
	if err != nil {
		return err
	}
	*events = append(*events, event(actor, employers, notification.TypeHolidayEditRequested, *h,
		users[0].FullName()+" requested a change to "+period(next)))
	return nil
}

// DeleteHoliday implements holiday.HolidayService. Employers delete at
// once; employees withdraw a pending request or ask for deletion of an
// approved one.
func (s *HolidayServiceImpl) DeleteHoliday(ctx context.Context, actor user.Actor, id string) (holiday.ActionResponse, error) {
	var resp holiday.ActionResponse
	err := s.run(ctx, func(txCtx context.Context, events *[]notification.PublishRequest) error {
		h, err := s.lockHoliday(txCtx, actor, id)
		if err != nil {
			return err
		}
		if h.IsBankHoliday() && !actor.IsEmployer() {
			return holiday.ErrBankHolidayEmployerOnly
		}
		resp.ID = h.ID

		if actor.IsEmployer() {
			if err := s.remove(txCtx, actor, h); err != nil {
				return err
			}
			resp.Status = statusDeleted
			*events = append(*events, event(actor, h.UserIDs, notification.TypeHolidayDeleted, h,
				"Holiday removed: "+period(h.Live())))
			return nil
		}

		employers, err := s.employerIDs(txCtx, actor)
		if err != nil {
			return err
		}

		switch h.Status {
		case holiday.StatusPending:
			if err := s.remove(txCtx, actor, h); err != nil {
				return err
			}
			resp.Status = statusDeleted
			*events = append(*events, event(actor, employers, notification.TypeHolidayDeleted, h,
				"Holiday request withdrawn: "+period(h.Live())))
		case holiday.StatusApproved, holiday.StatusPendingEdit:
			h.ClearPending()
			h.Status = holiday.StatusPendingDelete
			if err := s.holidayRepo.Update(txCtx, h); err != nil {
				return fmt.Errorf("request holiday deletion: %w", err)
			}
			resp.Status = string(h.Status)
			*events = append(*events, event(actor, employers, notification.TypeHolidayDeleteRequested, h,
				"Deletion requested: "+period(h.Live())))
		default:
			return holiday.ErrInvalidHolidayState
		}
		return nil
	})
	if err != nil {
		return holiday.ActionResponse{}, err
	}

	return resp, nil
}

// remove credits every assigned user and deletes the record.
func (s *HolidayServiceImpl) remove(ctx context.Context, actor user.Actor, h holiday.Holiday) error {
	if _, err := s.lockUsers(ctx, actor.CompanyID, h.UserIDs); err != nil {
		return err
	}
	if err := s.ledger.AdjustMany(ctx, actor.CompanyID, adjustAll(h.UserIDs, -h.NumberOfDays())...); err != nil {
		return err
	}
	if err := s.holidayRepo.Delete(ctx, actor.CompanyID, h.ID); err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}
	return nil
}

// ProcessHoliday implements holiday.HolidayService.
func (s *HolidayServiceImpl) ProcessHoliday(ctx context.Context, actor user.Actor, id string, req holiday.ProcessHolidayRequest) (holiday.ActionResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.ActionResponse{}, err
	}
	if !actor.IsEmployer() {
		return holiday.ActionResponse{}, user.ErrEmployerAccessRequired
	}
	action := holiday.Action(req.Action)

	var resp holiday.ActionResponse
	err := s.run(ctx, func(txCtx context.Context, events *[]notification.PublishRequest) error {
		h, err := s.lockHoliday(txCtx, actor, id)
		if err != nil {
			return err
		}
		if h.Status != requiredStatus(action) {
			return holiday.ErrInvalidHolidayState
		}
		resp.ID = h.ID

		var eventType notification.EventType
		var message string

		switch action {
		case holiday.ActionAccept:
			h.Status = holiday.StatusApproved
			err = s.holidayRepo.Update(txCtx, h)
			eventType, message = notification.TypeHolidayApproved, "Holiday approved: "+period(h.Live())

		case holiday.ActionDecline:
			err = s.remove(txCtx, actor, h)
			eventType, message = notification.TypeHolidayDeclined, "Holiday declined: "+period(h.Live())

		case holiday.ActionAcceptEdit:
			err = s.acceptEdit(txCtx, actor, &h)
			eventType, message = notification.TypeHolidayApproved, "Holiday change approved: "+period(h.Live())

		case holiday.ActionDeclineEdit:
			h.ClearPending()
			err = s.holidayRepo.Update(txCtx, h)
			eventType, message = notification.TypeHolidayDeclined, "Holiday change declined: "+period(h.Live())

		case holiday.ActionAcceptDelete:
			err = s.remove(txCtx, actor, h)
			eventType, message = notification.TypeHolidayDeleted, "Holiday deletion approved: "+period(h.Live())

		case holiday.ActionDeclineDelete:
			h.Status = holiday.StatusApproved
			err = s.holidayRepo.Update(txCtx, h)
			eventType, message = notification.TypeHolidayDeclined, "Holiday deletion declined: "+period(h.Live())
		}
		if err != nil {
			return err
		}

		resp.Status = string(h.Status)
		if action == holiday.ActionDecline || action == holiday.ActionAcceptDelete {
			resp.Status = statusDeleted
		}
		*events = append(*events, event(actor, h.UserIDs, eventType, h, message))
		return nil
	})
	if err != nil {
		return holiday.ActionResponse{}, err
	}

	return resp, nil
}

// acceptEdit applies the proposal and settles the day difference for every
// assigned user.
func (s *HolidayServiceImpl) acceptEdit(ctx context.Context, actor user.Actor, h *holiday.Holiday) error {
	diff := h.PendingNumberOfDays() - h.NumberOfDays()

	users, err := s.lockUsers(ctx, actor.CompanyID, h.UserIDs)
	if err != nil {
		return err
	}
	if diff > 0 {
		if err := insufficient(shortfalls(users, diff)); err != nil {
			return err
		}
	}

	h.ApplyPending()
	if err := s.holidayRepo.Update(ctx, *h); err != nil {
		return fmt.Errorf("apply holiday edit: %w", err)
	}
	return s.ledger.AdjustMany(ctx, actor.CompanyID, adjustAll(h.UserIDs, diff)...)
}

func requiredStatus(a holiday.Action) holiday.Status {
	switch a {
	case holiday.ActionAccept, holiday.ActionDecline:
		return holiday.StatusPending
	case holiday.ActionAcceptEdit, holiday.ActionDeclineEdit:
		return holiday.StatusPendingEdit
	default:
		return holiday.StatusPendingDelete
	}
}
