package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
)

type holidayRepository struct {
	s *Store
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h.ID = newID()
	now := time.Now()
	h.RequestedAt, h.UpdatedAt = now, now
	h.UserIDs = sortedIDs(h.UserIDs)
	r.s.holidays[h.ID] = cloneHoliday(h)
	return cloneHoliday(h), nil
}

func (r *holidayRepository) GetByID(ctx context.Context, companyID, id string) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return cloneHoliday(h), nil
}

func (r *holidayRepository) GetByIDForUpdate(ctx context.Context, companyID, id string) (holiday.Holiday, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *holidayRepository) List(ctx context.Context, companyID string, filter holiday.ListFilter) ([]holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]holiday.Holiday, 0)
	for _, h := range r.s.holidays {
		switch {
		case h.CompanyID != companyID:
		case len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, h.Status):
		case len(filter.Types) > 0 && !slices.Contains(filter.Types, h.Type):
		case filter.UserID != "" && !h.HasUser(filter.UserID):
		case filter.From != nil && h.EndDate.Before(*filter.From):
		case filter.To != nil && h.StartDate.After(*filter.To):
		default:
			result = append(result, cloneHoliday(h))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.LatestFirst {
			if !a.EndDate.Equal(b.EndDate) {
				return a.EndDate.After(b.EndDate)
			}
		} else if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (r *holidayRepository) Update(ctx context.Context, h holiday.Holiday) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.holidays[h.ID]
	if !ok || old.CompanyID != h.CompanyID {
		return holiday.ErrHolidayNotFound
	}
	h.UserIDs = old.UserIDs
	h.RequestedAt = old.RequestedAt
	h.UpdatedAt = time.Now()
	r.s.holidays[h.ID] = cloneHoliday(h)
	return nil
}

func (r *holidayRepository) SetUsers(ctx context.Context, holidayID string, userIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.holidays[holidayID]
	if !ok {
		return holiday.ErrHolidayNotFound
	}
	h.UserIDs = sortedIDs(userIDs)
	r.s.holidays[holidayID] = h
	return nil
}

func (r *holidayRepository) Delete(ctx context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

func sortedIDs(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
