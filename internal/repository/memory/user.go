package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
)

type userRepository struct {
	s *Store
}

func inCompany(u user.User, companyID string) bool {
	return u.CompanyID != nil && *u.CompanyID == companyID
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepository) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !inCompany(u, companyID) {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, companyID string, ids []string) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[string]bool, len(ids))
	users := make([]user.User, 0, len(ids))
	for _, id := range ids {
		u, ok := r.s.users[id]
		if ok && !seen[id] && inCompany(u, companyID) {
			seen[id] = true
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepository) LockByIDs(ctx context.Context, companyID string, ids []string) ([]user.User, error) {
	return r.GetByIDs(ctx, companyID, ids)
}

func (r *userRepository) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	return r.filter(companyID, func(user.User) bool { return true }), nil
}

func (r *userRepository) ListEmployers(ctx context.Context, companyID string) ([]user.User, error) {
	return r.filter(companyID, func(u user.User) bool { return u.IsEmployer() }), nil
}

func (r *userRepository) filter(companyID string, keep func(user.User) bool) []user.User {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]user.User, 0)
	for _, u := range r.s.users {
		if inCompany(u, companyID) && keep(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if _, err := r.GetByEmail(ctx, newUser.Email); err == nil {
		return user.User{}, user.ErrUserEmailExists
	}
	newUser.ID = ""
	newUser.Email = strings.ToLower(newUser.Email)
	return r.s.AddUser(newUser), nil
}

func (r *userRepository) Update(ctx context.Context, companyID, id string, req user.UpdateEmployeeRequest) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok || !inCompany(u, companyID) {
		return user.User{}, user.ErrUserNotFound
	}
	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.AnnualHolidays != nil {
		u.AnnualHolidays = *req.AnnualHolidays
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return u, nil
}

func (r *userRepository) AdjustUsedHolidays(ctx context.Context, companyID string, deltas map[string]int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, d := range deltas {
		u, ok := r.s.users[id]
		if !ok || !inCompany(u, companyID) {
			return user.ErrUserNotFound
		}
		if u.UsedHolidays+d < 0 {
			return user.ErrNegativeBalance
		}
	}
	for id, d := range deltas {
		u := r.s.users[id]
		u.UsedHolidays += d
		u.UpdatedAt = time.Now()
		r.s.users[id] = u
	}
	return nil
}
