package employee

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	tx       database.Transactor
	userRepo user.UserRepository
}

func NewEmployeeService(tx database.Transactor, userRepo user.UserRepository) user.EmployeeService {
	return &EmployeeServiceImpl{
		tx:       tx,
		userRepo: userRepo,
	}
}

// ListEmployees implements user.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, actor user.Actor) ([]user.UserResponse, error) {
	if !actor.IsEmployer() {
		return nil, user.ErrEmployerAccessRequired
	}

	users, err := s.userRepo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.NewUserResponse(u))
	}
	return resp, nil
}

// GetProfile implements user.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, actor user.Actor) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// GetBalance implements user.EmployeeService.
func (s *EmployeeServiceImpl) GetBalance(ctx context.Context, actor user.Actor) (user.BalanceResponse, error) {
	u, err := s.userRepo.GetByID(ctx, actor.CompanyID, actor.UserID)
	if err != nil {
		return user.BalanceResponse{}, err
	}
	return user.NewBalanceResponse(u), nil
}

// UpdateEmployee implements user.EmployeeService. The row is locked so a
// concurrent holiday action cannot push used_holidays past the new
// entitlement.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, actor user.Actor, id string, req user.UpdateEmployeeRequest) (user.UserResponse, error) {
	if !actor.IsEmployer() {
		return user.UserResponse{}, user.ErrEmployerAccessRequired
	}
	if !validator.IsValidUUID(id) {
		return user.UserResponse{}, user.ErrUserNotFound
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var updated user.User
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.userRepo.LockByIDs(txCtx, actor.CompanyID, []string{id})
		if err != nil {
			return fmt.Errorf("failed to lock employee: %w", err)
		}
		if len(locked) == 0 {
			return user.ErrUserNotFound
		}
		if req.AnnualHolidays != nil && *req.AnnualHolidays < locked[0].UsedHolidays {
			return user.ErrAnnualBelowUsed
		}

		updated, err = s.userRepo.Update(txCtx, actor.CompanyID, id, req)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(updated), nil
}
