package user

import "context"

type EmployeeService interface {
	ListEmployees(ctx context.Context, actor Actor) ([]UserResponse, error)
	GetProfile(ctx context.Context, actor Actor) (UserResponse, error)
	GetBalance(ctx context.Context, actor Actor) (BalanceResponse, error)
	// UpdateEmployee is employer only. used_holidays is never writable.
	UpdateEmployee(ctx context.Context, actor Actor, id string, req UpdateEmployeeRequest) (UserResponse, error)
}
