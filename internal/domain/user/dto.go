package user

import (
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID                string  `json:"id"`
	CompanyID         *string `json:"company_id,omitempty"`
	Email             string  `json:"email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	FullName          string  `json:"full_name"`
	Role              string  `json:"role"`
	AnnualHolidays    int     `json:"annual_holidays"`
	UsedHolidays      int     `json:"used_holidays"`
	RemainingHolidays int     `json:"remaining_holidays"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		CompanyID:         u.CompanyID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		Role:              string(u.Role),
		AnnualHolidays:    u.AnnualHolidays,
		UsedHolidays:      u.UsedHolidays,
		RemainingHolidays: u.RemainingHolidays(),
		CreatedAt:         u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         u.UpdatedAt.Format(time.RFC3339),
	}
}

// BalanceResponse is the caller's own ledger.
type BalanceResponse struct {
	AnnualHolidays    int `json:"annual_holidays"`
	UsedHolidays      int `json:"used_holidays"`
	RemainingHolidays int `json:"remaining_holidays"`
}

func NewBalanceResponse(u User) BalanceResponse {
	return BalanceResponse{
		AnnualHolidays:    u.AnnualHolidays,
		UsedHolidays:      u.UsedHolidays,
		RemainingHolidays: u.RemainingHolidays(),
	}
}

// UpdateEmployeeRequest lists the only fields an employer may change on an
// employee. used_holidays is only written by the ledger.
type UpdateEmployeeRequest struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	AnnualHolidays *int    `json:"annual_holidays,omitempty"`
	Role           *string `json:"role,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName == nil && r.LastName == nil && r.AnnualHolidays == nil && r.Role == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if r.FirstName != nil {
		if validator.IsEmpty(*r.FirstName) {
			errs = append(errs, validator.ValidationError{
				Field:   "first_name",
				Message: "first_name cannot be empty",
			})
		} else if len(*r.FirstName) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "first_name",
				Message: "first_name must not exceed 100 characters",
			})
		}
	}

	if r.LastName != nil && len(*r.LastName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not exceed 100 characters",
		})
	}

	if r.AnnualHolidays != nil && (*r.AnnualHolidays < 0 || *r.AnnualHolidays > 366) {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_holidays",
			Message: "annual_holidays must be between 0 and 366",
		})
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employer, employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
