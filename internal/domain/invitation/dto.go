package invitation

import (
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
)

// CreateRequest - POST /invitations
type CreateRequest struct {
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           *string `json:"role,omitempty"`
	AnnualHolidays *int    `json:"annual_holidays,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	} else if len(r.FirstName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not exceed 100 characters",
		})
	}

	if len(r.LastName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not exceed 100 characters",
		})
	}

	if r.Role != nil && !user.Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employer, employee",
		})
	}

	if r.AnnualHolidays != nil && (*r.AnnualHolidays < 0 || *r.AnnualHolidays > 366) {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_holidays",
			Message: "annual_holidays must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AcceptRequest - POST /invitations/token/{token}/accept
type AcceptRequest struct {
	Token           string `json:"-"` // From Chi URL param
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *AcceptRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 72 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 72 characters",
		})
	}

	if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// InvitationResponse - employer view, GET /invitations
type InvitationResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Role           string  `json:"role"`
	AnnualHolidays int     `json:"annual_holidays"`
	Token          string  `json:"token"`
	Status         string  `json:"status"`
	IsExpired      bool    `json:"is_expired"`
	ExpiresAt      string  `json:"expires_at"`
	AcceptedAt     *string `json:"accepted_at,omitempty"`
	RevokedAt      *string `json:"revoked_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func NewInvitationResponse(inv Invitation) InvitationResponse {
	return InvitationResponse{
		ID:             inv.ID,
		Email:          inv.Email,
		FirstName:      inv.FirstName,
		LastName:       inv.LastName,
		Role:           string(inv.Role),
		AnnualHolidays: inv.AnnualHolidays,
		Token:          inv.Token,
		Status:         string(inv.Status),
		IsExpired:      inv.IsExpired(),
		ExpiresAt:      inv.ExpiresAt.Format(time.RFC3339),
		AcceptedAt:     formatOptional(inv.AcceptedAt),
		RevokedAt:      formatOptional(inv.RevokedAt),
		CreatedAt:      inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// InvitationDetailResponse - GET /invitations/token/{token}
type InvitationDetailResponse struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role"`
	InviterName string `json:"inviter_name"`
	Status      string `json:"status"`
	ExpiresAt   string `json:"expires_at"`
	IsExpired   bool   `json:"is_expired"`
}

// AcceptResponse for invitation acceptance result
type AcceptResponse struct {
	CompanyID   string            `json:"company_id"`
	CompanyName string            `json:"company_name"`
	User        user.UserResponse `json:"user"`
}
