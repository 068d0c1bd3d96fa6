package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/invitation"
	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var insufficient *holiday.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		InsufficientBalance(w, insufficient.Error(), insufficient.Remaining())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrNoCompany):
		Forbidden(w, err.Error())

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanySlugExists):
		Conflict(w, "Company slug already exists")
	case errors.Is(err, company.ErrInvalidCompanyName):
		ValidationError(w, map[string]string{"company_name": err.Error()})

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmployerAccessRequired):
		Forbidden(w, "Employer access required")
	case errors.Is(err, user.ErrInsufficientPermission):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAnnualBelowUsed):
		ValidationError(w, map[string]string{"annual_holidays": err.Error()})
	case errors.Is(err, user.ErrNegativeBalance):
		Conflict(w, err.Error())

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, holiday.ErrBankHolidayEmployerOnly):
		Forbidden(w, err.Error())
	case errors.Is(err, holiday.ErrInvalidHolidayState):
		Conflict(w, err.Error())

	// Invitation domain errors
	case errors.Is(err, invitation.ErrInvitationNotFound):
		NotFound(w, "Invitation not found")
	case errors.Is(err, invitation.ErrInvitationExpired),
		errors.Is(err, invitation.ErrInvitationAlreadyUsed),
		errors.Is(err, invitation.ErrInvitationRevoked),
		errors.Is(err, invitation.ErrCannotRevokeAccepted),
		errors.Is(err, invitation.ErrEmailAlreadyInvited):
		Conflict(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
