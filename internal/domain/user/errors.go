package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrEmployerAccessRequired = errors.New("employer access required")
	ErrInsufficientPermission = errors.New("insufficient permissions")
	ErrCompanyIDRequired      = errors.New("company ID is required")
	ErrAnnualBelowUsed        = errors.New("annual holidays cannot be lower than used holidays")
	ErrNegativeBalance        = errors.New("used holidays cannot become negative")
)
