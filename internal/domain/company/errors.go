package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanySlugExists  = errors.New("company slug already exists")
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
)
