package auth

import (
	"testing"

	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "ada@example.com", Password: "password123"}).Validate())

	err := (&LoginRequest{Email: "not-an-email", Password: "short"}).Validate()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegisterRequest_Validate(t *testing.T) {
	req := RegisterRequest{
		CompanyName:     "Acme",
		FirstName:       "Ada",
		Email:           "ada@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	}
	assert.NoError(t, req.Validate())

	req.ConfirmPassword = "password124"
	req.CompanyName = " "
	err := req.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "confirm_password")
	assert.Contains(t, fields, "company_name")
}
