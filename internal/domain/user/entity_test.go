package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_Balance(t *testing.T) {
	u := User{AnnualHolidays: 20, UsedHolidays: 18}

	assert.Equal(t, 2, u.RemainingHolidays())
	assert.True(t, u.HasEnoughHolidays(2))
	assert.False(t, u.HasEnoughHolidays(3))
	assert.True(t, u.HasEnoughHolidays(0))
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).FullName())
	assert.Equal(t, "ada@example.com", (&User{Email: "ada@example.com"}).FullName())
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleEmployer, PermissionHolidayApprove))
	assert.True(t, HasPermission(RoleEmployer, PermissionBankHolidayManage))
	assert.False(t, HasPermission(RoleEmployee, PermissionHolidayApprove))
	assert.False(t, HasPermission(RoleEmployee, PermissionEmployeeManage))
	assert.True(t, HasPermission(RoleEmployee, PermissionHolidayRequestEdit))
	assert.False(t, HasPermission(Role("owner"), PermissionViewOwnProfile))
}

func TestUpdateEmployeeRequest_Validate(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	cases := []struct {
		name    string
		req     UpdateEmployeeRequest
		wantErr bool
	}{
		{"empty body", UpdateEmployeeRequest{}, true},
		{"valid annual", UpdateEmployeeRequest{AnnualHolidays: num(25)}, false},
		{"negative annual", UpdateEmployeeRequest{AnnualHolidays: num(-1)}, true},
		{"blank first name", UpdateEmployeeRequest{FirstName: str("  ")}, true},
		{"valid role", UpdateEmployeeRequest{Role: str("employer")}, false},
		{"unknown role", UpdateEmployeeRequest{Role: str("owner")}, true},
		{"names", UpdateEmployeeRequest{FirstName: str("Ada"), LastName: str("")}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
