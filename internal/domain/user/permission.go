package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Holiday Management
	PermissionHolidayViewOwn     Permission = "holiday.view_own"
	PermissionHolidayCreate      Permission = "holiday.create"
	PermissionHolidayRequestEdit Permission = "holiday.request_edit"
	PermissionHolidayViewAll     Permission = "holiday.view_all"
	PermissionHolidayApprove     Permission = "holiday.approve"
	PermissionBankHolidayManage  Permission = "holiday.bank_manage"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Company Management
	PermissionCompanyView Permission = "company.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployer: {
		PermissionViewOwnProfile,
		PermissionHolidayViewOwn,
		PermissionHolidayCreate,
		PermissionHolidayViewAll,
		PermissionHolidayApprove,
		PermissionBankHolidayManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionHolidayViewOwn,
		PermissionHolidayCreate,
		PermissionHolidayRequestEdit,
		PermissionHolidayViewAll,
		PermissionCompanyView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
