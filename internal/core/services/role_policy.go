package services

import "github.com/teaminfinity/expense_management/internal/core/domain"

// DecideInitialRole is the provisioning policy for a user joining a company:
// the first user becomes the company admin, everyone after that an employee.
// Called once at signup time; role changes afterwards go through the admin
// user-management surface.
func DecideInitialRole(existingUserCount int64) domain.Role {
	if existingUserCount == 0 {
		return domain.RoleAdmin
	}
	return domain.RoleEmployee
}
