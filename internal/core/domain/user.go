package domain

import "time"

// Role defines the possible roles a user can have within their company.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// User represents an employee of a company in the domain.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	CompanyID    string  `json:"companyID"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	FullName     string  `json:"fullName"`
	Role         Role    `json:"role"`
	ManagerID    *string `json:"managerID,omitempty"` // Direct manager, nil for top-level users
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	// Refresh Token Fields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
