package dto

import (
	"time"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// CreateUserRequest defines the data for an admin-created user.
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	FullName  string      `json:"fullName" binding:"required"`
	Role      domain.Role `json:"role" binding:"required,oneof=ADMIN MANAGER EMPLOYEE"`
	ManagerID *string     `json:"managerID"`
}

// UserResponse is the external representation of a user.
type UserResponse struct {
	UserID    string      `json:"userID"`
	CompanyID string      `json:"companyID"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	ManagerID *string     `json:"managerID,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users of a company.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain users to the list DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
