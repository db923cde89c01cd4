package services

import (
	"context"
	"time"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	// CreateUser creates a new user in the acting admin's company.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actingUserID string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListCompanyUsers lists the users of the acting user's company.
	ListCompanyUsers(ctx context.Context, actingUserID string) ([]domain.User, error)

	// ListCompanyUsersByRole lists the acting user's company users with a role.
	ListCompanyUsersByRole(ctx context.Context, actingUserID string, role domain.Role) ([]domain.User, error)

	// StoreRefreshToken persists the hash/expiry of a user's refresh token.
	StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error

	// ClearRefreshToken removes a user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}
