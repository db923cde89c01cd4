package repositories

import (
	"context"
	"time"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsersByCompany retrieves all non-deleted users of a company.
	ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error)

	// ListUsersByCompanyAndRole retrieves a company's users filtered by role.
	ListUsersByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error)

	// CountUsersByCompany returns the number of non-deleted users in a company.
	CountUsersByCompany(ctx context.Context, companyID string) (int64, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser inserts or updates a user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	// A nil hash clears the stored token.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiryTime *time.Time) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
