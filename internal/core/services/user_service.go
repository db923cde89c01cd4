package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/utils"
)

// userService provides user management operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the UserSvcFacade interface.
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a user in the acting admin's company. The optional
// manager must exist in the same company; since a brand-new user has no
// reports, assigning a manager here cannot introduce a reporting cycle.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may create users", apperrors.ErrForbidden)
	}

	if existing, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	if req.ManagerID != nil {
		manager, err := s.userRepo.FindUserByID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: manager not found", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to load manager: %w", err)
		}
		if manager.CompanyID != actor.CompanyID {
			return nil, fmt.Errorf("%w: manager must belong to the same company", apperrors.ErrValidation)
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    actor.CompanyID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         req.Role,
		ManagerID:    req.ManagerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email address.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// ListCompanyUsers lists the users of the acting user's company.
func (s *userService) ListCompanyUsers(ctx context.Context, actingUserID string) ([]domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	return s.userRepo.ListUsersByCompany(ctx, actor.CompanyID)
}

// ListCompanyUsersByRole lists the acting user's company users with a role.
func (s *userService) ListCompanyUsersByRole(ctx context.Context, actingUserID string, role domain.Role) ([]domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	return s.userRepo.ListUsersByCompanyAndRole(ctx, actor.CompanyID, role)
}

// StoreRefreshToken persists the hash/expiry of a user's refresh token.
func (s *userService) StoreRefreshToken(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, &tokenHash, &expiryTime)
}

// ClearRefreshToken removes a user's stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil)
}
