package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

// companyService provides company settings operations.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// Ensure companyService implements the CompanySvcFacade interface.
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves the acting user's company.
func (s *companyService) GetCompany(ctx context.Context, actingUserID string) (*domain.Company, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	return s.companyRepo.FindCompanyByID(ctx, actor.CompanyID)
}

// UpdateCompany changes mutable company settings; admin only. Toggling
// IsManagerApprover affects future expense submissions, existing step chains
// stay as they were resolved.
func (s *companyService) UpdateCompany(ctx context.Context, req dto.UpdateCompanyRequest, actingUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may change company settings", apperrors.ErrForbidden)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	if req.IsManagerApprover != nil {
		company.IsManagerApprover = *req.IsManagerApprover
	}
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = actor.UserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	logger.Info("Company updated", slog.String("company_id", company.CompanyID), slog.Bool("is_manager_approver", company.IsManagerApprover))
	return company, nil
}
