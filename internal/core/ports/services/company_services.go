package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// CompanySvcFacade defines company settings operations.
type CompanySvcFacade interface {
	// GetCompany retrieves the acting user's company.
	GetCompany(ctx context.Context, actingUserID string) (*domain.Company, error)

	// UpdateCompany changes mutable company settings (admin only).
	UpdateCompany(ctx context.Context, req dto.UpdateCompanyRequest, actingUserID string) (*domain.Company, error)
}
