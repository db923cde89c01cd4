package repositories

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence operations for companies.
type CompanyRepositoryFacade interface {
	// SaveCompany inserts a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanyByName retrieves a company by its (unique) name.
	FindCompanyByName(ctx context.Context, name string) (*domain.Company, error)

	// UpdateCompany persists mutable company settings (currently the
	// manager-approver flag).
	UpdateCompany(ctx context.Context, company domain.Company) error
}
