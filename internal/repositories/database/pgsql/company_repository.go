package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	"github.com/teaminfinity/expense_management/internal/models"
	"github.com/teaminfinity/expense_management/internal/utils/mapping"
)

// PgxCompanyRepository implements company persistence using pgx.
type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCompanyRepository implements portsrepo.CompanyRepositoryFacade
var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `
	company_id, name, country, default_currency_code, is_manager_approver,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveCompany inserts a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelCompany.CompanyID,
		modelCompany.Name,
		modelCompany.Country,
		modelCompany.DefaultCurrencyCode,
		modelCompany.IsManagerApprover,
		modelCompany.CreatedAt,
		modelCompany.CreatedBy,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company %s: %w", modelCompany.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its unique identifier.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	return r.scanCompanyRow(r.Pool.QueryRow(ctx, query, companyID), companyID)
}

// FindCompanyByName retrieves a company by its unique name.
func (r *PgxCompanyRepository) FindCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE name = $1;`
	return r.scanCompanyRow(r.Pool.QueryRow(ctx, query, name), name)
}

func (r *PgxCompanyRepository) scanCompanyRow(row pgx.Row, key string) (*domain.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.Country,
		&m.DefaultCurrencyCode,
		&m.IsManagerApprover,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", key, err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

// UpdateCompany persists mutable company settings.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	modelCompany := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET is_manager_approver = $2, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelCompany.CompanyID,
		modelCompany.IsManagerApprover,
		modelCompany.LastUpdatedAt,
		modelCompany.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", modelCompany.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
