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

// PgxApprovalRuleRepository implements approval rule persistence using pgx.
type PgxApprovalRuleRepository struct {
	BaseRepository
}

// newPgxApprovalRuleRepository creates a new repository for approval rule data.
func newPgxApprovalRuleRepository(pool *pgxpool.Pool) portsrepo.ApprovalRuleRepositoryFacade {
	return &PgxApprovalRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxApprovalRuleRepository implements portsrepo.ApprovalRuleRepositoryFacade
var _ portsrepo.ApprovalRuleRepositoryFacade = (*PgxApprovalRuleRepository)(nil)

const ruleColumns = `
	rule_id, company_id, rule_type, threshold_amount, threshold_percentage,
	specific_approver_id, sequence, active,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveRule inserts a new approval rule.
func (r *PgxApprovalRuleRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	modelRule := mapping.ToModelApprovalRule(rule)
	query := `
		INSERT INTO approval_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRule.RuleID,
		modelRule.CompanyID,
		modelRule.RuleType,
		modelRule.ThresholdAmount,
		modelRule.ThresholdPercentage,
		modelRule.SpecificApproverID,
		modelRule.Sequence,
		modelRule.Active,
		modelRule.CreatedAt,
		modelRule.CreatedBy,
		modelRule.LastUpdatedAt,
		modelRule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save approval rule %s: %w", modelRule.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves a rule by its unique identifier.
func (r *PgxApprovalRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM approval_rules WHERE rule_id = $1;`

	var m models.ApprovalRule
	err := r.Pool.QueryRow(ctx, query, ruleID).Scan(
		&m.RuleID,
		&m.CompanyID,
		&m.RuleType,
		&m.ThresholdAmount,
		&m.ThresholdPercentage,
		&m.SpecificApproverID,
		&m.Sequence,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approval rule by ID %s: %w", ruleID, err)
	}
	rule := mapping.ToDomainApprovalRule(m)
	return &rule, nil
}

// ListRulesByCompany retrieves all rules of a company ordered by sequence.
func (r *PgxApprovalRuleRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM approval_rules
		WHERE company_id = $1
		ORDER BY sequence ASC, created_at ASC;
	`
	return r.queryRules(ctx, query, companyID)
}

// ListActiveRulesByCompany retrieves the company's active rules ordered by
// sequence ascending, creation time as tiebreak. The approver resolution
// order depends on this ordering.
func (r *PgxApprovalRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM approval_rules
		WHERE company_id = $1 AND active = TRUE
		ORDER BY sequence ASC, created_at ASC;
	`
	return r.queryRules(ctx, query, companyID)
}

func (r *PgxApprovalRuleRepository) queryRules(ctx context.Context, query string, companyID string) ([]domain.ApprovalRule, error) {
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval rules for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var modelRules []models.ApprovalRule
	for rows.Next() {
		var m models.ApprovalRule
		err := rows.Scan(
			&m.RuleID,
			&m.CompanyID,
			&m.RuleType,
			&m.ThresholdAmount,
			&m.ThresholdPercentage,
			&m.SpecificApproverID,
			&m.Sequence,
			&m.Active,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval rule row: %w", err)
		}
		modelRules = append(modelRules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rule rows: %w", err)
	}
	return mapping.ToDomainApprovalRuleSlice(modelRules), nil
}

// UpdateRule persists changes to an existing rule.
func (r *PgxApprovalRuleRepository) UpdateRule(ctx context.Context, rule domain.ApprovalRule) error {
	modelRule := mapping.ToModelApprovalRule(rule)
	query := `
		UPDATE approval_rules
		SET threshold_amount = $2, threshold_percentage = $3, specific_approver_id = $4,
		    sequence = $5, active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE rule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRule.RuleID,
		modelRule.ThresholdAmount,
		modelRule.ThresholdPercentage,
		modelRule.SpecificApproverID,
		modelRule.Sequence,
		modelRule.Active,
		modelRule.LastUpdatedAt,
		modelRule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update approval rule %s: %w", modelRule.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
