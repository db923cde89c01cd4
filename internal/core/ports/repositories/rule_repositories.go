package repositories

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// ApprovalRuleRepositoryFacade defines persistence operations for company
// approval rules.
type ApprovalRuleRepositoryFacade interface {
	// SaveRule inserts a new approval rule.
	SaveRule(ctx context.Context, rule domain.ApprovalRule) error

	// FindRuleByID retrieves a rule by its unique identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error)

	// ListRulesByCompany retrieves all rules of a company (active or not),
	// ordered by sequence ascending.
	ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)

	// ListActiveRulesByCompany retrieves the company's active rules ordered by
	// sequence ascending, creation time as tiebreak. The approval engine relies
	// on this ordering contract.
	ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)

	// UpdateRule persists changes to an existing rule.
	UpdateRule(ctx context.Context, rule domain.ApprovalRule) error
}
