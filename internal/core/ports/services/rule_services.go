package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// ApprovalRuleSvcFacade defines approval rule administration operations.
type ApprovalRuleSvcFacade interface {
	// CreateRule adds a rule to the acting admin's company.
	CreateRule(ctx context.Context, req dto.CreateApprovalRuleRequest, actingUserID string) (*domain.ApprovalRule, error)

	// UpdateRule changes an existing rule of the acting admin's company.
	UpdateRule(ctx context.Context, ruleID string, req dto.UpdateApprovalRuleRequest, actingUserID string) (*domain.ApprovalRule, error)

	// ListRules lists all rules of the acting user's company.
	ListRules(ctx context.Context, actingUserID string) ([]domain.ApprovalRule, error)
}
