package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/dto"
	"github.com/teaminfinity/expense_management/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// approvalRuleService administers company approval rules.
type approvalRuleService struct {
	ruleRepo portsrepo.ApprovalRuleRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewApprovalRuleService creates a new ApprovalRuleService.
func NewApprovalRuleService(ruleRepo portsrepo.ApprovalRuleRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.ApprovalRuleSvcFacade {
	return &approvalRuleService{
		ruleRepo: ruleRepo,
		userRepo: userRepo,
	}
}

// Ensure approvalRuleService implements the ApprovalRuleSvcFacade interface.
var _ portssvc.ApprovalRuleSvcFacade = (*approvalRuleService)(nil)

// CreateRule adds an approval rule to the acting admin's company. The rule
// must carry the fields its type evaluates; anything else is rejected up
// front rather than silently skipped at evaluation time.
func (s *approvalRuleService) CreateRule(ctx context.Context, req dto.CreateApprovalRuleRequest, actingUserID string) (*domain.ApprovalRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.requireAdmin(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := domain.ApprovalRule{
		RuleID:              uuid.NewString(),
		CompanyID:           actor.CompanyID,
		RuleType:            req.RuleType,
		ThresholdAmount:     req.ThresholdAmount,
		ThresholdPercentage: req.ThresholdPercentage,
		SpecificApproverID:  req.SpecificApproverID,
		Sequence:            req.Sequence,
		Active:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.validateRule(ctx, rule, actor.CompanyID); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		logger.Error("Failed to save approval rule", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save approval rule: %w", err)
	}

	logger.Info("Approval rule created",
		slog.String("rule_id", rule.RuleID),
		slog.String("rule_type", string(rule.RuleType)),
		slog.Int("sequence", rule.Sequence),
	)
	return &rule, nil
}

// UpdateRule changes an existing rule of the acting admin's company. The rule
// type itself is immutable; deactivate and create a new rule instead.
func (s *approvalRuleService) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateApprovalRuleRequest, actingUserID string) (*domain.ApprovalRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.requireAdmin(ctx, actingUserID)
	if err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}

	if req.ThresholdAmount != nil {
		rule.ThresholdAmount = req.ThresholdAmount
	}
	if req.ThresholdPercentage != nil {
		rule.ThresholdPercentage = req.ThresholdPercentage
	}
	if req.SpecificApproverID != nil {
		rule.SpecificApproverID = req.SpecificApproverID
	}
	if req.Sequence != nil {
		if *req.Sequence < 1 {
			return nil, fmt.Errorf("%w: sequence must be positive", apperrors.ErrValidation)
		}
		rule.Sequence = *req.Sequence
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}
	rule.LastUpdatedAt = time.Now().UTC()
	rule.LastUpdatedBy = actor.UserID

	if err := s.validateRule(ctx, *rule, actor.CompanyID); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		logger.Error("Failed to update approval rule", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to update approval rule: %w", err)
	}

	logger.Info("Approval rule updated", slog.String("rule_id", rule.RuleID), slog.Bool("active", rule.Active))
	return rule, nil
}

// ListRules lists all rules of the acting user's company ordered by sequence.
func (s *approvalRuleService) ListRules(ctx context.Context, actingUserID string) ([]domain.ApprovalRule, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	return s.ruleRepo.ListRulesByCompany(ctx, actor.CompanyID)
}

// requireAdmin loads the acting user and rejects non-admins.
func (s *approvalRuleService) requireAdmin(ctx context.Context, actingUserID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may manage approval rules", apperrors.ErrForbidden)
	}
	return actor, nil
}

// validateRule enforces the per-type field requirements and checks that any
// referenced specific approver exists in the same company.
func (s *approvalRuleService) validateRule(ctx context.Context, rule domain.ApprovalRule, companyID string) error {
	switch rule.RuleType {
	case domain.RuleTypePercentage:
		if rule.ThresholdAmount == nil || rule.ThresholdPercentage == nil {
			return fmt.Errorf("%w: PERCENTAGE rules need thresholdAmount and thresholdPercentage", apperrors.ErrValidation)
		}
		if rule.ThresholdPercentage.IsNegative() || rule.ThresholdPercentage.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: thresholdPercentage must be between 0 and 100", apperrors.ErrValidation)
		}
		if rule.SpecificApproverID == nil {
			return fmt.Errorf("%w: PERCENTAGE rules need a specificApproverID to assign", apperrors.ErrValidation)
		}
	case domain.RuleTypeHybrid:
		if rule.ThresholdAmount == nil {
			return fmt.Errorf("%w: HYBRID rules need thresholdAmount", apperrors.ErrValidation)
		}
		if rule.SpecificApproverID == nil {
			return fmt.Errorf("%w: HYBRID rules need a specificApproverID to assign", apperrors.ErrValidation)
		}
	case domain.RuleTypeSpecificApprover:
		if rule.SpecificApproverID == nil {
			return fmt.Errorf("%w: SPECIFIC_APPROVER rules need a specificApproverID", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown rule type %q", apperrors.ErrValidation, rule.RuleType)
	}

	if rule.SpecificApproverID != nil {
		approver, err := s.userRepo.FindUserByID(ctx, *rule.SpecificApproverID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: specific approver not found", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to load specific approver: %w", err)
		}
		if approver.CompanyID != companyID {
			return fmt.Errorf("%w: specific approver must belong to the same company", apperrors.ErrValidation)
		}
	}
	return nil
}
