package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// ApprovalSvcFacade defines the approval decision state machine and its query
// surface.
type ApprovalSvcFacade interface {
	// ProcessDecision records an approver's decision on a step and recomputes
	// the owning expense's status atomically. Fails with apperrors.ErrNotFound
	// when the step is absent, apperrors.ErrForbidden when the actor is not
	// the assigned approver, and apperrors.ErrConflict when the step was
	// already decided.
	ProcessDecision(ctx context.Context, stepID string, req dto.ApprovalDecisionRequest, actingUserID string) (*domain.ApprovalStep, error)

	// ListStepsForExpense lists all steps of an expense ordered by sequence.
	ListStepsForExpense(ctx context.Context, expenseID string, actingUserID string) ([]domain.ApprovalStep, error)

	// ListPendingStepsForApprover lists the acting user's undecided steps.
	ListPendingStepsForApprover(ctx context.Context, actingUserID string) ([]domain.ApprovalStep, error)
}
