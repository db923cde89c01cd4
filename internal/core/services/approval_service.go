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
	"github.com/teaminfinity/expense_management/internal/utils/approval"
)

// approvalService advances the per-step approval state machine and keeps the
// owning expense's derived status consistent with its step decisions.
type approvalService struct {
	expenseRepo portsrepo.ExpenseRepositoryWithTx
	userRepo    portsrepo.UserRepositoryFacade
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(expenseRepo portsrepo.ExpenseRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
	}
}

// Ensure approvalService implements the ApprovalSvcFacade interface.
var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// ProcessDecision records an approver's decision on a step and recomputes the
// owning expense's status from all of its steps, atomically.
//
// Preconditions are checked in order, first failure wins: the step must exist
// (ErrNotFound), the actor must be the assigned approver (ErrForbidden) and
// the step must still be PENDING (ErrConflict). Decisions are write-once.
//
// The expense row is locked for the duration of the transaction so that
// concurrent decisions on sibling steps serialize their status recomputation;
// two simultaneous final approvals cannot both observe "not yet all approved".
// Steps are decided independently: sequence does not gate who may act when,
// and one rejection anywhere makes the expense REJECTED. A terminal expense
// status is never reverted.
func (s *approvalService) ProcessDecision(ctx context.Context, stepID string, req dto.ApprovalDecisionRequest, actingUserID string) (*domain.ApprovalStep, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Decision != domain.DecisionApproved && req.Decision != domain.DecisionRejected {
		return nil, fmt.Errorf("%w: decision must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	tx, err := s.expenseRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.expenseRepo.Rollback(ctx, tx) // No-op once committed.

	step, err := s.expenseRepo.FindStepByIDForUpdate(ctx, tx, stepID)
	if err != nil {
		return nil, err // Propagates ErrNotFound for an absent step.
	}

	// Serialize status recomputation per expense.
	expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, step.ExpenseID)
	if err != nil {
		logger.Error("Failed to lock expense for decision", slog.String("error", err.Error()), slog.String("expense_id", step.ExpenseID))
		return nil, fmt.Errorf("failed to lock expense %s: %w", step.ExpenseID, err)
	}

	if step.ApproverID != actingUserID {
		logger.Warn("Decision attempt by non-assigned user", slog.String("step_id", stepID), slog.String("assigned_approver", step.ApproverID))
		return nil, fmt.Errorf("%w: user is not the assigned approver for this step", apperrors.ErrForbidden)
	}

	if step.Decision != domain.DecisionPending {
		return nil, fmt.Errorf("%w: approval step has already been processed", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	step.Decision = req.Decision
	step.Comments = req.Comments
	step.DecidedAt = &now
	step.LastUpdatedAt = now
	step.LastUpdatedBy = actingUserID

	if err := s.expenseRepo.UpdateStepDecision(ctx, tx, *step); err != nil {
		logger.Error("Failed to update approval step", slog.String("error", err.Error()), slog.String("step_id", stepID))
		return nil, fmt.Errorf("failed to update approval step: %w", err)
	}

	// Recompute the expense status from the full step set, not just this step.
	steps, err := s.expenseRepo.ListStepsByExpenseIDInTx(ctx, tx, expense.ExpenseID)
	if err != nil {
		logger.Error("Failed to list steps for status recomputation", slog.String("error", err.Error()), slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to list approval steps: %w", err)
	}

	newStatus := approval.ComputeExpenseStatus(steps)
	if !expense.Status.IsTerminal() && newStatus != expense.Status {
		if err := s.expenseRepo.UpdateExpenseStatus(ctx, tx, expense.ExpenseID, newStatus, actingUserID, now); err != nil {
			logger.Error("Failed to update expense status", slog.String("error", err.Error()), slog.String("expense_id", expense.ExpenseID))
			return nil, fmt.Errorf("failed to update expense status: %w", err)
		}
	}

	if err := s.expenseRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	logger.Info("Approval decision processed",
		slog.String("step_id", stepID),
		slog.String("decision", string(req.Decision)),
		slog.String("expense_id", expense.ExpenseID),
		slog.String("expense_status", string(newStatus)),
	)
	return step, nil
}

// ListStepsForExpense lists all steps of an expense ordered by sequence.
// Visibility is limited to users of the expense's company.
func (s *approvalService) ListStepsForExpense(ctx context.Context, expenseID string, actingUserID string) ([]domain.ApprovalStep, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.CompanyID != actor.CompanyID {
		return nil, apperrors.ErrNotFound
	}

	return s.expenseRepo.ListStepsByExpenseID(ctx, expenseID)
}

// ListPendingStepsForApprover lists the acting user's undecided steps,
// newest first.
func (s *approvalService) ListPendingStepsForApprover(ctx context.Context, actingUserID string) ([]domain.ApprovalStep, error) {
	return s.expenseRepo.ListPendingStepsByApprover(ctx, actingUserID)
}
