package services

import (
	"context"
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
	"github.com/teaminfinity/expense_management/internal/utils/approval"
)

// expenseService provides expense submission and query operations.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryWithTx
	ruleRepo    portsrepo.ApprovalRuleRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryWithTx,
	ruleRepo portsrepo.ApprovalRuleRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		ruleRepo:    ruleRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

// Ensure expenseService implements the ExpenseSvcFacade interface.
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// SubmitExpense creates an expense and materializes its approval step chain
// in one atomic operation. The approver order is resolved from the company's
// reporting-manager policy and its active rules (sorted by sequence by the
// rule repository); steps are numbered 1..N in that order, all PENDING.
// An empty approver list is valid: zero steps are created and the expense is
// approved immediately (every step is vacuously approved).
func (s *expenseService) SubmitExpense(ctx context.Context, req dto.SubmitExpenseRequest, submittingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	submitter, err := s.userRepo.FindUserByID(ctx, submittingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitting user: %w", err)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, submitter.CompanyID)
	if err != nil {
		logger.Error("Failed to load company for expense submission", slog.String("error", err.Error()), slog.String("company_id", submitter.CompanyID))
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	rules, err := s.ruleRepo.ListActiveRulesByCompany(ctx, company.CompanyID)
	if err != nil {
		logger.Error("Failed to load approval rules", slog.String("error", err.Error()), slog.String("company_id", company.CompanyID))
		return nil, fmt.Errorf("failed to load approval rules: %w", err)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		CompanyID:       company.CompanyID,
		UserID:          submitter.UserID,
		Amount:          req.Amount,
		CurrencyCode:    req.CurrencyCode,
		Category:        req.Category,
		Description:     req.Description,
		ExpenseDate:     req.ExpenseDate,
		ReceiptImageURL: req.ReceiptImageURL,
		Status:          domain.ExpensePending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitter.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitter.UserID,
		},
	}

	approvers := approval.DetermineApprovers(expense, rules, submitter.ManagerID, company.IsManagerApprover)

	steps := make([]domain.ApprovalStep, len(approvers))
	for i, approverID := range approvers {
		steps[i] = domain.ApprovalStep{
			StepID:     uuid.NewString(),
			ExpenseID:  expense.ExpenseID,
			ApproverID: approverID,
			Sequence:   i + 1,
			Decision:   domain.DecisionPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     submitter.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: submitter.UserID,
			},
		}
	}

	// No approvers resolved: nothing to wait for, the expense is approved.
	if len(steps) == 0 {
		expense.Status = domain.ExpenseApproved
	}

	if err := s.expenseRepo.SaveExpenseWithSteps(ctx, expense, steps); err != nil {
		logger.Error("Failed to save expense with steps", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	logger.Info("Expense submitted",
		slog.String("expense_id", expense.ExpenseID),
		slog.Int("approval_steps", len(steps)),
		slog.String("status", string(expense.Status)),
	)
	return &expense, nil
}

// GetExpenseByID retrieves one expense; users may only see expenses of their
// own company.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, actingUserID string) (*domain.Expense, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.CompanyID != actor.CompanyID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// ListUserExpenses lists the acting user's expenses with token pagination.
func (s *expenseService) ListUserExpenses(ctx context.Context, actingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByUser(ctx, actingUserID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list expenses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve expenses: %w", err)
	}

	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}, nil
}

// ListUserExpensesByStatus lists the acting user's expenses with a status.
func (s *expenseService) ListUserExpensesByStatus(ctx context.Context, actingUserID string, status domain.ExpenseStatus) ([]domain.Expense, error) {
	switch status {
	case domain.ExpensePending, domain.ExpenseApproved, domain.ExpenseRejected:
	default:
		return nil, fmt.Errorf("%w: unknown expense status %q", apperrors.ErrValidation, status)
	}
	return s.expenseRepo.ListExpensesByUserAndStatus(ctx, actingUserID, status)
}

// ListPendingCompanyExpenses lists all pending expenses of the acting user's
// company; restricted to admins and managers.
func (s *expenseService) ListPendingCompanyExpenses(ctx context.Context, actingUserID string) ([]domain.Expense, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acting user: %w", err)
	}

	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
		return nil, fmt.Errorf("%w: only admins and managers may view company expenses", apperrors.ErrForbidden)
	}

	return s.expenseRepo.ListPendingExpensesByCompany(ctx, actor.CompanyID)
}
