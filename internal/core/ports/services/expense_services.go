package services

import (
	"context"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// ExpenseSvcFacade defines expense submission and query operations.
type ExpenseSvcFacade interface {
	// SubmitExpense creates an expense and its approval step chain atomically.
	SubmitExpense(ctx context.Context, req dto.SubmitExpenseRequest, submittingUserID string) (*domain.Expense, error)

	// GetExpenseByID retrieves one expense, restricted to the owner's company.
	GetExpenseByID(ctx context.Context, expenseID string, actingUserID string) (*domain.Expense, error)

	// ListUserExpenses lists the acting user's expenses, paginated.
	ListUserExpenses(ctx context.Context, actingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)

	// ListUserExpensesByStatus lists the acting user's expenses with a status.
	ListUserExpensesByStatus(ctx context.Context, actingUserID string, status domain.ExpenseStatus) ([]domain.Expense, error)

	// ListPendingCompanyExpenses lists PENDING expenses across the acting
	// user's company (admin/manager only).
	ListPendingCompanyExpenses(ctx context.Context, actingUserID string) ([]domain.Expense, error)
}
