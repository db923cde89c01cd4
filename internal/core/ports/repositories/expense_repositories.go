package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByUser retrieves a paginated list of a user's expenses,
	// newest first, using token-based pagination.
	ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// ListExpensesByUserAndStatus retrieves a user's expenses filtered by status.
	ListExpensesByUserAndStatus(ctx context.Context, userID string, status domain.ExpenseStatus) ([]domain.Expense, error)

	// ListPendingExpensesByCompany retrieves all PENDING expenses of a company.
	ListPendingExpensesByCompany(ctx context.Context, companyID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpenseWithSteps persists an expense and its full approval step
	// chain atomically, in one database transaction.
	SaveExpenseWithSteps(ctx context.Context, expense domain.Expense, steps []domain.ApprovalStep) error

	// FindExpenseByIDForUpdate retrieves an expense inside tx with its row
	// locked, serializing status recomputation per expense.
	FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error)

	// UpdateExpenseStatus writes a recomputed expense status inside tx.
	UpdateExpenseStatus(ctx context.Context, tx pgx.Tx, expenseID string, status domain.ExpenseStatus, updatedByUserID string, updatedAt time.Time) error
}

// ApprovalStepReader defines read operations for approval step data.
type ApprovalStepReader interface {
	// FindStepByID retrieves a specific approval step.
	FindStepByID(ctx context.Context, stepID string) (*domain.ApprovalStep, error)

	// ListStepsByExpenseID retrieves all steps of an expense ordered by
	// sequence ascending.
	ListStepsByExpenseID(ctx context.Context, expenseID string) ([]domain.ApprovalStep, error)

	// ListStepsByExpenseIDInTx is ListStepsByExpenseID executed inside tx, used
	// during status recomputation.
	ListStepsByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.ApprovalStep, error)

	// ListPendingStepsByApprover retrieves an approver's undecided steps,
	// newest first.
	ListPendingStepsByApprover(ctx context.Context, approverID string) ([]domain.ApprovalStep, error)
}

// ApprovalStepWriter defines write operations for approval step data.
type ApprovalStepWriter interface {
	// FindStepByIDForUpdate retrieves a step inside tx with its row locked.
	FindStepByIDForUpdate(ctx context.Context, tx pgx.Tx, stepID string) (*domain.ApprovalStep, error)

	// UpdateStepDecision writes a step's decision, comments and decidedAt
	// inside tx.
	UpdateStepDecision(ctx context.Context, tx pgx.Tx, step domain.ApprovalStep) error
}

// ExpenseRepositoryFacade combines expense and approval step repository
// interfaces; expense and steps form one aggregate and share a repository.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ApprovalStepReader
	ApprovalStepWriter
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction
// capabilities for service-orchestrated atomic operations.
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
