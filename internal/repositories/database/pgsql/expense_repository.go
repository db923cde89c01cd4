package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	"github.com/teaminfinity/expense_management/internal/models"
	"github.com/teaminfinity/expense_management/internal/utils/mapping"
	"github.com/teaminfinity/expense_management/internal/utils/pagination"
)

// PgxExpenseRepository persists expenses together with their approval steps;
// the two form one aggregate and are always written consistently.
type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense and approval step data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryWithTx {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryWithTx
var _ portsrepo.ExpenseRepositoryWithTx = (*PgxExpenseRepository)(nil)

const expenseColumns = `
	expense_id, company_id, user_id, amount, currency_code, category,
	description, expense_date, receipt_image_url, status,
	created_at, created_by, last_updated_at, last_updated_by
`

const stepColumns = `
	step_id, expense_id, approver_id, sequence, decision, comments, decided_at,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveExpenseWithSteps inserts an expense and its full approval step chain in
// one database transaction.
func (r *PgxExpenseRepository) SaveExpenseWithSteps(ctx context.Context, expense domain.Expense, steps []domain.ApprovalStep) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed.

	modelExpense := mapping.ToModelExpense(expense)
	expenseQuery := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		modelExpense.ExpenseID,
		modelExpense.CompanyID,
		modelExpense.UserID,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.Category,
		modelExpense.Description,
		modelExpense.ExpenseDate,
		modelExpense.ReceiptImageURL,
		modelExpense.Status,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", modelExpense.ExpenseID, err)
	}

	batch := &pgx.Batch{}
	stepQuery := `
		INSERT INTO approval_steps (` + stepColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, step := range steps {
		modelStep := mapping.ToModelApprovalStep(step)
		batch.Queue(stepQuery,
			modelStep.StepID,
			modelStep.ExpenseID,
			modelStep.ApproverID,
			modelStep.Sequence,
			modelStep.Decision,
			modelStep.Comments,
			modelStep.DecidedAt,
			modelStep.CreatedAt,
			modelStep.CreatedBy,
			modelStep.LastUpdatedAt,
			modelStep.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert approval steps for expense %s: %w", modelExpense.ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}

// FindExpenseByID retrieves a specific expense by its unique identifier.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	return r.scanExpenseRow(r.Pool.QueryRow(ctx, query, expenseID), expenseID)
}

// FindExpenseByIDForUpdate retrieves an expense inside tx with its row locked.
// The lock serializes concurrent decisions on the same expense.
func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	return r.scanExpenseRow(tx.QueryRow(ctx, query, expenseID), expenseID)
}

func (r *PgxExpenseRepository) scanExpenseRow(row pgx.Row, expenseID string) (*domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.CompanyID,
		&m.UserID,
		&m.Amount,
		&m.CurrencyCode,
		&m.Category,
		&m.Description,
		&m.ExpenseDate,
		&m.ReceiptImageURL,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// UpdateExpenseStatus writes a recomputed expense status inside tx.
func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, tx pgx.Tx, expenseID string, status domain.ExpenseStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE expenses
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query, expenseID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update status of expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListExpensesByUser retrieves a paginated list of a user's expenses, newest
// first, keyed on (created_at, expense_id) so ties resume correctly.
func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := []any{userID, limit + 1}
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1`

	if nextToken != nil && *nextToken != "" {
		tokenCreatedAt, tokenExpenseID, err := pagination.DecodeExpenseToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, expense_id) < ($3, $4)`
		args = append(args, tokenCreatedAt, tokenExpenseID)
	}
	query += ` ORDER BY created_at DESC, expense_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelExpenses, err := scanExpenses(rows)
	if err != nil {
		return nil, nil, err
	}

	// One extra row was fetched to detect whether another page exists.
	var newNextToken *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[len(modelExpenses)-1]
		token := pagination.EncodeExpenseToken(last.CreatedAt, last.ExpenseID)
		newNextToken = &token
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), newNextToken, nil
}

// ListExpensesByUserAndStatus retrieves a user's expenses filtered by status,
// newest first.
func (r *PgxExpenseRepository) ListExpensesByUserAndStatus(ctx context.Context, userID string, status domain.ExpenseStatus) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC, expense_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user %s with status %s: %w", userID, status, err)
	}
	defer rows.Close()

	modelExpenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

// ListPendingExpensesByCompany retrieves all PENDING expenses of a company,
// newest first.
func (r *PgxExpenseRepository) ListPendingExpensesByCompany(ctx context.Context, companyID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE company_id = $1 AND status = $2
		ORDER BY created_at DESC, expense_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, string(domain.ExpensePending))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending expenses for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelExpenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	var modelExpenses []models.Expense
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.CompanyID,
			&m.UserID,
			&m.Amount,
			&m.CurrencyCode,
			&m.Category,
			&m.Description,
			&m.ExpenseDate,
			&m.ReceiptImageURL,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return modelExpenses, nil
}

// FindStepByID retrieves a specific approval step.
func (r *PgxExpenseRepository) FindStepByID(ctx context.Context, stepID string) (*domain.ApprovalStep, error) {
	query := `SELECT ` + stepColumns + ` FROM approval_steps WHERE step_id = $1;`
	return r.scanStepRow(r.Pool.QueryRow(ctx, query, stepID), stepID)
}

// FindStepByIDForUpdate retrieves a step inside tx with its row locked.
func (r *PgxExpenseRepository) FindStepByIDForUpdate(ctx context.Context, tx pgx.Tx, stepID string) (*domain.ApprovalStep, error) {
	query := `SELECT ` + stepColumns + ` FROM approval_steps WHERE step_id = $1 FOR UPDATE;`
	return r.scanStepRow(tx.QueryRow(ctx, query, stepID), stepID)
}

func (r *PgxExpenseRepository) scanStepRow(row pgx.Row, stepID string) (*domain.ApprovalStep, error) {
	var m models.ApprovalStep
	err := row.Scan(
		&m.StepID,
		&m.ExpenseID,
		&m.ApproverID,
		&m.Sequence,
		&m.Decision,
		&m.Comments,
		&m.DecidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approval step by ID %s: %w", stepID, err)
	}
	step := mapping.ToDomainApprovalStep(m)
	return &step, nil
}

// ListStepsByExpenseID retrieves all steps of an expense ordered by sequence.
func (r *PgxExpenseRepository) ListStepsByExpenseID(ctx context.Context, expenseID string) ([]domain.ApprovalStep, error) {
	query := `SELECT ` + stepColumns + ` FROM approval_steps WHERE expense_id = $1 ORDER BY sequence ASC;`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps for expense %s: %w", expenseID, err)
	}
	defer rows.Close()
	return r.scanSteps(rows)
}

// ListStepsByExpenseIDInTx retrieves all steps of an expense inside tx; used
// during status recomputation while the expense row is locked.
func (r *PgxExpenseRepository) ListStepsByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.ApprovalStep, error) {
	query := `SELECT ` + stepColumns + ` FROM approval_steps WHERE expense_id = $1 ORDER BY sequence ASC;`
	rows, err := tx.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps for expense %s: %w", expenseID, err)
	}
	defer rows.Close()
	return r.scanSteps(rows)
}

// ListPendingStepsByApprover retrieves an approver's undecided steps, newest
// first.
func (r *PgxExpenseRepository) ListPendingStepsByApprover(ctx context.Context, approverID string) ([]domain.ApprovalStep, error) {
	query := `
		SELECT ` + stepColumns + `
		FROM approval_steps
		WHERE approver_id = $1 AND decision = $2
		ORDER BY created_at DESC, step_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, approverID, string(domain.DecisionPending))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending steps for approver %s: %w", approverID, err)
	}
	defer rows.Close()
	return r.scanSteps(rows)
}

func (r *PgxExpenseRepository) scanSteps(rows pgx.Rows) ([]domain.ApprovalStep, error) {
	var modelSteps []models.ApprovalStep
	for rows.Next() {
		var m models.ApprovalStep
		err := rows.Scan(
			&m.StepID,
			&m.ExpenseID,
			&m.ApproverID,
			&m.Sequence,
			&m.Decision,
			&m.Comments,
			&m.DecidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval step row: %w", err)
		}
		modelSteps = append(modelSteps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval step rows: %w", err)
	}
	return mapping.ToDomainApprovalStepSlice(modelSteps), nil
}

// UpdateStepDecision writes a step's decision, comments and decision time
// inside tx. Only PENDING rows are updated; a decided step stays as written.
func (r *PgxExpenseRepository) UpdateStepDecision(ctx context.Context, tx pgx.Tx, step domain.ApprovalStep) error {
	modelStep := mapping.ToModelApprovalStep(step)
	query := `
		UPDATE approval_steps
		SET decision = $2, comments = $3, decided_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE step_id = $1 AND decision = $7;
	`
	tag, err := tx.Exec(ctx, query,
		modelStep.StepID,
		modelStep.Decision,
		modelStep.Comments,
		modelStep.DecidedAt,
		modelStep.LastUpdatedAt,
		modelStep.LastUpdatedBy,
		string(domain.DecisionPending),
	)
	if err != nil {
		return fmt.Errorf("failed to update decision of step %s: %w", modelStep.StepID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: approval step has already been processed", apperrors.ErrConflict)
	}
	return nil
}
