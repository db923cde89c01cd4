package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/teaminfinity/expense_management/internal/core/domain"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, companyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CountUsersByCompany(ctx context.Context, companyID string) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiryTime)
	return args.Error(0)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockRuleRepository is a mock type for the ApprovalRuleRepositoryFacade interface
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRule), args.Error(1)
}

func (m *MockRuleRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}

func (m *MockRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRule), args.Error(1)
}

func (m *MockRuleRepository) UpdateRule(ctx context.Context, rule domain.ApprovalRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// MockExpenseRepository is a mock type for the ExpenseRepositoryWithTx
// interface. Transaction methods return a nil pgx.Tx; the mocked repository
// methods ignore the tx argument.
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockExpenseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExpenseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExpenseRepository) SaveExpenseWithSteps(ctx context.Context, expense domain.Expense, steps []domain.ApprovalStep) error {
	args := m.Called(ctx, expense, steps)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpenseStatus(ctx context.Context, tx pgx.Tx, expenseID string, status domain.ExpenseStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, expenseID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListExpensesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return expenses, token, args.Error(2)
}

func (m *MockExpenseRepository) ListExpensesByUserAndStatus(ctx context.Context, userID string, status domain.ExpenseStatus) ([]domain.Expense, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListPendingExpensesByCompany(ctx context.Context, companyID string) ([]domain.Expense, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindStepByID(ctx context.Context, stepID string) (*domain.ApprovalStep, error) {
	args := m.Called(ctx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalStep), args.Error(1)
}

func (m *MockExpenseRepository) FindStepByIDForUpdate(ctx context.Context, tx pgx.Tx, stepID string) (*domain.ApprovalStep, error) {
	args := m.Called(ctx, tx, stepID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalStep), args.Error(1)
}

func (m *MockExpenseRepository) ListStepsByExpenseID(ctx context.Context, expenseID string) ([]domain.ApprovalStep, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStep), args.Error(1)
}

func (m *MockExpenseRepository) ListStepsByExpenseIDInTx(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.ApprovalStep, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStep), args.Error(1)
}

func (m *MockExpenseRepository) ListPendingStepsByApprover(ctx context.Context, approverID string) ([]domain.ApprovalStep, error) {
	args := m.Called(ctx, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalStep), args.Error(1)
}

func (m *MockExpenseRepository) UpdateStepDecision(ctx context.Context, tx pgx.Tx, step domain.ApprovalStep) error {
	args := m.Called(ctx, tx, step)
	return args.Error(0)
}
