package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/core/services"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// --- Test Suite Setup ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockRuleRepo    *MockRuleRepository
	mockUserRepo    *MockUserRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.ExpenseSvcFacade

	companyID string
	userID    string
	managerID string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewExpenseService(suite.mockExpenseRepo, suite.mockRuleRepo, suite.mockUserRepo, suite.mockCompanyRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.managerID = uuid.NewString()
}

func (suite *ExpenseServiceTestSuite) submitter() *domain.User {
	return &domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleEmployee,
		ManagerID: &suite.managerID,
	}
}

func (suite *ExpenseServiceTestSuite) company(managerApprover bool) *domain.Company {
	return &domain.Company{
		CompanyID:           suite.companyID,
		Name:                "Acme Corp",
		Country:             "United States",
		DefaultCurrencyCode: "USD",
		IsManagerApprover:   managerApprover,
	}
}

func submitRequest(amount string) dto.SubmitExpenseRequest {
	return dto.SubmitExpenseRequest{
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "USD",
		Category:     "Travel",
		Description:  "Client visit",
		ExpenseDate:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_BuildsPendingStepChain() {
	cfoID := uuid.NewString()
	rules := []domain.ApprovalRule{
		{RuleID: uuid.NewString(), CompanyID: suite.companyID, RuleType: domain.RuleTypeSpecificApprover, SpecificApproverID: &cfoID, Sequence: 1, Active: true},
	}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.submitter(), nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, suite.companyID).Return(suite.company(true), nil).Once()
	suite.mockRuleRepo.On("ListActiveRulesByCompany", mock.Anything, suite.companyID).Return(rules, nil).Once()

	var savedExpense domain.Expense
	var savedSteps []domain.ApprovalStep
	suite.mockExpenseRepo.On("SaveExpenseWithSteps", mock.Anything, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.ApprovalStep")).
		Run(func(args mock.Arguments) {
			savedExpense = args.Get(1).(domain.Expense)
			savedSteps = args.Get(2).([]domain.ApprovalStep)
		}).Return(nil).Once()

	expense, err := suite.service.SubmitExpense(context.Background(), submitRequest("250.00"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpensePending, expense.Status)
	suite.Equal(domain.ExpensePending, savedExpense.Status)

	// Manager first (company flag on), then the rule approver, numbered 1..N.
	suite.Require().Len(savedSteps, 2)
	suite.Equal(suite.managerID, savedSteps[0].ApproverID)
	suite.Equal(1, savedSteps[0].Sequence)
	suite.Equal(cfoID, savedSteps[1].ApproverID)
	suite.Equal(2, savedSteps[1].Sequence)
	for _, step := range savedSteps {
		suite.Equal(domain.DecisionPending, step.Decision)
		suite.Equal(expense.ExpenseID, step.ExpenseID)
	}
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NoApproversAutoApproves() {
	submitter := suite.submitter()
	submitter.ManagerID = nil

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(submitter, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, suite.companyID).Return(suite.company(false), nil).Once()
	suite.mockRuleRepo.On("ListActiveRulesByCompany", mock.Anything, suite.companyID).Return([]domain.ApprovalRule{}, nil).Once()

	var savedSteps []domain.ApprovalStep
	suite.mockExpenseRepo.On("SaveExpenseWithSteps", mock.Anything, mock.AnythingOfType("domain.Expense"), mock.AnythingOfType("[]domain.ApprovalStep")).
		Run(func(args mock.Arguments) {
			savedSteps = args.Get(2).([]domain.ApprovalStep)
		}).Return(nil).Once()

	expense, err := suite.service.SubmitExpense(context.Background(), submitRequest("42.00"), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseApproved, expense.Status)
	suite.Empty(savedSteps)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_RejectsNonPositiveAmount() {
	for _, amount := range []string{"0", "-10.50"} {
		_, err := suite.service.SubmitExpense(context.Background(), submitRequest(amount), suite.userID)
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_CrossCompanyLooksLikeNotFound() {
	expense := &domain.Expense{
		ExpenseID: uuid.NewString(),
		CompanyID: uuid.NewString(), // Different company than the actor's.
		UserID:    uuid.NewString(),
		Status:    domain.ExpensePending,
	}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.submitter(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	_, err := suite.service.GetExpenseByID(context.Background(), expense.ExpenseID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestGetExpenseByID_SameCompany() {
	expense := &domain.Expense{
		ExpenseID: uuid.NewString(),
		CompanyID: suite.companyID,
		UserID:    uuid.NewString(),
		Status:    domain.ExpenseApproved,
	}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.submitter(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", mock.Anything, expense.ExpenseID).Return(expense, nil).Once()

	got, err := suite.service.GetExpenseByID(context.Background(), expense.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(expense.ExpenseID, got.ExpenseID)
}

func (suite *ExpenseServiceTestSuite) TestListUserExpenses_DefaultsLimitAndPassesToken() {
	token := "b3BhcXVl"
	nextToken := "bmV4dA"
	suite.mockExpenseRepo.On("ListExpensesByUser", mock.Anything, suite.userID, 20, &token).
		Return([]domain.Expense{{ExpenseID: uuid.NewString(), Amount: decimal.RequireFromString("10")}}, &nextToken, nil).Once()

	resp, err := suite.service.ListUserExpenses(context.Background(), suite.userID, dto.ListExpensesParams{NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(resp.Expenses, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
}

func (suite *ExpenseServiceTestSuite) TestListUserExpensesByStatus_RejectsUnknownStatus() {
	_, err := suite.service.ListUserExpensesByStatus(context.Background(), suite.userID, "SHIPPED")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpensesByUserAndStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListPendingCompanyExpenses_EmployeeForbidden() {
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(suite.submitter(), nil).Once()

	_, err := suite.service.ListPendingCompanyExpenses(context.Background(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListPendingExpensesByCompany", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListPendingCompanyExpenses_ManagerAllowed() {
	manager := suite.submitter()
	manager.Role = domain.RoleManager

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.userID).Return(manager, nil).Once()
	suite.mockExpenseRepo.On("ListPendingExpensesByCompany", mock.Anything, suite.companyID).
		Return([]domain.Expense{}, nil).Once()

	got, err := suite.service.ListPendingCompanyExpenses(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.Empty(got)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
