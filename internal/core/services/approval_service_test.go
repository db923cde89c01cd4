package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/core/services"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// --- Test Suite Setup ---

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.ApprovalSvcFacade

	expenseID  string
	stepID     string
	approverID string
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewApprovalService(suite.mockExpenseRepo, suite.mockUserRepo)

	suite.expenseID = uuid.NewString()
	suite.stepID = uuid.NewString()
	suite.approverID = uuid.NewString()
}

func (suite *ApprovalServiceTestSuite) pendingStep() *domain.ApprovalStep {
	return &domain.ApprovalStep{
		StepID:     suite.stepID,
		ExpenseID:  suite.expenseID,
		ApproverID: suite.approverID,
		Sequence:   1,
		Decision:   domain.DecisionPending,
	}
}

func (suite *ApprovalServiceTestSuite) pendingExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID: suite.expenseID,
		CompanyID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Status:    domain.ExpensePending,
	}
}

// expectTx sets up the Begin/Rollback pair every ProcessDecision call makes.
func (suite *ApprovalServiceTestSuite) expectTx() {
	suite.mockExpenseRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockExpenseRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- Test Cases ---

func (suite *ApprovalServiceTestSuite) TestProcessDecision_InvalidDecisionValue() {
	req := dto.ApprovalDecisionRequest{Decision: "MAYBE"}

	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_StepNotFound() {
	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(nil, apperrors.ErrNotFound).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionApproved}
	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateStepDecision", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_NotAssignedApprover() {
	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(suite.pendingStep(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(suite.pendingExpense(), nil).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionApproved}
	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, "someone-else")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateStepDecision", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_StepAlreadyDecided() {
	decidedStep := suite.pendingStep()
	decidedStep.Decision = domain.DecisionApproved
	decidedAt := time.Now().UTC()
	decidedStep.DecidedAt = &decidedAt

	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(decidedStep, nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(suite.pendingExpense(), nil).Once()

	// Attempting to flip an APPROVED step to REJECTED must conflict.
	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionRejected}
	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateStepDecision", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_ApproveNonFinalStepKeepsExpensePending() {
	otherStep := domain.ApprovalStep{
		StepID:     uuid.NewString(),
		ExpenseID:  suite.expenseID,
		ApproverID: uuid.NewString(),
		Sequence:   2,
		Decision:   domain.DecisionPending,
	}

	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(suite.pendingStep(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(suite.pendingExpense(), nil).Once()
	suite.mockExpenseRepo.On("UpdateStepDecision", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ApprovalStep")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("ListStepsByExpenseIDInTx", mock.Anything, mock.Anything, suite.expenseID).
		Return([]domain.ApprovalStep{
			{StepID: suite.stepID, ExpenseID: suite.expenseID, ApproverID: suite.approverID, Sequence: 1, Decision: domain.DecisionApproved},
			otherStep,
		}, nil).Once()
	suite.mockExpenseRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionApproved}
	step, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.DecisionApproved, step.Decision)
	suite.NotNil(step.DecidedAt)
	// One sibling is still pending, so the expense status must not change.
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_FinalApprovalApprovesExpense() {
	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(suite.pendingStep(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(suite.pendingExpense(), nil).Once()
	suite.mockExpenseRepo.On("UpdateStepDecision", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ApprovalStep")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("ListStepsByExpenseIDInTx", mock.Anything, mock.Anything, suite.expenseID).
		Return([]domain.ApprovalStep{
			{StepID: suite.stepID, ExpenseID: suite.expenseID, ApproverID: suite.approverID, Sequence: 1, Decision: domain.DecisionApproved},
			{StepID: uuid.NewString(), ExpenseID: suite.expenseID, Sequence: 2, Decision: domain.DecisionApproved},
		}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseStatus",
		mock.Anything, mock.Anything, suite.expenseID, domain.ExpenseApproved, suite.approverID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionApproved}
	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_RejectionRejectsExpenseImmediately() {
	comments := "missing receipt"

	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(suite.pendingStep(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(suite.pendingExpense(), nil).Once()
	suite.mockExpenseRepo.On("UpdateStepDecision", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ApprovalStep")).
		Return(nil).Once()
	// Sibling steps are still pending, the rejection dominates anyway.
	suite.mockExpenseRepo.On("ListStepsByExpenseIDInTx", mock.Anything, mock.Anything, suite.expenseID).
		Return([]domain.ApprovalStep{
			{StepID: suite.stepID, ExpenseID: suite.expenseID, ApproverID: suite.approverID, Sequence: 1, Decision: domain.DecisionRejected},
			{StepID: uuid.NewString(), ExpenseID: suite.expenseID, Sequence: 2, Decision: domain.DecisionPending},
		}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseStatus",
		mock.Anything, mock.Anything, suite.expenseID, domain.ExpenseRejected, suite.approverID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionRejected, Comments: &comments}
	step, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().NoError(err)
	suite.Equal(domain.DecisionRejected, step.Decision)
	suite.Equal(&comments, step.Comments)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestProcessDecision_TerminalExpenseStatusNotReverted() {
	// Expense already REJECTED by a sibling; a remaining pending step gets
	// approved afterwards. The step records its decision but the expense
	// status must stay as it is.
	rejectedExpense := suite.pendingExpense()
	rejectedExpense.Status = domain.ExpenseRejected

	suite.expectTx()
	suite.mockExpenseRepo.On("FindStepByIDForUpdate", mock.Anything, mock.Anything, suite.stepID).
		Return(suite.pendingStep(), nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByIDForUpdate", mock.Anything, mock.Anything, suite.expenseID).
		Return(rejectedExpense, nil).Once()
	suite.mockExpenseRepo.On("UpdateStepDecision", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ApprovalStep")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("ListStepsByExpenseIDInTx", mock.Anything, mock.Anything, suite.expenseID).
		Return([]domain.ApprovalStep{
			{StepID: suite.stepID, ExpenseID: suite.expenseID, ApproverID: suite.approverID, Sequence: 1, Decision: domain.DecisionApproved},
			{StepID: uuid.NewString(), ExpenseID: suite.expenseID, Sequence: 2, Decision: domain.DecisionRejected},
		}, nil).Once()
	suite.mockExpenseRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.ApprovalDecisionRequest{Decision: domain.DecisionApproved}
	_, err := suite.service.ProcessDecision(context.Background(), suite.stepID, req, suite.approverID)

	suite.Require().NoError(err)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "UpdateExpenseStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestListStepsForExpense_CrossCompanyLooksLikeNotFound() {
	actor := &domain.User{UserID: suite.approverID, CompanyID: "company-a", Role: domain.RoleEmployee}
	expense := suite.pendingExpense()
	expense.CompanyID = "company-b"

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.approverID).Return(actor, nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", mock.Anything, suite.expenseID).Return(expense, nil).Once()

	_, err := suite.service.ListStepsForExpense(context.Background(), suite.expenseID, suite.approverID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListStepsByExpenseID", mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
