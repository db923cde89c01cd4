package services_test

import (
	"context"
	"testing"

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

type RuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo *MockRuleRepository
	mockUserRepo *MockUserRepository
	service      portssvc.ApprovalRuleSvcFacade

	companyID  string
	adminID    string
	approverID string
}

func (suite *RuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockRuleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewApprovalRuleService(suite.mockRuleRepo, suite.mockUserRepo)

	suite.companyID = uuid.NewString()
	suite.adminID = uuid.NewString()
	suite.approverID = uuid.NewString()
}

func (suite *RuleServiceTestSuite) expectAdmin() {
	admin := &domain.User{UserID: suite.adminID, CompanyID: suite.companyID, Role: domain.RoleAdmin}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.adminID).Return(admin, nil).Once()
}

func (suite *RuleServiceTestSuite) expectApprover(companyID string) {
	approver := &domain.User{UserID: suite.approverID, CompanyID: companyID, Role: domain.RoleManager}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.approverID).Return(approver, nil).Once()
}

func ruleDecPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// --- Test Cases ---

func (suite *RuleServiceTestSuite) TestCreateRule_Success() {
	suite.expectAdmin()
	suite.expectApprover(suite.companyID)
	suite.mockRuleRepo.On("SaveRule", mock.Anything, mock.AnythingOfType("domain.ApprovalRule")).Return(nil).Once()

	req := dto.CreateApprovalRuleRequest{
		RuleType:            domain.RuleTypePercentage,
		ThresholdAmount:     ruleDecPtr("1000"),
		ThresholdPercentage: ruleDecPtr("50"),
		SpecificApproverID:  &suite.approverID,
		Sequence:            1,
	}
	rule, err := suite.service.CreateRule(context.Background(), req, suite.adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(rule.RuleID)
	suite.Equal(suite.companyID, rule.CompanyID)
	suite.True(rule.Active, "new rules should start active")
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *RuleServiceTestSuite) TestCreateRule_NonAdminForbidden() {
	employee := &domain.User{UserID: suite.adminID, CompanyID: suite.companyID, Role: domain.RoleEmployee}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.adminID).Return(employee, nil).Once()

	req := dto.CreateApprovalRuleRequest{
		RuleType:           domain.RuleTypeSpecificApprover,
		SpecificApproverID: &suite.approverID,
		Sequence:           1,
	}
	_, err := suite.service.CreateRule(context.Background(), req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestCreateRule_PerTypeFieldValidation() {
	tests := []struct {
		name string
		req  dto.CreateApprovalRuleRequest
	}{
		{
			name: "percentage without thresholds",
			req: dto.CreateApprovalRuleRequest{
				RuleType:           domain.RuleTypePercentage,
				SpecificApproverID: &suite.approverID,
				Sequence:           1,
			},
		},
		{
			name: "percentage above 100",
			req: dto.CreateApprovalRuleRequest{
				RuleType:            domain.RuleTypePercentage,
				ThresholdAmount:     ruleDecPtr("1000"),
				ThresholdPercentage: ruleDecPtr("150"),
				SpecificApproverID:  &suite.approverID,
				Sequence:            1,
			},
		},
		{
			name: "hybrid without threshold amount",
			req: dto.CreateApprovalRuleRequest{
				RuleType:           domain.RuleTypeHybrid,
				SpecificApproverID: &suite.approverID,
				Sequence:           1,
			},
		},
		{
			name: "specific approver without approver",
			req: dto.CreateApprovalRuleRequest{
				RuleType: domain.RuleTypeSpecificApprover,
				Sequence: 1,
			},
		},
		{
			name: "unknown rule type",
			req: dto.CreateApprovalRuleRequest{
				RuleType:           "ROUND_ROBIN",
				SpecificApproverID: &suite.approverID,
				Sequence:           1,
			},
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.expectAdmin()
			_, err := suite.service.CreateRule(context.Background(), tt.req, suite.adminID)
			suite.Require().Error(err)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestCreateRule_ApproverFromOtherCompanyRejected() {
	suite.expectAdmin()
	suite.expectApprover(uuid.NewString())

	req := dto.CreateApprovalRuleRequest{
		RuleType:           domain.RuleTypeSpecificApprover,
		SpecificApproverID: &suite.approverID,
		Sequence:           1,
	}
	_, err := suite.service.CreateRule(context.Background(), req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestUpdateRule_CrossCompanyLooksLikeNotFound() {
	foreignRule := &domain.ApprovalRule{
		RuleID:             uuid.NewString(),
		CompanyID:          uuid.NewString(),
		RuleType:           domain.RuleTypeSpecificApprover,
		SpecificApproverID: &suite.approverID,
		Sequence:           1,
		Active:             true,
	}

	suite.expectAdmin()
	suite.mockRuleRepo.On("FindRuleByID", mock.Anything, foreignRule.RuleID).Return(foreignRule, nil).Once()

	active := false
	_, err := suite.service.UpdateRule(context.Background(), foreignRule.RuleID, dto.UpdateApprovalRuleRequest{Active: &active}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "UpdateRule", mock.Anything, mock.Anything)
}

func (suite *RuleServiceTestSuite) TestUpdateRule_DeactivatesRule() {
	rule := &domain.ApprovalRule{
		RuleID:             uuid.NewString(),
		CompanyID:          suite.companyID,
		RuleType:           domain.RuleTypeSpecificApprover,
		SpecificApproverID: &suite.approverID,
		Sequence:           2,
		Active:             true,
	}

	suite.expectAdmin()
	suite.expectApprover(suite.companyID)
	suite.mockRuleRepo.On("FindRuleByID", mock.Anything, rule.RuleID).Return(rule, nil).Once()

	var updated domain.ApprovalRule
	suite.mockRuleRepo.On("UpdateRule", mock.Anything, mock.AnythingOfType("domain.ApprovalRule")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.ApprovalRule)
		}).Return(nil).Once()

	active := false
	got, err := suite.service.UpdateRule(context.Background(), rule.RuleID, dto.UpdateApprovalRuleRequest{Active: &active}, suite.adminID)

	suite.Require().NoError(err)
	suite.False(got.Active)
	suite.False(updated.Active)
	suite.Equal(2, updated.Sequence, "untouched fields must survive a partial update")
}

func TestRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RuleServiceTestSuite))
}
