package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/core/services"
	"github.com/teaminfinity/expense_management/internal/dto"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade

	companyID string
	adminID   string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)

	suite.companyID = uuid.NewString()
	suite.adminID = uuid.NewString()
}

func (suite *UserServiceTestSuite) expectActor(role domain.Role) {
	actor := &domain.User{UserID: suite.adminID, CompanyID: suite.companyID, Role: role}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.adminID).Return(actor, nil).Once()
}

func createUserRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:    "new.hire@example.com",
		Password: "s3cret-password",
		FullName: "New Hire",
		Role:     domain.RoleEmployee,
	}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	suite.expectActor(domain.RoleAdmin)
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "new.hire@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.CreateUser(context.Background(), createUserRequest(), suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(suite.companyID, user.CompanyID, "new user joins the admin's company")
	suite.Equal(domain.RoleEmployee, user.Role)
	suite.NotEqual("s3cret-password", saved.PasswordHash, "password must be stored hashed")
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-password")))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminForbidden() {
	suite.expectActor(domain.RoleManager)

	_, err := suite.service.CreateUser(context.Background(), createUserRequest(), suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	suite.expectActor(domain.RoleAdmin)
	existing := &domain.User{UserID: uuid.NewString(), Email: "new.hire@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "new.hire@example.com").
		Return(existing, nil).Once()

	_, err := suite.service.CreateUser(context.Background(), createUserRequest(), suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ManagerFromOtherCompanyRejected() {
	foreignManagerID := uuid.NewString()

	suite.expectActor(domain.RoleAdmin)
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "new.hire@example.com").
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, foreignManagerID).
		Return(&domain.User{UserID: foreignManagerID, CompanyID: uuid.NewString(), Role: domain.RoleManager}, nil).Once()

	req := createUserRequest()
	req.ManagerID = &foreignManagerID
	_, err := suite.service.CreateUser(context.Background(), req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListCompanyUsers_ScopedToActorCompany() {
	suite.expectActor(domain.RoleEmployee)
	suite.mockUserRepo.On("ListUsersByCompany", mock.Anything, suite.companyID).
		Return([]domain.User{{UserID: uuid.NewString(), CompanyID: suite.companyID}}, nil).Once()

	users, err := suite.service.ListCompanyUsers(context.Background(), suite.adminID)

	suite.Require().NoError(err)
	suite.Len(users, 1)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
