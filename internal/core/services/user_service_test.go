package services_test

import (
	"context"
	"testing"

	"github.com/pageturn/library_backend/internal/apperrors"
	"github.com/pageturn/library_backend/internal/core/domain"
	portsrepo "github.com/pageturn/library_backend/internal/core/ports/repositories"
	portssvc "github.com/pageturn/library_backend/internal/core/ports/services"
	"github.com/pageturn/library_backend/internal/core/services"
	"github.com/pageturn/library_backend/internal/dto"
	"github.com/pageturn/library_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "reader",
		Password: "correct horse battery staple",
		Name:     "Avid Reader",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, req.Username).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == req.Username &&
			u.Name == req.Name &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash) &&
			!u.IsAdmin
	})).Return(&domain.User{UserID: 1, Username: req.Username, Name: req.Name}, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal(int64(1), user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "reader", Password: "some password"}

	suite.mockRepo.On("FindUserByUsername", ctx, req.Username).
		Return(&domain.User{UserID: 1, Username: req.Username}, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correct horse battery staple"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	stored := &domain.User{UserID: 1, Username: "reader", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", ctx, "reader").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "reader", password)

	suite.Require().NoError(err)
	suite.Equal(stored, user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: 1, Username: "reader", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", ctx, "reader").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "reader", "a wrong guess")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
