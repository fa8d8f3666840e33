package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/core/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/platform/config"
	"github.com/fieldserve/field_service_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockCompanyRepo *MockCompanyRepository
	mockAuditRepo   *MockAuditLogRepository
	service         portssvc.AuthSvcFacade

	passwordHash string
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "field-service-app-test",
	}
	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo, suite.mockCompanyRepo, audit)

	hash, err := utils.HashPassword("correct horse battery staple")
	suite.Require().NoError(err)
	suite.passwordHash = hash

	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *AuthServiceTestSuite) activeUser() domain.User {
	return domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    uuid.NewString(),
		Username:     "jdevries",
		PasswordHash: suite.passwordHash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()
	suite.mockUserRepo.On("MarkLastLogin", ctx, user.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	loggedIn, token, err := suite.service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "correct horse battery staple"})

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.Equal(user.UserID, loggedIn.UserID)
	suite.Require().NotNil(loggedIn.LastLoginAt)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(user.CompanyID, claims.CompanyID)
	suite.Equal(domain.RoleAdmin, claims.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPasswordSameErrorAsUnknownUser() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	_, _, wrongPassErr := suite.service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "wrong"})
	_, _, unknownUserErr := suite.service.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "wrong"})

	suite.Require().Error(wrongPassErr)
	suite.Require().Error(unknownUserErr)
	suite.ErrorIs(wrongPassErr, apperrors.ErrUnauthorized)
	suite.ErrorIs(unknownUserErr, apperrors.ErrUnauthorized)
	// Identical messages keep username probing blind.
	suite.Equal(wrongPassErr.Error(), unknownUserErr.Error())
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser()
	user.IsActive = false

	suite.mockUserRepo.On("FindUserByUsername", ctx, user.Username).Return(&user, nil).Once()

	_, _, err := suite.service.Login(ctx, dto.LoginRequest{Username: user.Username, Password: "correct horse battery staple"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegisterCompany_Success() {
	ctx := context.Background()
	req := dto.RegisterCompanyRequest{
		CompanyName: "Jansen Installatie BV",
		Username:    "pjansen",
		Email:       "p.jansen@example.com",
		Password:    "s3cure-enough",
		FirstName:   "Piet",
		LastName:    "Jansen",
	}

	suite.mockUserRepo.On("FindUserByUsername", ctx, req.Username).Return(nil, apperrors.ErrNotFound).Once()

	var savedCompany domain.Company
	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).Run(func(args mock.Arguments) {
		savedCompany = args.Get(1).(domain.Company)
	}).Return(nil).Once()

	var savedUser domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		savedUser = args.Get(1).(domain.User)
	}).Return(nil).Once()

	company, admin, err := suite.service.RegisterCompany(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("F", company.InvoicePrefix)
	suite.Equal("O", company.QuotePrefix)
	suite.Equal("W", company.WorkOrderPrefix)
	suite.Equal(domain.RoleAdmin, admin.Role)
	suite.True(admin.IsActive)
	suite.Equal(company.CompanyID, admin.CompanyID)
	suite.NotEqual(req.Password, savedUser.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, savedUser.PasswordHash))
	suite.Equal(company.CompanyID, savedCompany.CompanyID)
}

func (suite *AuthServiceTestSuite) TestRegisterCompany_UsernameTaken() {
	ctx := context.Background()
	existing := suite.activeUser()

	suite.mockUserRepo.On("FindUserByUsername", ctx, existing.Username).Return(&existing, nil).Once()

	_, _, err := suite.service.RegisterCompany(ctx, dto.RegisterCompanyRequest{Username: existing.Username})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
