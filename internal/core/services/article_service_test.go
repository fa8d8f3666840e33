package services_test

import (
	"context"
	"testing"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/core/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ArticleServiceTestSuite struct {
	suite.Suite
	mockArticleRepo *MockArticleRepository
	mockCompanyRepo *MockCompanyRepository
	mockUserRepo    *MockUserRepository
	mockAuditRepo   *MockAuditLogRepository
	service         portssvc.ArticleSvcFacade

	companyID string
	userID    string
	company   domain.Company
	manager   domain.User
}

func (suite *ArticleServiceTestSuite) SetupTest() {
	suite.mockArticleRepo = new(MockArticleRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewArticleService(suite.mockArticleRepo, suite.mockCompanyRepo, suite.mockUserRepo, audit)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.company = domain.Company{
		CompanyID:      suite.companyID,
		DefaultVATRate: decimal.RequireFromString("21.00"),
	}
	suite.manager = domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleManager,
		IsActive:  true,
	}

	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *ArticleServiceTestSuite) TestCreateArticle_DefaultsVATToCompanyRate() {
	ctx := context.Background()
	req := dto.CreateArticleRequest{
		Code:         "CV-KETEL-24",
		Name:         "CV ketel 24kW",
		Unit:         "piece",
		SellingPrice: decimal.NewFromInt(1200),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockArticleRepo.On("SaveArticle", ctx, mock.AnythingOfType("domain.Article")).Return(nil).Once()

	created, err := suite.service.CreateArticle(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.VATRate.Equal(suite.company.DefaultVATRate))
	suite.True(created.StockQuantity.IsZero())
	suite.True(created.IsActive)
	suite.mockArticleRepo.AssertExpectations(suite.T())
}

func (suite *ArticleServiceTestSuite) TestCreateArticle_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateArticleRequest{
		Code:         "CV-KETEL-24",
		Name:         "CV ketel 24kW",
		SellingPrice: decimal.NewFromInt(1200),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockArticleRepo.On("SaveArticle", ctx, mock.AnythingOfType("domain.Article")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateArticle(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "CV-KETEL-24")
}

func (suite *ArticleServiceTestSuite) TestCreateArticle_SalesForbidden() {
	ctx := context.Background()
	sales := suite.manager
	sales.Role = domain.RoleSales

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&sales, nil).Once()

	_, err := suite.service.CreateArticle(ctx, suite.companyID, dto.CreateArticleRequest{Code: "X", Name: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockArticleRepo.AssertNotCalled(suite.T(), "SaveArticle", mock.Anything, mock.Anything)
}

func (suite *ArticleServiceTestSuite) TestAdjustStock_Success() {
	ctx := context.Background()
	articleID := uuid.NewString()
	delta := decimal.NewFromInt(-3)
	updated := domain.Article{
		ArticleID:     articleID,
		CompanyID:     suite.companyID,
		Code:          "CV-KETEL-24",
		StockQuantity: decimal.NewFromInt(7),
		MinStockLevel: decimal.NewFromInt(2),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockArticleRepo.On("AdjustStock", ctx, suite.companyID, articleID, delta, suite.userID).Return(&updated, nil).Once()

	article, err := suite.service.AdjustStock(ctx, suite.companyID, articleID, dto.AdjustStockRequest{Delta: delta, Reason: "used on job"}, suite.userID)

	suite.Require().NoError(err)
	suite.True(article.StockQuantity.Equal(decimal.NewFromInt(7)))
	suite.mockArticleRepo.AssertExpectations(suite.T())
}

func (suite *ArticleServiceTestSuite) TestAdjustStock_BelowZeroRejected() {
	ctx := context.Background()
	articleID := uuid.NewString()
	delta := decimal.NewFromInt(-10)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockArticleRepo.On("AdjustStock", ctx, suite.companyID, articleID, delta, suite.userID).Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.AdjustStock(ctx, suite.companyID, articleID, dto.AdjustStockRequest{Delta: delta}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "below zero")
}

func (suite *ArticleServiceTestSuite) TestAdjustStock_ZeroDelta() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()

	_, err := suite.service.AdjustStock(ctx, suite.companyID, uuid.NewString(), dto.AdjustStockRequest{Delta: decimal.Zero}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockArticleRepo.AssertNotCalled(suite.T(), "AdjustStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ArticleServiceTestSuite) TestGetArticleByID_ForeignCompanyHidden() {
	ctx := context.Background()
	foreign := domain.Article{
		ArticleID: uuid.NewString(),
		CompanyID: uuid.NewString(),
		IsActive:  true,
	}

	suite.mockArticleRepo.On("FindArticleByID", ctx, suite.companyID, foreign.ArticleID).Return(&foreign, nil).Once()

	_, err := suite.service.GetArticleByID(ctx, suite.companyID, foreign.ArticleID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestArticleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleServiceTestSuite))
}
