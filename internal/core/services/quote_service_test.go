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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QuoteServiceTestSuite struct {
	suite.Suite
	mockQuoteRepo    *MockQuoteRepository
	mockCustomerRepo *MockCustomerRepository
	mockCompanyRepo  *MockCompanyRepository
	mockUserRepo     *MockUserRepository
	mockAuditRepo    *MockAuditLogRepository
	service          portssvc.QuoteSvcFacade

	companyID string
	userID    string
	company   domain.Company
	manager   domain.User
	customer  domain.Customer
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewQuoteService(suite.mockQuoteRepo, suite.mockCustomerRepo, suite.mockCompanyRepo, suite.mockUserRepo, audit, 30)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.company = domain.Company{
		CompanyID:       suite.companyID,
		Name:            "Jansen Installatie BV",
		QuotePrefix:     "O",
		WorkOrderPrefix: "W",
		InvoicePrefix:   "F",
		DefaultVATRate:  decimal.RequireFromString("21.00"),
	}
	suite.manager = domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Username:  "manager",
		Role:      domain.RoleManager,
		IsActive:  true,
	}
	suite.customer = domain.Customer{
		CustomerID:   uuid.NewString(),
		CompanyID:    suite.companyID,
		CompanyName:  "Bakkerij de Vries",
		PaymentTerms: 30,
		IsActive:     true,
	}

	// Audit failures never surface, so individual tests don't assert on it.
	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_Success() {
	ctx := context.Background()
	req := dto.CreateQuoteRequest{
		CustomerID: suite.customer.CustomerID,
		Title:      "Boiler replacement",
		Lines: []dto.QuoteLineRequest{
			{Description: "Boiler", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			{Description: "Installation", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("*domain.Quote"), "O").Run(func(args mock.Arguments) {
		q := args.Get(1).(*domain.Quote)
		q.QuoteNumber = "O2026-0001"
	}).Return(nil).Once()

	created, err := suite.service.CreateQuote(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("O2026-0001", created.QuoteNumber)
	suite.Equal(domain.QuoteDraft, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Len(created.Lines, 2)
	suite.True(created.Subtotal.Equal(decimal.RequireFromString("150.00")), "subtotal was %s", created.Subtotal)
	suite.True(created.VATAmount.Equal(decimal.RequireFromString("31.50")), "vat was %s", created.VATAmount)
	suite.True(created.TotalAmount.Equal(decimal.RequireFromString("181.50")), "total was %s", created.TotalAmount)
	suite.True(created.Lines[0].VATRate.Equal(suite.company.DefaultVATRate))

	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_TechnicianForbidden() {
	ctx := context.Background()
	technician := suite.manager
	technician.Role = domain.RoleTechnician
	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&technician, nil).Once()

	_, err := suite.service.CreateQuote(ctx, suite.companyID, dto.CreateQuoteRequest{CustomerID: suite.customer.CustomerID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_InactiveCustomer() {
	ctx := context.Background()
	inactive := suite.customer
	inactive.IsActive = false

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, inactive.CustomerID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateQuote(ctx, suite.companyID, dto.CreateQuoteRequest{CustomerID: inactive.CustomerID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestCreateQuote_NonPositiveQuantity() {
	ctx := context.Background()
	req := dto.CreateQuoteRequest{
		CustomerID: suite.customer.CustomerID,
		Lines: []dto.QuoteLineRequest{
			{Description: "Nothing", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()

	_, err := suite.service.CreateQuote(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveQuote", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestGetQuoteByID_NotFoundPassthrough() {
	ctx := context.Background()
	quoteID := uuid.NewString()

	// A quote belonging to another company surfaces as not found.
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, quoteID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetQuoteByID(ctx, suite.companyID, quoteID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *QuoteServiceTestSuite) TestGetQuoteByID_ForeignCompanyHidden() {
	ctx := context.Background()
	foreign := domain.Quote{
		QuoteID:   uuid.NewString(),
		CompanyID: uuid.NewString(),
		Status:    domain.QuoteDraft,
	}

	// Even if the repository hands back a row owned by another company, the
	// service hides it as not found.
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, foreign.QuoteID).Return(&foreign, nil).Once()

	_, err := suite.service.GetQuoteByID(ctx, suite.companyID, foreign.QuoteID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *QuoteServiceTestSuite) TestUpdateQuote_SentIsFrozen() {
	ctx := context.Background()
	sent := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0007",
		CustomerID:  suite.customer.CustomerID,
		Status:      domain.QuoteSent,
	}
	newTitle := "Changed"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, sent.QuoteID).Return(&sent, nil).Once()

	_, err := suite.service.UpdateQuote(ctx, suite.companyID, sent.QuoteID, dto.UpdateQuoteRequest{Title: &newTitle}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "UpdateQuote", mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestUpdateQuoteStatus_DraftToAcceptedRejected() {
	ctx := context.Background()
	draft := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0002",
		Status:      domain.QuoteDraft,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, draft.QuoteID).Return(&draft, nil).Once()

	_, err := suite.service.UpdateQuoteStatus(ctx, suite.companyID, draft.QuoteID, domain.QuoteAccepted, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "UpdateQuoteStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QuoteServiceTestSuite) TestUpdateQuoteStatus_UnknownStatus() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()

	_, err := suite.service.UpdateQuoteStatus(ctx, suite.companyID, uuid.NewString(), domain.QuoteStatus("archived"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *QuoteServiceTestSuite) TestUpdateQuoteStatus_SentToAccepted() {
	ctx := context.Background()
	sent := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0003",
		Status:      domain.QuoteSent,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, sent.QuoteID).Return(&sent, nil).Once()
	suite.mockQuoteRepo.On("UpdateQuoteStatus", ctx, suite.companyID, sent.QuoteID, domain.QuoteAccepted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateQuoteStatus(ctx, suite.companyID, sent.QuoteID, domain.QuoteAccepted, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteAccepted, updated.Status)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestDuplicateQuote_FreshIdentity() {
	ctx := context.Background()
	source := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0004",
		CustomerID:  suite.customer.CustomerID,
		Status:      domain.QuoteRejected,
		Lines: []domain.QuoteLine{
			{LineID: uuid.NewString(), Description: "Boiler", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VATRate: decimal.RequireFromString("21.00"), LineTotal: decimal.NewFromInt(100)},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, source.QuoteID).Return(&source, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("*domain.Quote"), "O").Run(func(args mock.Arguments) {
		q := args.Get(1).(*domain.Quote)
		q.QuoteNumber = "O2026-0005"
	}).Return(nil).Once()

	dup, err := suite.service.DuplicateQuote(ctx, suite.companyID, source.QuoteID, suite.userID)

	suite.Require().NoError(err)
	suite.NotEqual(source.QuoteID, dup.QuoteID)
	suite.NotEqual(source.QuoteNumber, dup.QuoteNumber)
	suite.Equal(domain.QuoteDraft, dup.Status)
	suite.Require().Len(dup.Lines, 1)
	suite.NotEqual(source.Lines[0].LineID, dup.Lines[0].LineID)
	suite.Equal(dup.QuoteID, dup.Lines[0].QuoteID)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestExpireQuotes_ReturnsAffectedCount() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("MarkExpiredQuotes", ctx, suite.companyID, asOf, suite.userID).Return(int64(3), nil).Once()

	count, err := suite.service.ExpireQuotes(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func TestQuoteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}
