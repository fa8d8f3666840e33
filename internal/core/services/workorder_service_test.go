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

type WorkOrderServiceTestSuite struct {
	suite.Suite
	mockWorkOrderRepo *MockWorkOrderRepository
	mockQuoteRepo     *MockQuoteRepository
	mockCustomerRepo  *MockCustomerRepository
	mockCompanyRepo   *MockCompanyRepository
	mockUserRepo      *MockUserRepository
	mockAuditRepo     *MockAuditLogRepository
	service           portssvc.WorkOrderSvcFacade

	companyID string
	userID    string
	company   domain.Company
	manager   domain.User
	customer  domain.Customer
}

func (suite *WorkOrderServiceTestSuite) SetupTest() {
	suite.mockWorkOrderRepo = new(MockWorkOrderRepository)
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewWorkOrderService(suite.mockWorkOrderRepo, suite.mockQuoteRepo, suite.mockCustomerRepo, suite.mockCompanyRepo, suite.mockUserRepo, audit)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.company = domain.Company{
		CompanyID:       suite.companyID,
		QuotePrefix:     "O",
		WorkOrderPrefix: "W",
		InvoicePrefix:   "F",
		DefaultVATRate:  decimal.RequireFromString("21.00"),
	}
	suite.manager = domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleManager,
		IsActive:  true,
	}
	suite.customer = domain.Customer{
		CustomerID:   uuid.NewString(),
		CompanyID:    suite.companyID,
		PaymentTerms: 30,
		IsActive:     true,
	}

	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *WorkOrderServiceTestSuite) TestCreateWorkOrderFromQuote_Success() {
	ctx := context.Background()
	quote := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0001",
		CustomerID:  suite.customer.CustomerID,
		Title:       "Boiler replacement",
		Status:      domain.QuoteAccepted,
		Lines: []domain.QuoteLine{
			{LineID: uuid.NewString(), QuoteID: "q", Description: "Boiler", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VATRate: decimal.RequireFromString("21.00"), LineTotal: decimal.NewFromInt(100)},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, quote.QuoteID).Return(&quote, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockWorkOrderRepo.On("SaveWorkOrder", ctx, mock.AnythingOfType("*domain.WorkOrder"), "W").Run(func(args mock.Arguments) {
		wo := args.Get(1).(*domain.WorkOrder)
		wo.WorkOrderNumber = "W2026-0001"
	}).Return(nil).Once()

	order, err := suite.service.CreateWorkOrderFromQuote(ctx, suite.companyID, quote.QuoteID, dto.ConvertQuoteRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WorkOrderPlanned, order.Status)
	suite.Require().NotNil(order.QuoteID)
	suite.Equal(quote.QuoteID, *order.QuoteID)
	suite.Equal(quote.CustomerID, order.CustomerID)
	suite.Equal(quote.Title, order.Title)
	suite.Require().Len(order.Lines, 1)
	suite.NotEqual(quote.Lines[0].LineID, order.Lines[0].LineID)
	suite.Equal(order.WorkOrderID, order.Lines[0].WorkOrderID)
	suite.True(order.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal was %s", order.Subtotal)
	suite.True(order.TotalAmount.Equal(decimal.RequireFromString("121.00")), "total was %s", order.TotalAmount)
	suite.mockWorkOrderRepo.AssertExpectations(suite.T())
}

func (suite *WorkOrderServiceTestSuite) TestCreateWorkOrderFromQuote_NotAccepted() {
	ctx := context.Background()
	quote := domain.Quote{
		QuoteID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		QuoteNumber: "O2026-0002",
		Status:      domain.QuoteSent,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, quote.QuoteID).Return(&quote, nil).Once()

	_, err := suite.service.CreateWorkOrderFromQuote(ctx, suite.companyID, quote.QuoteID, dto.ConvertQuoteRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockWorkOrderRepo.AssertNotCalled(suite.T(), "SaveWorkOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkOrderServiceTestSuite) TestUpdateWorkOrderStatus_InvoicedReserved() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()

	_, err := suite.service.UpdateWorkOrderStatus(ctx, suite.companyID, uuid.NewString(), domain.WorkOrderInvoiced, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockWorkOrderRepo.AssertNotCalled(suite.T(), "UpdateWorkOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkOrderServiceTestSuite) TestUpdateWorkOrderStatus_PlannedStraightToCompleted() {
	ctx := context.Background()
	order := domain.WorkOrder{
		WorkOrderID:     uuid.NewString(),
		CompanyID:       suite.companyID,
		WorkOrderNumber: "W2026-0002",
		Status:          domain.WorkOrderPlanned,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, order.WorkOrderID).Return(&order, nil).Once()
	suite.mockWorkOrderRepo.On("UpdateWorkOrderStatus", ctx, suite.companyID, order.WorkOrderID, domain.WorkOrderCompleted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateWorkOrderStatus(ctx, suite.companyID, order.WorkOrderID, domain.WorkOrderCompleted, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WorkOrderCompleted, updated.Status)
	suite.mockWorkOrderRepo.AssertExpectations(suite.T())
}

func (suite *WorkOrderServiceTestSuite) TestCreateTimeEntry_RecomputesTotals() {
	ctx := context.Background()
	order := domain.WorkOrder{
		WorkOrderID:     uuid.NewString(),
		CompanyID:       suite.companyID,
		WorkOrderNumber: "W2026-0003",
		Status:          domain.WorkOrderInProgress,
		Lines: []domain.WorkOrderLine{
			{LineID: uuid.NewString(), Description: "Parts", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VATRate: decimal.RequireFromString("21.00"), LineTotal: decimal.NewFromInt(100)},
		},
	}
	req := dto.CreateTimeEntryRequest{
		Hours:      decimal.NewFromInt(2),
		HourlyRate: decimal.NewFromInt(25),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, order.WorkOrderID).Return(&order, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()

	var savedOrder domain.WorkOrder
	suite.mockWorkOrderRepo.On("SaveTimeEntry", ctx, mock.AnythingOfType("domain.TimeEntry"), mock.AnythingOfType("domain.WorkOrder")).Run(func(args mock.Arguments) {
		savedOrder = args.Get(2).(domain.WorkOrder)
	}).Return(nil).Once()

	entry, err := suite.service.CreateTimeEntry(ctx, suite.companyID, order.WorkOrderID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.Billable)
	suite.Equal(suite.userID, entry.UserID)
	suite.True(entry.VATRate.Equal(suite.company.DefaultVATRate))
	// 100 material + 2h x 25 = 150 net, 31.50 VAT
	suite.True(savedOrder.Subtotal.Equal(decimal.RequireFromString("150.00")), "subtotal was %s", savedOrder.Subtotal)
	suite.True(savedOrder.VATAmount.Equal(decimal.RequireFromString("31.50")), "vat was %s", savedOrder.VATAmount)
	suite.True(savedOrder.TotalAmount.Equal(decimal.RequireFromString("181.50")), "total was %s", savedOrder.TotalAmount)
	suite.mockWorkOrderRepo.AssertExpectations(suite.T())
}

func (suite *WorkOrderServiceTestSuite) TestCreateTimeEntry_InvoicedFrozen() {
	ctx := context.Background()
	order := domain.WorkOrder{
		WorkOrderID:     uuid.NewString(),
		CompanyID:       suite.companyID,
		WorkOrderNumber: "W2026-0004",
		Status:          domain.WorkOrderInvoiced,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, order.WorkOrderID).Return(&order, nil).Once()

	_, err := suite.service.CreateTimeEntry(ctx, suite.companyID, order.WorkOrderID, dto.CreateTimeEntryRequest{Hours: decimal.NewFromInt(1), HourlyRate: decimal.NewFromInt(50)}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockWorkOrderRepo.AssertNotCalled(suite.T(), "SaveTimeEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkOrderServiceTestSuite) TestDeleteTimeEntry_RecomputesTotals() {
	ctx := context.Background()
	orderID := uuid.NewString()
	entry := domain.TimeEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		WorkOrderID: orderID,
		Hours:       decimal.NewFromInt(2),
		HourlyRate:  decimal.NewFromInt(25),
		Billable:    true,
		VATRate:     decimal.RequireFromString("21.00"),
	}
	order := domain.WorkOrder{
		WorkOrderID:     orderID,
		CompanyID:       suite.companyID,
		WorkOrderNumber: "W2026-0005",
		Status:          domain.WorkOrderInProgress,
		TimeEntries:     []domain.TimeEntry{entry},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.manager, nil).Once()
	suite.mockWorkOrderRepo.On("FindTimeEntryByID", ctx, suite.companyID, entry.EntryID).Return(&entry, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderID).Return(&order, nil).Once()

	var savedOrder domain.WorkOrder
	suite.mockWorkOrderRepo.On("DeleteTimeEntry", ctx, suite.companyID, entry.EntryID, mock.AnythingOfType("domain.WorkOrder")).Run(func(args mock.Arguments) {
		savedOrder = args.Get(3).(domain.WorkOrder)
	}).Return(nil).Once()

	err := suite.service.DeleteTimeEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.True(savedOrder.Subtotal.IsZero(), "subtotal was %s", savedOrder.Subtotal)
	suite.True(savedOrder.TotalAmount.IsZero(), "total was %s", savedOrder.TotalAmount)
	suite.mockWorkOrderRepo.AssertExpectations(suite.T())
}

func (suite *WorkOrderServiceTestSuite) TestGetWorkOrderByID_ForeignCompanyHidden() {
	ctx := context.Background()
	foreign := domain.WorkOrder{
		WorkOrderID: uuid.NewString(),
		CompanyID:   uuid.NewString(),
		Status:      domain.WorkOrderPlanned,
	}

	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, foreign.WorkOrderID).Return(&foreign, nil).Once()

	_, err := suite.service.GetWorkOrderByID(ctx, suite.companyID, foreign.WorkOrderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestWorkOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderServiceTestSuite))
}
