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

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo   *MockInvoiceRepository
	mockWorkOrderRepo *MockWorkOrderRepository
	mockCustomerRepo  *MockCustomerRepository
	mockCompanyRepo   *MockCompanyRepository
	mockUserRepo      *MockUserRepository
	mockAuditRepo     *MockAuditLogRepository
	service           portssvc.InvoiceSvcFacade

	companyID string
	userID    string
	company   domain.Company
	financial domain.User
	customer  domain.Customer
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockWorkOrderRepo = new(MockWorkOrderRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewInvoiceService(suite.mockInvoiceRepo, suite.mockWorkOrderRepo, suite.mockCustomerRepo, suite.mockCompanyRepo, suite.mockUserRepo, audit)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.company = domain.Company{
		CompanyID:      suite.companyID,
		InvoicePrefix:  "F",
		DefaultVATRate: decimal.RequireFromString("21.00"),
	}
	suite.financial = domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleFinancial,
		IsActive:  true,
	}
	suite.customer = domain.Customer{
		CustomerID:   uuid.NewString(),
		CompanyID:    suite.companyID,
		PaymentTerms: 14,
		IsActive:     true,
	}

	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *InvoiceServiceTestSuite) completedOrder(number string) domain.WorkOrder {
	id := uuid.NewString()
	return domain.WorkOrder{
		WorkOrderID:     id,
		CompanyID:       suite.companyID,
		WorkOrderNumber: number,
		CustomerID:      suite.customer.CustomerID,
		Status:          domain.WorkOrderCompleted,
		Lines: []domain.WorkOrderLine{
			{LineID: uuid.NewString(), WorkOrderID: id, Description: "Parts", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), VATRate: decimal.RequireFromString("21.00"), LineTotal: decimal.NewFromInt(100)},
		},
		TimeEntries: []domain.TimeEntry{
			{EntryID: uuid.NewString(), WorkOrderID: id, Hours: decimal.NewFromInt(2), HourlyRate: decimal.NewFromInt(25), Billable: true, VATRate: decimal.RequireFromString("21.00")},
			{EntryID: uuid.NewString(), WorkOrderID: id, Hours: decimal.NewFromInt(1), HourlyRate: decimal.NewFromInt(25), Billable: false, VATRate: decimal.RequireFromString("21.00")},
		},
	}
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DueDateFollowsPaymentTerms() {
	ctx := context.Background()
	invoiceDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerID:  suite.customer.CustomerID,
		InvoiceDate: &invoiceDate,
		Items: []dto.InvoiceItemRequest{
			{Description: "Callout fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(75)},
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("*domain.Invoice"), "F").Run(func(args mock.Arguments) {
		inv := args.Get(1).(*domain.Invoice)
		inv.InvoiceNumber = "F2026-0001"
	}).Return(nil).Once()

	created, err := suite.service.CreateInvoice(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceDraft, created.Status)
	suite.Equal(domain.InvoiceTypeStandard, created.InvoiceType)
	suite.Equal(invoiceDate.AddDate(0, 0, 14), created.DueDate)
	suite.True(created.PaidAmount.IsZero())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromWorkOrders_Success() {
	ctx := context.Background()
	orderA := suite.completedOrder("W2026-0001")
	orderB := suite.completedOrder("W2026-0002")
	req := dto.CreateInvoiceFromWorkOrdersRequest{WorkOrderIDs: []string{orderA.WorkOrderID, orderB.WorkOrderID}}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderA.WorkOrderID).Return(&orderA, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderB.WorkOrderID).Return(&orderB, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.companyID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).Return(&suite.company, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoiceFromWorkOrders", ctx, mock.AnythingOfType("*domain.Invoice"), "F", []string{orderA.WorkOrderID, orderB.WorkOrderID}, suite.userID).Run(func(args mock.Arguments) {
		inv := args.Get(1).(*domain.Invoice)
		inv.InvoiceNumber = "F2026-0002"
	}).Return(nil).Once()

	created, err := suite.service.CreateInvoiceFromWorkOrders(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceTypeCombined, created.InvoiceType)
	// Per order: 100 material + 2h x 25 billable labour. The non-billable
	// entry stays off the invoice.
	suite.Len(created.Items, 4)
	suite.True(created.Subtotal.Equal(decimal.RequireFromString("300.00")), "subtotal was %s", created.Subtotal)
	suite.True(created.VATAmount.Equal(decimal.RequireFromString("63.00")), "vat was %s", created.VATAmount)
	suite.True(created.TotalAmount.Equal(decimal.RequireFromString("363.00")), "total was %s", created.TotalAmount)
	for _, item := range created.Items {
		suite.Require().NotNil(item.WorkOrderID)
	}
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromWorkOrders_NotCompletedRejectsBatch() {
	ctx := context.Background()
	orderA := suite.completedOrder("W2026-0003")
	orderB := suite.completedOrder("W2026-0004")
	orderB.Status = domain.WorkOrderInProgress
	req := dto.CreateInvoiceFromWorkOrdersRequest{WorkOrderIDs: []string{orderA.WorkOrderID, orderB.WorkOrderID}}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderA.WorkOrderID).Return(&orderA, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderB.WorkOrderID).Return(&orderB, nil).Once()

	_, err := suite.service.CreateInvoiceFromWorkOrders(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.Contains(err.Error(), "W2026-0004")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceFromWorkOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoiceFromWorkOrders_MixedCustomersRejectsBatch() {
	ctx := context.Background()
	orderA := suite.completedOrder("W2026-0005")
	orderB := suite.completedOrder("W2026-0006")
	orderB.CustomerID = uuid.NewString()
	req := dto.CreateInvoiceFromWorkOrdersRequest{WorkOrderIDs: []string{orderA.WorkOrderID, orderB.WorkOrderID}}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderA.WorkOrderID).Return(&orderA, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, orderB.WorkOrderID).Return(&orderB, nil).Once()

	_, err := suite.service.CreateInvoiceFromWorkOrders(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConsistency)
	suite.Contains(err.Error(), "W2026-0006")
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoiceFromWorkOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_SentIsFrozen() {
	ctx := context.Background()
	sent := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		InvoiceNumber: "F2026-0003",
		Status:        domain.InvoiceSent,
	}
	notes := "changed"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, sent.InvoiceID).Return(&sent, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, suite.companyID, sent.InvoiceID, dto.UpdateInvoiceRequest{Notes: &notes}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidRecordsPayment() {
	ctx := context.Background()
	sent := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		InvoiceNumber: "F2026-0004",
		Status:        domain.InvoiceSent,
		TotalAmount:   decimal.RequireFromString("181.50"),
	}
	paymentDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	reference := "SEPA-1234"
	req := dto.UpdateInvoiceStatusRequest{
		Status:           domain.InvoicePaid,
		PaymentDate:      &paymentDate,
		PaymentReference: &reference,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, sent.InvoiceID).Return(&sent, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoiceStatus(ctx, suite.companyID, sent.InvoiceID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.True(updated.PaidAmount.Equal(sent.TotalAmount))
	suite.Require().NotNil(updated.PaymentDate)
	suite.Equal(paymentDate, *updated.PaymentDate)
	suite.Equal(reference, updated.PaymentReference)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidIsTerminal() {
	ctx := context.Background()
	paid := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		InvoiceNumber: "F2026-0005",
		Status:        domain.InvoicePaid,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, paid.InvoiceID).Return(&paid, nil).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, suite.companyID, paid.InvoiceID, dto.UpdateInvoiceStatusRequest{Status: domain.InvoiceCancelled}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
}

func (suite *InvoiceServiceTestSuite) TestMarkOverdueInvoices_ReturnsAffectedCount() {
	ctx := context.Background()
	asOf := time.Now().UTC()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("MarkOverdueInvoices", ctx, suite.companyID, asOf, suite.userID).Return(int64(2), nil).Once()

	count, err := suite.service.MarkOverdueInvoices(ctx, suite.companyID, asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_ForeignCompanyHidden() {
	ctx := context.Background()
	foreign := domain.Invoice{
		InvoiceID: uuid.NewString(),
		CompanyID: uuid.NewString(),
		Status:    domain.InvoiceDraft,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, foreign.InvoiceID).Return(&foreign, nil).Once()

	_, err := suite.service.GetInvoiceByID(ctx, suite.companyID, foreign.InvoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_DraftIsRemoved() {
	ctx := context.Background()
	draft := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		InvoiceNumber: "F2026-0006",
		Status:        domain.InvoiceDraft,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, draft.InvoiceID).Return(&draft, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, suite.companyID, draft.InvoiceID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.companyID, draft.InvoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_SentIsRejected() {
	ctx := context.Background()
	sent := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		CompanyID:     suite.companyID,
		InvoiceNumber: "F2026-0007",
		Status:        domain.InvoiceSent,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.financial, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, sent.InvoiceID).Return(&sent, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.companyID, sent.InvoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateTransition)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_TechnicianForbidden() {
	ctx := context.Background()
	technician := domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleTechnician,
		IsActive:  true,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&technician, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.companyID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
