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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AttachmentServiceTestSuite struct {
	suite.Suite
	mockAttachmentRepo *MockAttachmentRepository
	mockQuoteRepo      *MockQuoteRepository
	mockWorkOrderRepo  *MockWorkOrderRepository
	mockInvoiceRepo    *MockInvoiceRepository
	mockUserRepo       *MockUserRepository
	mockAuditRepo      *MockAuditLogRepository
	service            portssvc.AttachmentSvcFacade

	companyID  string
	userID     string
	technician domain.User
}

func (suite *AttachmentServiceTestSuite) SetupTest() {
	suite.mockAttachmentRepo = new(MockAttachmentRepository)
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.mockWorkOrderRepo = new(MockWorkOrderRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuditRepo = new(MockAuditLogRepository)

	audit := services.NewAuditLogService(suite.mockAuditRepo, suite.mockUserRepo)
	suite.service = services.NewAttachmentService(
		suite.mockAttachmentRepo,
		suite.mockQuoteRepo,
		suite.mockWorkOrderRepo,
		suite.mockInvoiceRepo,
		suite.mockUserRepo,
		audit,
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.technician = domain.User{
		UserID:    suite.userID,
		CompanyID: suite.companyID,
		Role:      domain.RoleTechnician,
		IsActive:  true,
	}

	suite.mockAuditRepo.On("SaveAuditLog", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *AttachmentServiceTestSuite) TestRegisterAttachment_GeneratesStoredFilename() {
	ctx := context.Background()
	workOrderID := uuid.NewString()
	req := dto.RegisterAttachmentRequest{
		EntityType:       domain.AttachmentEntityWorkOrder,
		EntityID:         workOrderID,
		OriginalFilename: "boiler-serial-plate.jpg",
		FileSize:         204800,
		MimeType:         "image/jpeg",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.technician, nil).Once()
	suite.mockWorkOrderRepo.On("FindWorkOrderByID", ctx, suite.companyID, workOrderID).
		Return(&domain.WorkOrder{WorkOrderID: workOrderID, CompanyID: suite.companyID}, nil).Once()
	suite.mockAttachmentRepo.On("SaveAttachment", ctx, mock.AnythingOfType("domain.Attachment")).Return(nil).Once()

	attachment, err := suite.service.RegisterAttachment(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("boiler-serial-plate.jpg", attachment.OriginalFilename)
	suite.Equal(attachment.AttachmentID+".jpg", attachment.Filename)
	suite.Equal(suite.userID, attachment.UploadedBy)
	suite.Equal(suite.companyID, attachment.CompanyID)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
}

func (suite *AttachmentServiceTestSuite) TestRegisterAttachment_MissingEntity() {
	ctx := context.Background()
	quoteID := uuid.NewString()
	req := dto.RegisterAttachmentRequest{
		EntityType:       domain.AttachmentEntityQuote,
		EntityID:         quoteID,
		OriginalFilename: "site-survey.pdf",
		FileSize:         1024,
		MimeType:         "application/pdf",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.technician, nil).Once()
	suite.mockQuoteRepo.On("FindQuoteByID", ctx, suite.companyID, quoteID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RegisterAttachment(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAttachmentRepo.AssertNotCalled(suite.T(), "SaveAttachment", mock.Anything, mock.Anything)
}

func (suite *AttachmentServiceTestSuite) TestDeleteAttachment_UploaderDeletesOwn() {
	ctx := context.Background()
	attachmentID := uuid.NewString()

	suite.mockAttachmentRepo.On("FindAttachmentByID", ctx, suite.companyID, attachmentID).
		Return(&domain.Attachment{
			AttachmentID: attachmentID,
			CompanyID:    suite.companyID,
			EntityType:   domain.AttachmentEntityInvoice,
			EntityID:     uuid.NewString(),
			UploadedBy:   suite.userID,
		}, nil).Once()
	suite.mockAttachmentRepo.On("DeleteAttachment", ctx, suite.companyID, attachmentID).Return(nil).Once()

	err := suite.service.DeleteAttachment(ctx, suite.companyID, attachmentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAttachmentRepo.AssertExpectations(suite.T())
	// Uploader path never consults the role check.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AttachmentServiceTestSuite) TestDeleteAttachment_OtherUserNeedsManager() {
	ctx := context.Background()
	attachmentID := uuid.NewString()
	otherUploader := uuid.NewString()

	suite.mockAttachmentRepo.On("FindAttachmentByID", ctx, suite.companyID, attachmentID).
		Return(&domain.Attachment{
			AttachmentID: attachmentID,
			CompanyID:    suite.companyID,
			UploadedBy:   otherUploader,
		}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.companyID, suite.userID).Return(&suite.technician, nil).Once()

	err := suite.service.DeleteAttachment(ctx, suite.companyID, attachmentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAttachmentRepo.AssertNotCalled(suite.T(), "DeleteAttachment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AttachmentServiceTestSuite) TestListAttachments_EmptyResult() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	params := dto.ListAttachmentsParams{
		EntityType: domain.AttachmentEntityInvoice,
		EntityID:   invoiceID,
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.companyID, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID, CompanyID: suite.companyID}, nil).Once()
	suite.mockAttachmentRepo.On("ListAttachmentsByEntity", ctx, suite.companyID, domain.AttachmentEntityInvoice, invoiceID).
		Return([]domain.Attachment{}, nil).Once()

	attachments, err := suite.service.ListAttachments(ctx, suite.companyID, params, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(attachments)
	suite.Empty(attachments)
}

func TestAttachmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttachmentServiceTestSuite))
}
