package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/middleware"
	"github.com/google/uuid"
)

// attachmentService tracks file metadata linked to quotes, work orders and
// invoices. The blobs themselves live outside the database.
type attachmentService struct {
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	quoteRepo      portsrepo.QuoteReader
	workOrderRepo  portsrepo.WorkOrderReader
	invoiceRepo    portsrepo.InvoiceReader
	userRepo       portsrepo.UserRepositoryFacade
	audit          *auditLogService
}

// NewAttachmentService creates a new attachment service.
func NewAttachmentService(
	attachmentRepo portsrepo.AttachmentRepositoryFacade,
	quoteRepo portsrepo.QuoteReader,
	workOrderRepo portsrepo.WorkOrderReader,
	invoiceRepo portsrepo.InvoiceReader,
	userRepo portsrepo.UserRepositoryFacade,
	audit *auditLogService,
) portssvc.AttachmentSvcFacade {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		quoteRepo:      quoteRepo,
		workOrderRepo:  workOrderRepo,
		invoiceRepo:    invoiceRepo,
		userRepo:       userRepo,
		audit:          audit,
	}
}

var _ portssvc.AttachmentSvcFacade = (*attachmentService)(nil)

// verifyEntityExists checks that the document an attachment points at exists
// within the company. Returns ErrNotFound when it does not.
func (s *attachmentService) verifyEntityExists(ctx context.Context, companyID, entityType, entityID string) error {
	var err error
	switch entityType {
	case domain.AttachmentEntityQuote:
		_, err = s.quoteRepo.FindQuoteByID(ctx, companyID, entityID)
	case domain.AttachmentEntityWorkOrder:
		_, err = s.workOrderRepo.FindWorkOrderByID(ctx, companyID, entityID)
	case domain.AttachmentEntityInvoice:
		_, err = s.invoiceRepo.FindInvoiceByID(ctx, companyID, entityID)
	default:
		return fmt.Errorf("%w: unknown attachment entity type %q", apperrors.ErrValidation, entityType)
	}
	return err
}

// RegisterAttachment records metadata for an uploaded file against a quote,
// work order or invoice.
func (s *attachmentService) RegisterAttachment(ctx context.Context, companyID string, req dto.RegisterAttachmentRequest, userID string) (*domain.Attachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID,
		domain.RoleManager, domain.RoleSales, domain.RoleTechnician, domain.RoleFinancial); err != nil {
		return nil, err
	}

	if err := s.verifyEntityExists(ctx, companyID, req.EntityType, req.EntityID); err != nil {
		return nil, err
	}

	// Stored filename is server-generated; the client-supplied name is kept
	// only for display.
	originalName := filepath.Base(req.OriginalFilename)
	attachmentID := uuid.NewString()
	storedName := attachmentID + filepath.Ext(originalName)

	attachment := domain.Attachment{
		AttachmentID:     attachmentID,
		CompanyID:        companyID,
		EntityType:       req.EntityType,
		EntityID:         req.EntityID,
		Filename:         storedName,
		OriginalFilename: originalName,
		FilePath:         filepath.Join(companyID, storedName),
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		Description:      req.Description,
		UploadedBy:       userID,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		logger.Error("Failed to save attachment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register attachment: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "attachment", attachment.AttachmentID, domain.AuditCreate,
		fmt.Sprintf("attached %q to %s %s", originalName, req.EntityType, req.EntityID))

	logger.Info("Attachment registered",
		slog.String("attachment_id", attachment.AttachmentID),
		slog.String("entity_type", req.EntityType),
		slog.String("entity_id", req.EntityID),
	)
	return &attachment, nil
}

// GetAttachmentByID retrieves a single attachment.
func (s *attachmentService) GetAttachmentByID(ctx context.Context, companyID string, attachmentID string, userID string) (*domain.Attachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, companyID, attachmentID)
	if err != nil {
		logger.Warn("Failed to get attachment", slog.String("attachment_id", attachmentID), slog.String("error", err.Error()))
		return nil, err
	}
	if attachment.CompanyID != companyID {
		logger.Warn("Attachment found but belongs to a different company",
			slog.String("attachment_id", attachmentID),
			slog.String("owner_company", attachment.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return attachment, nil
}

// ListAttachments retrieves all attachments of one entity, newest first.
func (s *attachmentService) ListAttachments(ctx context.Context, companyID string, params dto.ListAttachmentsParams, userID string) ([]domain.Attachment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.verifyEntityExists(ctx, companyID, params.EntityType, params.EntityID); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListAttachmentsByEntity(ctx, companyID, params.EntityType, params.EntityID)
	if err != nil {
		logger.Error("Failed to list attachments", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	if attachments == nil {
		return []domain.Attachment{}, nil
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment. The uploader can always delete
// their own upload; everyone else needs the manager role.
func (s *attachmentService) DeleteAttachment(ctx context.Context, companyID string, attachmentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, companyID, attachmentID)
	if err != nil {
		return err
	}

	if attachment.UploadedBy != userID {
		if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
			return err
		}
	}

	if err := s.attachmentRepo.DeleteAttachment(ctx, companyID, attachmentID); err != nil {
		logger.Error("Failed to delete attachment", slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "attachment", attachmentID, domain.AuditDelete,
		fmt.Sprintf("removed %q from %s %s", attachment.OriginalFilename, attachment.EntityType, attachment.EntityID))

	logger.Info("Attachment deleted", slog.String("attachment_id", attachmentID))
	return nil
}
