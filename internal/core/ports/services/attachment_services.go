package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// AttachmentSvcFacade defines attachment metadata operations. The file blobs
// themselves are stored outside the database; the service tracks where they
// live and which document they belong to.
type AttachmentSvcFacade interface {
	// RegisterAttachment records metadata for an uploaded file against a
	// quote, work order or invoice. The target entity must exist in the
	// company.
	RegisterAttachment(ctx context.Context, companyID string, req dto.RegisterAttachmentRequest, userID string) (*domain.Attachment, error)
	// GetAttachmentByID retrieves a single attachment.
	GetAttachmentByID(ctx context.Context, companyID string, attachmentID string, userID string) (*domain.Attachment, error)
	// ListAttachments retrieves all attachments of one entity, newest first.
	ListAttachments(ctx context.Context, companyID string, params dto.ListAttachmentsParams, userID string) ([]domain.Attachment, error)
	// DeleteAttachment removes an attachment. Allowed for the uploader and
	// for admins and managers.
	DeleteAttachment(ctx context.Context, companyID string, attachmentID string, userID string) error
}
