package repositories

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// AttachmentReader defines read operations for attachment metadata
type AttachmentReader interface {
	// FindAttachmentByID retrieves a single attachment, scoped to a company.
	FindAttachmentByID(ctx context.Context, companyID string, attachmentID string) (*domain.Attachment, error)
	// ListAttachmentsByEntity retrieves all attachments linked to one entity,
	// newest first.
	ListAttachmentsByEntity(ctx context.Context, companyID string, entityType string, entityID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for attachment metadata
type AttachmentWriter interface {
	// SaveAttachment persists new attachment metadata.
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
	// DeleteAttachment removes attachment metadata, scoped to a company.
	DeleteAttachment(ctx context.Context, companyID string, attachmentID string) error
}

// AttachmentRepositoryFacade combines the attachment repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
