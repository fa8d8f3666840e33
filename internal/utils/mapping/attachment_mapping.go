package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelAttachment converts a domain Attachment to a model Attachment
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID:     d.AttachmentID,
		CompanyID:        d.CompanyID,
		EntityType:       d.EntityType,
		EntityID:         d.EntityID,
		Filename:         d.Filename,
		OriginalFilename: d.OriginalFilename,
		FilePath:         d.FilePath,
		FileSize:         d.FileSize,
		MimeType:         d.MimeType,
		Description:      d.Description,
		UploadedBy:       d.UploadedBy,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainAttachment converts a model Attachment to a domain Attachment
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID:     m.AttachmentID,
		CompanyID:        m.CompanyID,
		EntityType:       m.EntityType,
		EntityID:         m.EntityID,
		Filename:         m.Filename,
		OriginalFilename: m.OriginalFilename,
		FilePath:         m.FilePath,
		FileSize:         m.FileSize,
		MimeType:         m.MimeType,
		Description:      m.Description,
		UploadedBy:       m.UploadedBy,
		CreatedAt:        m.CreatedAt,
	}
}
