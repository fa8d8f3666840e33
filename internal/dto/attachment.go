package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// RegisterAttachmentRequest defines the payload for registering uploaded file
// metadata against a quote, work order or invoice.
type RegisterAttachmentRequest struct {
	EntityType       string `json:"entityType" binding:"required,oneof=quote work_order invoice"`
	EntityID         string `json:"entityID" binding:"required,uuid"`
	OriginalFilename string `json:"originalFilename" binding:"required,max=255"`
	FileSize         int64  `json:"fileSize" binding:"required,gt=0"`
	MimeType         string `json:"mimeType" binding:"required,max=100"`
	Description      string `json:"description" binding:"max=500"`
}

// ListAttachmentsParams defines query parameters for listing attachments of
// one entity.
type ListAttachmentsParams struct {
	EntityType string `form:"entityType" binding:"required,oneof=quote work_order invoice"`
	EntityID   string `form:"entityID" binding:"required,uuid"`
}

// AttachmentResponse defines the data returned for an attachment.
type AttachmentResponse struct {
	AttachmentID     string    `json:"attachmentID"`
	EntityType       string    `json:"entityType"`
	EntityID         string    `json:"entityID"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	FilePath         string    `json:"filePath"`
	FileSize         int64     `json:"fileSize"`
	MimeType         string    `json:"mimeType"`
	Description      string    `json:"description"`
	UploadedBy       string    `json:"uploadedBy"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a domain.Attachment to AttachmentResponse DTO.
func ToAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID:     a.AttachmentID,
		EntityType:       a.EntityType,
		EntityID:         a.EntityID,
		Filename:         a.Filename,
		OriginalFilename: a.OriginalFilename,
		FilePath:         a.FilePath,
		FileSize:         a.FileSize,
		MimeType:         a.MimeType,
		Description:      a.Description,
		UploadedBy:       a.UploadedBy,
		CreatedAt:        a.CreatedAt,
	}
}

// ListAttachmentsResponse wraps the list of attachments for one entity.
type ListAttachmentsResponse struct {
	Attachments []AttachmentResponse `json:"attachments"`
}

// ToListAttachmentsResponse converts a slice of domain.Attachment to DTO.
func ToListAttachmentsResponse(as []domain.Attachment) ListAttachmentsResponse {
	res := make([]AttachmentResponse, len(as))
	for i, a := range as {
		res[i] = ToAttachmentResponse(&a)
	}
	return ListAttachmentsResponse{Attachments: res}
}
