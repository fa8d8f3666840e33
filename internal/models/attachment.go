package models

import "time"

// Attachment is the DB model for the attachments table.
type Attachment struct {
	AttachmentID     string    `db:"attachment_id"`
	CompanyID        string    `db:"company_id"`
	EntityType       string    `db:"entity_type"`
	EntityID         string    `db:"entity_id"`
	Filename         string    `db:"filename"`
	OriginalFilename string    `db:"original_filename"`
	FilePath         string    `db:"file_path"`
	FileSize         int64     `db:"file_size"`
	MimeType         string    `db:"mime_type"`
	Description      string    `db:"description"`
	UploadedBy       string    `db:"uploaded_by"`
	CreatedAt        time.Time `db:"created_at"`
}
