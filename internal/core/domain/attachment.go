package domain

import "time"

// Entity types an attachment can be linked to.
const (
	AttachmentEntityQuote     = "quote"
	AttachmentEntityWorkOrder = "work_order"
	AttachmentEntityInvoice   = "invoice"
)

// ValidAttachmentEntityType reports whether t names an attachable entity.
func ValidAttachmentEntityType(t string) bool {
	switch t {
	case AttachmentEntityQuote, AttachmentEntityWorkOrder, AttachmentEntityInvoice:
		return true
	}
	return false
}

// Attachment is a file linked to a quote, work order or invoice. The blob
// itself lives outside the database; only metadata is tracked here.
type Attachment struct {
	AttachmentID     string    `json:"attachmentID"` // Primary Key (UUID)
	CompanyID        string    `json:"companyID"`    // FK -> companies.company_id (NON-NULL)
	EntityType       string    `json:"entityType"`   // quote, work_order, invoice
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
