package domain

import "time"

// AuditAction classifies an audit log entry.
type AuditAction string

const (
	AuditCreate       AuditAction = "create"
	AuditUpdate       AuditAction = "update"
	AuditStatusChange AuditAction = "status_change"
	AuditConvert      AuditAction = "convert"
	AuditDeactivate   AuditAction = "deactivate"
	AuditStockAdjust  AuditAction = "stock_adjust"
	AuditDelete       AuditAction = "delete"
)

// AuditLog records who did what to which entity. Entries are append-only.
type AuditLog struct {
	LogID      string      `json:"logID"`     // Primary Key (UUID)
	CompanyID  string      `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	UserID     string      `json:"userID"`
	EntityType string      `json:"entityType"` // e.g. "quote", "invoice"
	EntityID   string      `json:"entityID"`
	Action     AuditAction `json:"action"`
	Detail     string      `json:"detail"` // Human-readable summary
	CreatedAt  time.Time   `json:"createdAt"`
}
