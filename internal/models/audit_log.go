package models

import "time"

// AuditLog is an append-only row in the audit_logs table.
type AuditLog struct {
	LogID      string    `db:"log_id"`
	CompanyID  string    `db:"company_id"`
	UserID     string    `db:"user_id"`
	EntityType string    `db:"entity_type"`
	EntityID   string    `db:"entity_id"`
	Action     string    `db:"action"`
	Detail     string    `db:"detail"`
	CreatedAt  time.Time `db:"created_at"`
}
