package repositories

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// ListAuditLogsFilter narrows audit log list queries.
type ListAuditLogsFilter struct {
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
}

// AuditLogReader defines read operations for audit log entries
type AuditLogReader interface {
	// ListAuditLogs retrieves a filtered, paginated list of audit entries,
	// newest first.
	ListAuditLogs(ctx context.Context, companyID string, filter ListAuditLogsFilter) ([]domain.AuditLog, error)
}

// AuditLogWriter defines write operations for audit log entries
type AuditLogWriter interface {
	// SaveAuditLog appends an audit entry. Entries are never updated or
	// deleted.
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}

// AuditLogRepositoryFacade combines the audit log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
