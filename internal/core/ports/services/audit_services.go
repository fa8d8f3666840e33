package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// AuditLogSvcFacade defines read access to the audit trail. Writes happen
// inside the entity services.
type AuditLogSvcFacade interface {
	// ListAuditLogs retrieves a filtered, paginated list of audit entries,
	// newest first. Admin and manager only.
	ListAuditLogs(ctx context.Context, companyID string, params dto.ListAuditLogsParams, userID string) ([]domain.AuditLog, error)
}
