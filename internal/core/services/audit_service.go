package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/middleware"
	"github.com/google/uuid"
)

// auditLogService serves the audit trail and records entries on behalf of the
// entity services.
type auditLogService struct {
	auditRepo portsrepo.AuditLogRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewAuditLogService creates a new audit log service.
func NewAuditLogService(auditRepo portsrepo.AuditLogRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *auditLogService {
	return &auditLogService{auditRepo: auditRepo, userRepo: userRepo}
}

var _ portssvc.AuditLogSvcFacade = (*auditLogService)(nil)

// ListAuditLogs retrieves a filtered page of audit entries, newest first.
func (s *auditLogService) ListAuditLogs(ctx context.Context, companyID string, params dto.ListAuditLogsParams, userID string) ([]domain.AuditLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return nil, err
	}

	logs, err := s.auditRepo.ListAuditLogs(ctx, companyID, portsrepo.ListAuditLogsFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		logger.Error("Failed to list audit logs from repository", slog.String("error", err.Error()))
		return nil, err
	}

	if logs == nil {
		return []domain.AuditLog{}, nil
	}
	return logs, nil
}

// record appends an audit entry. Failures are logged and swallowed so the
// business operation that triggered the entry is never rolled back over its
// audit trail.
func (s *auditLogService) record(ctx context.Context, companyID, userID, entityType, entityID string, action domain.AuditAction, detail string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.AuditLog{
		LogID:      uuid.NewString(),
		CompanyID:  companyID,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.String("action", string(action)),
		)
	}
}
