package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		LogID:      d.LogID,
		CompanyID:  d.CompanyID,
		UserID:     d.UserID,
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Action:     string(d.Action),
		Detail:     d.Detail,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		LogID:      m.LogID,
		CompanyID:  m.CompanyID,
		UserID:     m.UserID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     domain.AuditAction(m.Action),
		Detail:     m.Detail,
		CreatedAt:  m.CreatedAt,
	}
}
