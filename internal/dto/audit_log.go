package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// AuditLogResponse defines the data returned for an audit log entry.
type AuditLogResponse struct {
	LogID      string             `json:"logID"`
	UserID     string             `json:"userID"`
	EntityType string             `json:"entityType"`
	EntityID   string             `json:"entityID"`
	Action     domain.AuditAction `json:"action"`
	Detail     string             `json:"detail"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToAuditLogResponse converts a domain.AuditLog to AuditLogResponse DTO.
func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		LogID:      l.LogID,
		UserID:     l.UserID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		Detail:     l.Detail,
		CreatedAt:  l.CreatedAt,
	}
}

// ListAuditLogsParams defines query parameters for listing audit log entries.
type ListAuditLogsParams struct {
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
	EntityType string `form:"entityType"`
	EntityID   string `form:"entityID"`
}

// ListAuditLogsResponse wraps the list of audit log entries.
type ListAuditLogsResponse struct {
	Logs []AuditLogResponse `json:"logs"`
}

// ToListAuditLogsResponse converts a slice of domain.AuditLog to DTO.
func ToListAuditLogsResponse(ls []domain.AuditLog) ListAuditLogsResponse {
	res := make([]AuditLogResponse, len(ls))
	for i, l := range ls {
		res[i] = ToAuditLogResponse(&l)
	}
	return ListAuditLogsResponse{Logs: res}
}
