package handlers

import (
	"net/http"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// auditLogHandler exposes read access to the audit trail.
type auditLogHandler struct {
	auditLogService portssvc.AuditLogSvcFacade
}

func newAuditLogHandler(auditLogService portssvc.AuditLogSvcFacade) *auditLogHandler {
	return &auditLogHandler{auditLogService: auditLogService}
}

// registerAuditLogRoutes sets up the audit log routes.
func registerAuditLogRoutes(rg *gin.RouterGroup, auditLogService portssvc.AuditLogSvcFacade) {
	h := newAuditLogHandler(auditLogService)

	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Retrieves a filtered, paginated list of audit entries, newest
// @Description first. Admin and manager only.
// @Tags audit-logs
// @Produce json
// @Param entityType query string false "Filter by entity type"
// @Param entityID query string false "Filter by entity ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 403 {object} ErrorResponse
// @Router /audit-logs [get]
func (h *auditLogHandler) listAuditLogs(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	logs, err := h.auditLogService.ListAuditLogs(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list audit logs")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAuditLogsResponse(logs))
}
