package handlers

import (
	"net/http"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// attachmentHandler exposes attachment metadata endpoints.
type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
}

func newAttachmentHandler(attachmentService portssvc.AttachmentSvcFacade) *attachmentHandler {
	return &attachmentHandler{attachmentService: attachmentService}
}

// registerAttachmentRoutes sets up the attachment routes.
func registerAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvcFacade) {
	h := newAttachmentHandler(attachmentService)

	attachments := rg.Group("/attachments")
	{
		attachments.POST("", h.registerAttachment)
		attachments.GET("", h.listAttachments)
		attachments.GET("/:attachment_id", h.getAttachment)
		attachments.DELETE("/:attachment_id", h.deleteAttachment)
	}
}

// registerAttachment godoc
// @Summary Register an attachment
// @Description Records metadata for an uploaded file against a quote, work
// @Description order or invoice. The target entity must exist in the company.
// @Tags attachments
// @Accept json
// @Produce json
// @Param attachment body dto.RegisterAttachmentRequest true "Attachment metadata"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attachments [post]
func (h *attachmentHandler) registerAttachment(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	attachment, err := h.attachmentService.RegisterAttachment(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to register attachment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// listAttachments godoc
// @Summary List attachments of an entity
// @Description Retrieves all attachments linked to one quote, work order or
// @Description invoice, newest first.
// @Tags attachments
// @Produce json
// @Param entityType query string true "Entity type" Enums(quote, work_order, invoice)
// @Param entityID query string true "Entity ID"
// @Success 200 {object} dto.ListAttachmentsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attachments [get]
func (h *attachmentHandler) listAttachments(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListAttachmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list attachments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAttachmentsResponse(attachments))
}

// getAttachment godoc
// @Summary Get an attachment
// @Description Retrieves a single attachment's metadata by ID.
// @Tags attachments
// @Produce json
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {object} dto.AttachmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /attachments/{attachment_id} [get]
func (h *attachmentHandler) getAttachment(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	attachmentID := c.Param("attachment_id")

	attachment, err := h.attachmentService.GetAttachmentByID(c.Request.Context(), companyID, attachmentID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get attachment")
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentResponse(attachment))
}

// deleteAttachment godoc
// @Summary Delete an attachment
// @Description Removes an attachment. Allowed for the uploader and for admins
// @Description and managers.
// @Tags attachments
// @Param attachment_id path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attachments/{attachment_id} [delete]
func (h *attachmentHandler) deleteAttachment(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	attachmentID := c.Param("attachment_id")

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), companyID, attachmentID, userID); err != nil {
		respondServiceError(c, err, "Failed to delete attachment")
		return
	}

	c.Status(http.StatusNoContent)
}
