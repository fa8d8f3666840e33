package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(invoiceService portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: invoiceService}
}

// registerInvoiceRoutes sets up the routes for invoice management.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.POST("/from-work-orders", h.createInvoiceFromWorkOrders)
		invoices.POST("/mark-overdue", h.markOverdueInvoices)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.PUT("/:invoice_id/items", h.replaceInvoiceItems)
		invoices.PUT("/:invoice_id/status", h.updateInvoiceStatus)
		invoices.DELETE("/:invoice_id", h.deleteInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates a new draft standard invoice with its items. The
// @Description invoice number and totals are assigned by the server and the
// @Description due date follows the customer's payment terms.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// createInvoiceFromWorkOrders godoc
// @Summary Create a combined invoice from work orders
// @Description Builds one invoice out of a batch of completed work orders
// @Description belonging to the same customer. If any work order is
// @Description ineligible the whole batch is rejected and nothing changes.
// @Tags invoices
// @Accept json
// @Produce json
// @Param batch body dto.CreateInvoiceFromWorkOrdersRequest true "Work order batch"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /invoices/from-work-orders [post]
func (h *invoiceHandler) createInvoiceFromWorkOrders(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceFromWorkOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoiceFromWorkOrders(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create combined invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a filtered page of invoices. Pages are keyed by an
// @Description opaque nextToken rather than an offset.
// @Tags invoices
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param customerID query string false "Filter by customer"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, nextToken))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its items.
// @Tags invoices
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), companyID, c.Param("invoice_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates a draft invoice's header fields. Invoices that left
// @Description draft are frozen.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Invoice fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// replaceInvoiceItems godoc
// @Summary Replace invoice items
// @Description Replaces the full item set of a draft invoice and recomputes
// @Description the totals.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param items body dto.ReplaceInvoiceItemsRequest true "New item set"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{invoice_id}/items [put]
func (h *invoiceHandler) replaceInvoiceItems(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ReplaceInvoiceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	invoice, err := h.invoiceService.ReplaceInvoiceItems(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to replace invoice items")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoiceStatus godoc
// @Summary Update invoice status
// @Description Applies a lifecycle transition. Moving to paid records the
// @Description payment fields.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice_id path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "Target status and payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{invoice_id}/status [put]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), companyID, c.Param("invoice_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update invoice status")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// markOverdueInvoices godoc
// @Summary Mark overdue invoices
// @Description Flips every sent invoice past its due date to overdue and
// @Description returns how many were affected.
// @Tags invoices
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} ErrorResponse
// @Router /invoices/mark-overdue [post]
func (h *invoiceHandler) markOverdueInvoices(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	affected, err := h.invoiceService.MarkOverdueInvoices(c.Request.Context(), companyID, time.Now(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to mark overdue invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"overdue": affected})
}

// deleteInvoice godoc
// @Summary Delete a draft invoice
// @Description Removes a draft invoice together with its items. Invoices that
// @Description have left the draft state cannot be deleted.
// @Tags invoices
// @Param invoice_id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invoices/{invoice_id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), companyID, c.Param("invoice_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete invoice")
		return
	}

	c.Status(http.StatusNoContent)
}
