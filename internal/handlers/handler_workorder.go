package handlers

import (
	"net/http"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// workOrderHandler handles HTTP requests for work orders and their time
// entries.
type workOrderHandler struct {
	workOrderService portssvc.WorkOrderSvcFacade
}

func newWorkOrderHandler(workOrderService portssvc.WorkOrderSvcFacade) *workOrderHandler {
	return &workOrderHandler{workOrderService: workOrderService}
}

// registerWorkOrderRoutes sets up the routes for work orders, time entries
// and the quote conversion endpoint.
func registerWorkOrderRoutes(rg *gin.RouterGroup, workOrderService portssvc.WorkOrderSvcFacade) {
	h := newWorkOrderHandler(workOrderService)

	workOrders := rg.Group("/work-orders")
	{
		workOrders.POST("", h.createWorkOrder)
		workOrders.GET("", h.listWorkOrders)
		workOrders.GET("/:work_order_id", h.getWorkOrder)
		workOrders.PUT("/:work_order_id", h.updateWorkOrder)
		workOrders.PUT("/:work_order_id/lines", h.replaceWorkOrderLines)
		workOrders.PUT("/:work_order_id/status", h.updateWorkOrderStatus)
		workOrders.GET("/:work_order_id/time-entries", h.listTimeEntries)
		workOrders.POST("/:work_order_id/time-entries", h.createTimeEntry)
	}

	// Conversion lives under the quote being converted.
	rg.POST("/quotes/:quote_id/convert", h.convertQuote)

	timeEntries := rg.Group("/time-entries")
	{
		timeEntries.PUT("/:entry_id", h.updateTimeEntry)
		timeEntries.DELETE("/:entry_id", h.deleteTimeEntry)
	}
}

// createWorkOrder godoc
// @Summary Create a new work order
// @Description Creates a new planned work order with its material lines. The
// @Description work order number and totals are assigned by the server.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param workOrder body dto.CreateWorkOrderRequest true "Work order details"
// @Success 201 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /work-orders [post]
func (h *workOrderHandler) createWorkOrder(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.workOrderService.CreateWorkOrder(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create work order")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkOrderResponse(order))
}

// convertQuote godoc
// @Summary Convert an accepted quote into a work order
// @Description Creates a planned work order carrying the quote's lines and a
// @Description reference to the quote. Only accepted quotes can be converted.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Param conversion body dto.ConvertQuoteRequest true "Conversion details"
// @Success 201 {object} dto.WorkOrderResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quotes/{quote_id}/convert [post]
func (h *workOrderHandler) convertQuote(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ConvertQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.workOrderService.CreateWorkOrderFromQuote(c.Request.Context(), companyID, c.Param("quote_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to convert quote")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkOrderResponse(order))
}

// listWorkOrders godoc
// @Summary List work orders
// @Description Retrieves a filtered page of work orders. Pages are keyed by
// @Description an opaque nextToken rather than an offset.
// @Tags work-orders
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param customerID query string false "Filter by customer"
// @Param technicianID query string false "Filter by assigned technician"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListWorkOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Router /work-orders [get]
func (h *workOrderHandler) listWorkOrders(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListWorkOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	orders, nextToken, err := h.workOrderService.ListWorkOrders(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list work orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkOrdersResponse(orders, nextToken))
}

// getWorkOrder godoc
// @Summary Get a work order
// @Description Retrieves a work order with its lines and time entries.
// @Tags work-orders
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /work-orders/{work_order_id} [get]
func (h *workOrderHandler) getWorkOrder(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	order, err := h.workOrderService.GetWorkOrderByID(c.Request.Context(), companyID, c.Param("work_order_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve work order")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(order))
}

// updateWorkOrder godoc
// @Summary Update a work order
// @Description Updates the header fields of a work order that has not been
// @Description invoiced.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Param workOrder body dto.UpdateWorkOrderRequest true "Work order fields to update"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /work-orders/{work_order_id} [put]
func (h *workOrderHandler) updateWorkOrder(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.workOrderService.UpdateWorkOrder(c.Request.Context(), companyID, c.Param("work_order_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update work order")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(order))
}

// replaceWorkOrderLines godoc
// @Summary Replace work order lines
// @Description Replaces the full material line set of a work order that has
// @Description not been invoiced and recomputes the totals.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Param lines body dto.ReplaceWorkOrderLinesRequest true "New line set"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /work-orders/{work_order_id}/lines [put]
func (h *workOrderHandler) replaceWorkOrderLines(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ReplaceWorkOrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.workOrderService.ReplaceWorkOrderLines(c.Request.Context(), companyID, c.Param("work_order_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to replace work order lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(order))
}

// updateWorkOrderStatus godoc
// @Summary Update work order status
// @Description Applies a lifecycle transition. Work orders become invoiced
// @Description only through the invoicing endpoint.
// @Tags work-orders
// @Accept json
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Param status body dto.UpdateWorkOrderStatusRequest true "Target status"
// @Success 200 {object} dto.WorkOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /work-orders/{work_order_id}/status [put]
func (h *workOrderHandler) updateWorkOrderStatus(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	order, err := h.workOrderService.UpdateWorkOrderStatus(c.Request.Context(), companyID, c.Param("work_order_id"), req.Status, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update work order status")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderResponse(order))
}

// listTimeEntries godoc
// @Summary List time entries
// @Description Retrieves all time entries for a work order.
// @Tags time-entries
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Success 200 {object} dto.ListTimeEntriesResponse
// @Failure 404 {object} ErrorResponse
// @Router /work-orders/{work_order_id}/time-entries [get]
func (h *workOrderHandler) listTimeEntries(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	entries, err := h.workOrderService.ListTimeEntries(c.Request.Context(), companyID, c.Param("work_order_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list time entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTimeEntriesResponse(entries))
}

// createTimeEntry godoc
// @Summary Register hours on a work order
// @Description Registers a time entry against a work order that has not been
// @Description invoiced and recomputes the order's totals.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param work_order_id path string true "Work Order ID"
// @Param entry body dto.CreateTimeEntryRequest true "Time entry details"
// @Success 201 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /work-orders/{work_order_id}/time-entries [post]
func (h *workOrderHandler) createTimeEntry(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	entry, err := h.workOrderService.CreateTimeEntry(c.Request.Context(), companyID, c.Param("work_order_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create time entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeEntryResponse(entry))
}

// updateTimeEntry godoc
// @Summary Update a time entry
// @Description Updates a time entry and recomputes the parent order's totals.
// @Tags time-entries
// @Accept json
// @Produce json
// @Param entry_id path string true "Time Entry ID"
// @Param entry body dto.UpdateTimeEntryRequest true "Time entry fields to update"
// @Success 200 {object} dto.TimeEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /time-entries/{entry_id} [put]
func (h *workOrderHandler) updateTimeEntry(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	entry, err := h.workOrderService.UpdateTimeEntry(c.Request.Context(), companyID, c.Param("entry_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update time entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeEntryResponse(entry))
}

// deleteTimeEntry godoc
// @Summary Delete a time entry
// @Description Removes a time entry and recomputes the parent order's totals.
// @Tags time-entries
// @Param entry_id path string true "Time Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /time-entries/{entry_id} [delete]
func (h *workOrderHandler) deleteTimeEntry(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	if err := h.workOrderService.DeleteTimeEntry(c.Request.Context(), companyID, c.Param("entry_id"), userID); err != nil {
		respondServiceError(c, err, "Failed to delete time entry")
		return
	}

	c.Status(http.StatusNoContent)
}
