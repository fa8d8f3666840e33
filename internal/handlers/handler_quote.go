package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// quoteHandler handles HTTP requests related to quotes.
type quoteHandler struct {
	quoteService portssvc.QuoteSvcFacade
}

func newQuoteHandler(quoteService portssvc.QuoteSvcFacade) *quoteHandler {
	return &quoteHandler{quoteService: quoteService}
}

// registerQuoteRoutes sets up the routes for quote management.
func registerQuoteRoutes(rg *gin.RouterGroup, quoteService portssvc.QuoteSvcFacade) {
	h := newQuoteHandler(quoteService)

	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.createQuote)
		quotes.GET("", h.listQuotes)
		quotes.POST("/expire", h.expireQuotes)
		quotes.GET("/:quote_id", h.getQuote)
		quotes.PUT("/:quote_id", h.updateQuote)
		quotes.PUT("/:quote_id/lines", h.replaceQuoteLines)
		quotes.PUT("/:quote_id/status", h.updateQuoteStatus)
		quotes.POST("/:quote_id/duplicate", h.duplicateQuote)
	}
}

// createQuote godoc
// @Summary Create a new quote
// @Description Creates a new draft quote with its lines. The quote number and
// @Description totals are assigned by the server.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote details"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /quotes [post]
func (h *quoteHandler) createQuote(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

// listQuotes godoc
// @Summary List quotes
// @Description Retrieves a filtered page of quotes. Pages are keyed by an
// @Description opaque nextToken rather than an offset.
// @Tags quotes
// @Produce json
// @Param status query string false "Filter by lifecycle status"
// @Param customerID query string false "Filter by customer"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListQuotesResponse
// @Failure 400 {object} ErrorResponse
// @Router /quotes [get]
func (h *quoteHandler) listQuotes(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListQuotesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	quotes, nextToken, err := h.quoteService.ListQuotes(c.Request.Context(), companyID, params)
	if err != nil {
		respondServiceError(c, err, "Failed to list quotes")
		return
	}

	c.JSON(http.StatusOK, dto.ToListQuotesResponse(quotes, nextToken))
}

// getQuote godoc
// @Summary Get a quote
// @Description Retrieves a quote with its lines.
// @Tags quotes
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotes/{quote_id} [get]
func (h *quoteHandler) getQuote(c *gin.Context) {
	companyID, _, ok := requestScope(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuoteByID(c.Request.Context(), companyID, c.Param("quote_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve quote")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// updateQuote godoc
// @Summary Update a quote
// @Description Updates a draft quote's header fields. Quotes that left draft
// @Description are frozen.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Param quote body dto.UpdateQuoteRequest true "Quote fields to update"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quotes/{quote_id} [put]
func (h *quoteHandler) updateQuote(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), companyID, c.Param("quote_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update quote")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// replaceQuoteLines godoc
// @Summary Replace quote lines
// @Description Replaces the full line set of a draft quote and recomputes the totals.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Param lines body dto.ReplaceQuoteLinesRequest true "New line set"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quotes/{quote_id}/lines [put]
func (h *quoteHandler) replaceQuoteLines(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.ReplaceQuoteLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	quote, err := h.quoteService.ReplaceQuoteLines(c.Request.Context(), companyID, c.Param("quote_id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to replace quote lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// updateQuoteStatus godoc
// @Summary Update quote status
// @Description Applies a lifecycle transition to a quote.
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Param status body dto.UpdateQuoteStatusRequest true "Target status"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /quotes/{quote_id}/status [put]
func (h *quoteHandler) updateQuoteStatus(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), companyID, c.Param("quote_id"), req.Status, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to update quote status")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuoteResponse(quote))
}

// duplicateQuote godoc
// @Summary Duplicate a quote
// @Description Creates an independent draft copy of a quote with a fresh
// @Description number and dates.
// @Tags quotes
// @Produce json
// @Param quote_id path string true "Quote ID"
// @Success 201 {object} dto.QuoteResponse
// @Failure 404 {object} ErrorResponse
// @Router /quotes/{quote_id}/duplicate [post]
func (h *quoteHandler) duplicateQuote(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.DuplicateQuote(c.Request.Context(), companyID, c.Param("quote_id"), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to duplicate quote")
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuoteResponse(quote))
}

// expireQuotes godoc
// @Summary Expire overdue quotes
// @Description Flips every sent quote whose validity date has passed to
// @Description expired and returns how many were affected.
// @Tags quotes
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} ErrorResponse
// @Router /quotes/expire [post]
func (h *quoteHandler) expireQuotes(c *gin.Context) {
	companyID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	affected, err := h.quoteService.ExpireQuotes(c.Request.Context(), companyID, time.Now(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to expire quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": affected})
}
