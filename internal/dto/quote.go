package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// QuoteLineRequest defines one line in a quote create or line-replace request.
type QuoteLineRequest struct {
	ArticleID   *string          `json:"articleID"`
	Description string           `json:"description" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"required"`
	VATRate     *decimal.Decimal `json:"vatRate"` // Defaults to the company rate when omitted
}

// CreateQuoteRequest defines the data needed to create a new quote. The quote
// number and totals are assigned by the service, never by the caller.
type CreateQuoteRequest struct {
	CustomerID  string             `json:"customerID" binding:"required"`
	LocationID  *string            `json:"locationID"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	QuoteDate   *time.Time         `json:"quoteDate"`  // Defaults to today
	ValidUntil  *time.Time         `json:"validUntil"` // Defaults to quote date plus the configured validity
	Notes       string             `json:"notes"`
	TermsConditions string         `json:"termsConditions"`
	Lines       []QuoteLineRequest `json:"lines"`
}

// UpdateQuoteRequest defines the header fields allowed for updating a draft
// quote. Pointers distinguish omitted fields from zero-value updates.
type UpdateQuoteRequest struct {
	LocationID      *string    `json:"locationID"`
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	QuoteDate       *time.Time `json:"quoteDate"`
	ValidUntil      *time.Time `json:"validUntil"`
	Notes           *string    `json:"notes"`
	TermsConditions *string    `json:"termsConditions"`
}

// ReplaceQuoteLinesRequest replaces the full set of lines on a draft quote.
type ReplaceQuoteLinesRequest struct {
	Lines []QuoteLineRequest `json:"lines" binding:"required"`
}

// UpdateQuoteStatusRequest requests a lifecycle transition.
type UpdateQuoteStatusRequest struct {
	Status domain.QuoteStatus `json:"status" binding:"required,oneof=draft sent accepted rejected expired"`
}

// QuoteLineResponse defines the data returned for a quote line.
type QuoteLineResponse struct {
	LineID      string          `json:"lineID"`
	ArticleID   *string         `json:"articleID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	SortOrder   int             `json:"sortOrder"`
}

// QuoteResponse defines the data returned for a quote.
type QuoteResponse struct {
	QuoteID         string              `json:"quoteID"`
	QuoteNumber     string              `json:"quoteNumber"`
	CustomerID      string              `json:"customerID"`
	LocationID      *string             `json:"locationID,omitempty"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	QuoteDate       time.Time           `json:"quoteDate"`
	ValidUntil      time.Time           `json:"validUntil"`
	Status          domain.QuoteStatus  `json:"status"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	VATAmount       decimal.Decimal     `json:"vatAmount"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Notes           string              `json:"notes"`
	TermsConditions string              `json:"termsConditions"`
	Lines           []QuoteLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
}

// ToQuoteLineResponse converts a domain.QuoteLine to QuoteLineResponse DTO.
func ToQuoteLineResponse(l *domain.QuoteLine) QuoteLineResponse {
	return QuoteLineResponse{
		LineID:      l.LineID,
		ArticleID:   l.ArticleID,
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		VATRate:     l.VATRate,
		LineTotal:   l.LineTotal,
		SortOrder:   l.SortOrder,
	}
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO.
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	lines := make([]QuoteLineResponse, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = ToQuoteLineResponse(&l)
	}
	return QuoteResponse{
		QuoteID:         q.QuoteID,
		QuoteNumber:     q.QuoteNumber,
		CustomerID:      q.CustomerID,
		LocationID:      q.LocationID,
		Title:           q.Title,
		Description:     q.Description,
		QuoteDate:       q.QuoteDate,
		ValidUntil:      q.ValidUntil,
		Status:          q.Status,
		Subtotal:        q.Subtotal,
		VATAmount:       q.VATAmount,
		TotalAmount:     q.TotalAmount,
		Notes:           q.Notes,
		TermsConditions: q.TermsConditions,
		Lines:           lines,
		CreatedAt:       q.CreatedAt,
		CreatedBy:       q.CreatedBy,
		LastUpdatedAt:   q.LastUpdatedAt,
	}
}

// ListQuotesParams defines query parameters for listing quotes. Pages are
// keyed by an opaque nextToken rather than an offset.
type ListQuotesParams struct {
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
	Status     string  `form:"status"`
	CustomerID string  `form:"customerID"`
}

// ListQuotesResponse wraps a page of quotes.
type ListQuotesResponse struct {
	Quotes    []QuoteResponse `json:"quotes"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListQuotesResponse converts a page of domain.Quote to DTO.
func ToListQuotesResponse(qs []domain.Quote, nextToken *string) ListQuotesResponse {
	res := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		res[i] = ToQuoteResponse(&q)
	}
	return ListQuotesResponse{Quotes: res, NextToken: nextToken}
}
