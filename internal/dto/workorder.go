package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WorkOrderLineRequest defines one material line in a work order create or
// line-replace request.
type WorkOrderLineRequest struct {
	ArticleID   *string          `json:"articleID"`
	Description string           `json:"description" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"required"`
	VATRate     *decimal.Decimal `json:"vatRate"` // Defaults to the company rate when omitted
}

// CreateWorkOrderRequest defines the data needed to create a new work order.
// The work order number and totals are assigned by the service.
type CreateWorkOrderRequest struct {
	CustomerID   string                 `json:"customerID" binding:"required"`
	LocationID   *string                `json:"locationID"`
	Title        string                 `json:"title" binding:"required"`
	Description  string                 `json:"description"`
	WorkDate     *time.Time             `json:"workDate"` // Defaults to today
	TechnicianID *string                `json:"technicianID"`
	Notes        string                 `json:"notes"`
	Lines        []WorkOrderLineRequest `json:"lines"`
}

// UpdateWorkOrderRequest defines the header fields allowed for updating a
// work order that has not been invoiced.
type UpdateWorkOrderRequest struct {
	LocationID    *string    `json:"locationID"`
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	WorkDate      *time.Time `json:"workDate"`
	TechnicianID  *string    `json:"technicianID"`
	WorkPerformed *string    `json:"workPerformed"`
	Notes         *string    `json:"notes"`
}

// ReplaceWorkOrderLinesRequest replaces the full set of material lines on a
// work order that has not been invoiced.
type ReplaceWorkOrderLinesRequest struct {
	Lines []WorkOrderLineRequest `json:"lines" binding:"required"`
}

// UpdateWorkOrderStatusRequest requests a lifecycle transition.
type UpdateWorkOrderStatusRequest struct {
	Status domain.WorkOrderStatus `json:"status" binding:"required,oneof=planned in_progress completed invoiced"`
}

// ConvertQuoteRequest creates a work order out of an accepted quote.
type ConvertQuoteRequest struct {
	WorkDate     *time.Time `json:"workDate"`
	TechnicianID *string    `json:"technicianID"`
}

// CreateTimeEntryRequest registers hours against a work order.
type CreateTimeEntryRequest struct {
	UserID      *string          `json:"userID"` // Defaults to the caller
	EntryDate   *time.Time       `json:"entryDate"`
	Hours       decimal.Decimal  `json:"hours" binding:"required"`
	HourlyRate  decimal.Decimal  `json:"hourlyRate" binding:"required"`
	Description string           `json:"description"`
	Billable    *bool            `json:"billable"` // Defaults to true
	VATRate     *decimal.Decimal `json:"vatRate"`
}

// UpdateTimeEntryRequest defines the data allowed for updating a time entry.
type UpdateTimeEntryRequest struct {
	EntryDate   *time.Time       `json:"entryDate"`
	Hours       *decimal.Decimal `json:"hours"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
	Description *string          `json:"description"`
	Billable    *bool            `json:"billable"`
	VATRate     *decimal.Decimal `json:"vatRate"`
}

// WorkOrderLineResponse defines the data returned for a work order line.
type WorkOrderLineResponse struct {
	LineID      string          `json:"lineID"`
	ArticleID   *string         `json:"articleID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	SortOrder   int             `json:"sortOrder"`
}

// TimeEntryResponse defines the data returned for a time entry.
type TimeEntryResponse struct {
	EntryID     string          `json:"entryID"`
	WorkOrderID string          `json:"workOrderID"`
	UserID      string          `json:"userID"`
	EntryDate   time.Time       `json:"entryDate"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	VATRate     decimal.Decimal `json:"vatRate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// WorkOrderResponse defines the data returned for a work order.
type WorkOrderResponse struct {
	WorkOrderID     string                  `json:"workOrderID"`
	WorkOrderNumber string                  `json:"workOrderNumber"`
	QuoteID         *string                 `json:"quoteID,omitempty"`
	CustomerID      string                  `json:"customerID"`
	LocationID      *string                 `json:"locationID,omitempty"`
	Title           string                  `json:"title"`
	Description     string                  `json:"description"`
	WorkDate        time.Time               `json:"workDate"`
	Status          domain.WorkOrderStatus  `json:"status"`
	TechnicianID    *string                 `json:"technicianID,omitempty"`
	WorkPerformed   string                  `json:"workPerformed"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	VATAmount       decimal.Decimal         `json:"vatAmount"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
	Notes           string                  `json:"notes"`
	Lines           []WorkOrderLineResponse `json:"lines,omitempty"`
	TimeEntries     []TimeEntryResponse     `json:"timeEntries,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ToWorkOrderLineResponse converts a domain.WorkOrderLine to DTO.
func ToWorkOrderLineResponse(l *domain.WorkOrderLine) WorkOrderLineResponse {
	return WorkOrderLineResponse{
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

// ToTimeEntryResponse converts a domain.TimeEntry to TimeEntryResponse DTO.
func ToTimeEntryResponse(t *domain.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		EntryID:     t.EntryID,
		WorkOrderID: t.WorkOrderID,
		UserID:      t.UserID,
		EntryDate:   t.EntryDate,
		Hours:       t.Hours,
		HourlyRate:  t.HourlyRate,
		Description: t.Description,
		Billable:    t.Billable,
		VATRate:     t.VATRate,
		CreatedAt:   t.CreatedAt,
	}
}

// ToWorkOrderResponse converts a domain.WorkOrder to WorkOrderResponse DTO.
func ToWorkOrderResponse(w *domain.WorkOrder) WorkOrderResponse {
	lines := make([]WorkOrderLineResponse, len(w.Lines))
	for i, l := range w.Lines {
		lines[i] = ToWorkOrderLineResponse(&l)
	}
	entries := make([]TimeEntryResponse, len(w.TimeEntries))
	for i, t := range w.TimeEntries {
		entries[i] = ToTimeEntryResponse(&t)
	}
	return WorkOrderResponse{
		WorkOrderID:     w.WorkOrderID,
		WorkOrderNumber: w.WorkOrderNumber,
		QuoteID:         w.QuoteID,
		CustomerID:      w.CustomerID,
		LocationID:      w.LocationID,
		Title:           w.Title,
		Description:     w.Description,
		WorkDate:        w.WorkDate,
		Status:          w.Status,
		TechnicianID:    w.TechnicianID,
		WorkPerformed:   w.WorkPerformed,
		Subtotal:        w.Subtotal,
		VATAmount:       w.VATAmount,
		TotalAmount:     w.TotalAmount,
		Notes:           w.Notes,
		Lines:           lines,
		TimeEntries:     entries,
		CreatedAt:       w.CreatedAt,
		CreatedBy:       w.CreatedBy,
		LastUpdatedAt:   w.LastUpdatedAt,
	}
}

// ListWorkOrdersParams defines query parameters for listing work orders.
type ListWorkOrdersParams struct {
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
	Status       string  `form:"status"`
	CustomerID   string  `form:"customerID"`
	TechnicianID string  `form:"technicianID"`
}

// ListWorkOrdersResponse wraps a page of work orders.
type ListWorkOrdersResponse struct {
	WorkOrders []WorkOrderResponse `json:"workOrders"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// ToListWorkOrdersResponse converts a page of domain.WorkOrder to DTO.
func ToListWorkOrdersResponse(ws []domain.WorkOrder, nextToken *string) ListWorkOrdersResponse {
	res := make([]WorkOrderResponse, len(ws))
	for i, w := range ws {
		res[i] = ToWorkOrderResponse(&w)
	}
	return ListWorkOrdersResponse{WorkOrders: res, NextToken: nextToken}
}

// ListTimeEntriesResponse wraps the time entries of a work order.
type ListTimeEntriesResponse struct {
	TimeEntries []TimeEntryResponse `json:"timeEntries"`
}

// ToListTimeEntriesResponse converts a slice of domain.TimeEntry to DTO.
func ToListTimeEntriesResponse(ts []domain.TimeEntry) ListTimeEntriesResponse {
	res := make([]TimeEntryResponse, len(ts))
	for i, t := range ts {
		res[i] = ToTimeEntryResponse(&t)
	}
	return ListTimeEntriesResponse{TimeEntries: res}
}
