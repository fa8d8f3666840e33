package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest defines one item in an invoice create or item-replace
// request.
type InvoiceItemRequest struct {
	ArticleID   *string          `json:"articleID"`
	Description string           `json:"description" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal  `json:"unitPrice" binding:"required"`
	VATRate     *decimal.Decimal `json:"vatRate"` // Defaults to the company rate when omitted
}

// CreateInvoiceRequest defines the data needed to create a standard invoice.
// The invoice number, due date and totals are assigned by the service.
type CreateInvoiceRequest struct {
	CustomerID  string               `json:"customerID" binding:"required"`
	InvoiceDate *time.Time           `json:"invoiceDate"` // Defaults to today
	Notes       string               `json:"notes"`
	Items       []InvoiceItemRequest `json:"items"`
}

// CreateInvoiceFromWorkOrdersRequest creates one combined invoice out of a
// batch of completed work orders belonging to the same customer.
type CreateInvoiceFromWorkOrdersRequest struct {
	WorkOrderIDs []string   `json:"workOrderIDs" binding:"required,min=1"`
	InvoiceDate  *time.Time `json:"invoiceDate"`
	Notes        string     `json:"notes"`
}

// UpdateInvoiceRequest defines the header fields allowed for updating a draft
// invoice.
type UpdateInvoiceRequest struct {
	InvoiceDate *time.Time `json:"invoiceDate"`
	Notes       *string    `json:"notes"`
}

// ReplaceInvoiceItemsRequest replaces the full set of items on a draft invoice.
type ReplaceInvoiceItemsRequest struct {
	Items []InvoiceItemRequest `json:"items" binding:"required"`
}

// UpdateInvoiceStatusRequest requests a lifecycle transition. Payment fields
// only apply when moving to paid.
type UpdateInvoiceStatusRequest struct {
	Status           domain.InvoiceStatus `json:"status" binding:"required,oneof=draft sent paid overdue cancelled"`
	PaidAmount       *decimal.Decimal     `json:"paidAmount"`
	PaymentDate      *time.Time           `json:"paymentDate"`
	PaymentReference *string              `json:"paymentReference"`
}

// InvoiceItemResponse defines the data returned for an invoice item.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	WorkOrderID *string         `json:"workOrderID,omitempty"`
	ArticleID   *string         `json:"articleID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	SortOrder   int             `json:"sortOrder"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID        string                `json:"invoiceID"`
	InvoiceNumber    string                `json:"invoiceNumber"`
	CustomerID       string                `json:"customerID"`
	InvoiceType      domain.InvoiceType    `json:"invoiceType"`
	InvoiceDate      time.Time             `json:"invoiceDate"`
	DueDate          time.Time             `json:"dueDate"`
	Status           domain.InvoiceStatus  `json:"status"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	VATAmount        decimal.Decimal       `json:"vatAmount"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	PaidAmount       decimal.Decimal       `json:"paidAmount"`
	PaymentDate      *time.Time            `json:"paymentDate,omitempty"`
	PaymentReference string                `json:"paymentReference"`
	Notes            string                `json:"notes"`
	Items            []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
	LastUpdatedAt    time.Time             `json:"lastUpdatedAt"`
}

// ToInvoiceItemResponse converts a domain.InvoiceItem to DTO.
func ToInvoiceItemResponse(it *domain.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      it.ItemID,
		WorkOrderID: it.WorkOrderID,
		ArticleID:   it.ArticleID,
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		VATRate:     it.VATRate,
		TotalPrice:  it.TotalPrice,
		SortOrder:   it.SortOrder,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = ToInvoiceItemResponse(&it)
	}
	return InvoiceResponse{
		InvoiceID:        inv.InvoiceID,
		InvoiceNumber:    inv.InvoiceNumber,
		CustomerID:       inv.CustomerID,
		InvoiceType:      inv.InvoiceType,
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		Status:           inv.Status,
		Subtotal:         inv.Subtotal,
		VATAmount:        inv.VATAmount,
		TotalAmount:      inv.TotalAmount,
		PaidAmount:       inv.PaidAmount,
		PaymentDate:      inv.PaymentDate,
		PaymentReference: inv.PaymentReference,
		Notes:            inv.Notes,
		Items:            items,
		CreatedAt:        inv.CreatedAt,
		CreatedBy:        inv.CreatedBy,
		LastUpdatedAt:    inv.LastUpdatedAt,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit      int     `form:"limit,default=20"`
	NextToken  *string `form:"nextToken"`
	Status     string  `form:"status"`
	CustomerID string  `form:"customerID"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListInvoicesResponse converts a page of domain.Invoice to DTO.
func ToListInvoicesResponse(invs []domain.Invoice, nextToken *string) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		res[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: res, NextToken: nextToken}
}
