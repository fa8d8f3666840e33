package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// InvoiceType distinguishes a standard invoice from one combined out of
// multiple work orders.
type InvoiceType string

const (
	InvoiceTypeStandard InvoiceType = "standard"
	InvoiceTypeCombined InvoiceType = "combined"
)

// invoiceTransitions lists the legal transitions per current status.
// The overdue transition is driven programmatically by an external check.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:     {InvoiceSent, InvoiceCancelled},
	InvoiceSent:      {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue:   {InvoicePaid, InvoiceCancelled},
	InvoicePaid:      {},
	InvoiceCancelled: {},
}

// ValidInvoiceStatus reports whether s is a known invoice status value.
func ValidInvoiceStatus(s InvoiceStatus) bool {
	_, ok := invoiceTransitions[s]
	return ok
}

// CanTransitionTo reports whether the invoice may move from s to target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, t := range invoiceTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Invoice represents a bill to a customer. Items are mutable only while the
// invoice is in draft; once sent the invoice is financially frozen apart
// from its status.
type Invoice struct {
	InvoiceID        string          `json:"invoiceID"`     // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`     // FK -> companies.company_id (NON-NULL)
	InvoiceNumber    string          `json:"invoiceNumber"` // e.g. F2026-0001, unique per company
	CustomerID       string          `json:"customerID"`
	InvoiceType      InvoiceType     `json:"invoiceType"`
	InvoiceDate      time.Time       `json:"invoiceDate"`
	DueDate          time.Time       `json:"dueDate"`
	Status           InvoiceStatus   `json:"status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	VATAmount        decimal.Decimal `json:"vatAmount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	PaymentDate      *time.Time      `json:"paymentDate"`
	PaymentReference string          `json:"paymentReference"`
	Notes            string          `json:"notes"`
	AuditFields

	Items []InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is an itemized charge on an invoice. WorkOrderID records the
// originating work order for items produced by the conversion pipeline.
// TotalPrice is VAT-exclusive: quantity times unit price.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`    // Primary Key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> invoices.invoice_id (NON-NULL)
	WorkOrderID *string         `json:"workOrderID"`
	ArticleID   *string         `json:"articleID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	SortOrder   int             `json:"sortOrder"`
}
