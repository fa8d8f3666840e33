package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row in the invoices table. (company_id, invoice_number) is
// unique.
type Invoice struct {
	InvoiceID        string          `db:"invoice_id"`
	CompanyID        string          `db:"company_id"`
	InvoiceNumber    string          `db:"invoice_number"`
	CustomerID       string          `db:"customer_id"`
	InvoiceType      string          `db:"invoice_type"`
	InvoiceDate      time.Time       `db:"invoice_date"`
	DueDate          time.Time       `db:"due_date"`
	Status           string          `db:"status"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	VATAmount        decimal.Decimal `db:"vat_amount"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	PaidAmount       decimal.Decimal `db:"paid_amount"`
	PaymentDate      *time.Time      `db:"payment_date"`
	PaymentReference string          `db:"payment_reference"`
	Notes            string          `db:"notes"`
	AuditFields
}

// InvoiceItem is a row in the invoice_items table. work_order_id records the
// originating work order for combined invoices.
type InvoiceItem struct {
	ItemID      string          `db:"item_id"`
	InvoiceID   string          `db:"invoice_id"`
	WorkOrderID *string         `db:"work_order_id"`
	ArticleID   *string         `db:"article_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	VATRate     decimal.Decimal `db:"vat_rate"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	SortOrder   int             `db:"sort_order"`
}
