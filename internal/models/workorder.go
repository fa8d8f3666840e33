package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrder is a row in the work_orders table. (company_id, work_order_number)
// is unique.
type WorkOrder struct {
	WorkOrderID     string          `db:"work_order_id"`
	CompanyID       string          `db:"company_id"`
	WorkOrderNumber string          `db:"work_order_number"`
	QuoteID         *string         `db:"quote_id"`
	CustomerID      string          `db:"customer_id"`
	LocationID      *string         `db:"location_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	WorkDate        time.Time       `db:"work_date"`
	Status          string          `db:"status"`
	TechnicianID    *string         `db:"technician_id"`
	WorkPerformed   string          `db:"work_performed"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	VATAmount       decimal.Decimal `db:"vat_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Notes           string          `db:"notes"`
	AuditFields
}

// WorkOrderLine is a row in the work_order_lines table.
type WorkOrderLine struct {
	LineID      string          `db:"line_id"`
	WorkOrderID string          `db:"work_order_id"`
	ArticleID   *string         `db:"article_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	VATRate     decimal.Decimal `db:"vat_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
	SortOrder   int             `db:"sort_order"`
}

// TimeEntry is a row in the work_order_time_entries table.
type TimeEntry struct {
	EntryID     string          `db:"entry_id"`
	CompanyID   string          `db:"company_id"`
	WorkOrderID string          `db:"work_order_id"`
	UserID      string          `db:"user_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Hours       decimal.Decimal `db:"hours"`
	HourlyRate  decimal.Decimal `db:"hourly_rate"`
	Description string          `db:"description"`
	Billable    bool            `db:"billable"`
	VATRate     decimal.Decimal `db:"vat_rate"`
	AuditFields
}
