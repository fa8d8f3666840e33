package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderStatus indicates the lifecycle state of a work order.
type WorkOrderStatus string

const (
	WorkOrderPlanned    WorkOrderStatus = "planned"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderInvoiced   WorkOrderStatus = "invoiced"
)

// workOrderTransitions lists the legal transitions per current status.
// planned may jump straight to completed for after-the-fact corrections.
// invoiced is strictly terminal: billed work never changes.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderPlanned:    {WorkOrderInProgress, WorkOrderCompleted},
	WorkOrderInProgress: {WorkOrderCompleted},
	WorkOrderCompleted:  {WorkOrderInvoiced},
	WorkOrderInvoiced:   {},
}

// ValidWorkOrderStatus reports whether s is a known work order status value.
func ValidWorkOrderStatus(s WorkOrderStatus) bool {
	_, ok := workOrderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the work order may move from s to target.
func (s WorkOrderStatus) CanTransitionTo(target WorkOrderStatus) bool {
	for _, t := range workOrderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// WorkOrder represents scheduled or performed field work. Totals combine
// material lines and billable time entries and are recomputed on every
// mutation of either collection.
type WorkOrder struct {
	WorkOrderID     string          `json:"workOrderID"`     // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`       // FK -> companies.company_id (NON-NULL)
	WorkOrderNumber string          `json:"workOrderNumber"` // e.g. W2026-0001, unique per company
	QuoteID         *string         `json:"quoteID"`
	CustomerID      string          `json:"customerID"`
	LocationID      *string         `json:"locationID"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	WorkDate        time.Time       `json:"workDate"`
	Status          WorkOrderStatus `json:"status"`
	TechnicianID    *string         `json:"technicianID"`
	WorkPerformed   string          `json:"workPerformed"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Notes           string          `json:"notes"`
	AuditFields

	Lines       []WorkOrderLine `json:"lines,omitempty"`
	TimeEntries []TimeEntry     `json:"timeEntries,omitempty"`
}

// WorkOrderLine is a material charge on a work order. LineTotal is
// VAT-exclusive: quantity times unit price.
type WorkOrderLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	WorkOrderID string          `json:"workOrderID"` // FK -> work_orders.work_order_id (NON-NULL)
	ArticleID   *string         `json:"articleID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	SortOrder   int             `json:"sortOrder"`
}

// TimeEntry records registered hours against a work order. Only billable
// entries contribute to the order's totals, at hours times hourly rate.
type TimeEntry struct {
	EntryID     string          `json:"entryID"`     // Primary Key (UUID)
	CompanyID   string          `json:"companyID"`   // FK -> companies.company_id (NON-NULL)
	WorkOrderID string          `json:"workOrderID"` // FK -> work_orders.work_order_id (NON-NULL)
	UserID      string          `json:"userID"`      // Who performed the work
	EntryDate   time.Time       `json:"entryDate"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
	Description string          `json:"description"`
	Billable    bool            `json:"billable"`
	VATRate     decimal.Decimal `json:"vatRate"`
	AuditFields
}

// BillableAmount returns hours times hourly rate for billable entries,
// zero otherwise.
func (t TimeEntry) BillableAmount() decimal.Decimal {
	if !t.Billable {
		return decimal.Zero
	}
	return t.Hours.Mul(t.HourlyRate)
}
