package services

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its items.
	GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a filtered page of invoices using token-based
	// pagination.
	ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new draft standard invoice with its items,
	// allocating the next invoice number and computing the totals. The due
	// date follows the customer's payment terms.
	CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// CreateInvoiceFromWorkOrders builds one combined invoice out of a
	// batch of completed work orders belonging to the same customer. If any
	// work order is ineligible the whole batch is rejected and nothing
	// changes.
	CreateInvoiceFromWorkOrders(ctx context.Context, companyID string, req dto.CreateInvoiceFromWorkOrdersRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice updates a draft invoice's header fields.
	UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// ReplaceInvoiceItems replaces the full item set of a draft invoice and
	// recomputes the totals.
	ReplaceInvoiceItems(ctx context.Context, companyID string, invoiceID string, req dto.ReplaceInvoiceItemsRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus applies a lifecycle transition. Moving to paid
	// records the payment fields.
	UpdateInvoiceStatus(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceStatusRequest, userID string) (*domain.Invoice, error)

	// MarkOverdueInvoices flips sent invoices past their due date to
	// overdue and returns how many were affected.
	MarkOverdueInvoices(ctx context.Context, companyID string, asOf time.Time, userID string) (int64, error)

	// DeleteInvoice removes a draft invoice together with its items. Only
	// drafts can be deleted.
	DeleteInvoice(ctx context.Context, companyID string, invoiceID string, userID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
