package repositories

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// ListInvoicesFilter narrows invoice list queries.
type ListInvoicesFilter struct {
	Status     string
	CustomerID string
	Limit      int
	NextToken  *string
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its items, scoped to a company.
	FindInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a filtered page of invoices using token-based
	// pagination. Items are not loaded.
	ListInvoices(ctx context.Context, companyID string, filter ListInvoicesFilter) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its items in one transaction,
	// allocating the next invoice number for the company and year. The
	// assigned number is written back to the invoice.
	SaveInvoice(ctx context.Context, invoice *domain.Invoice, prefix string) error

	// SaveInvoiceFromWorkOrders persists a combined invoice and flips the
	// source work orders to invoiced, all in one transaction. If any part
	// fails nothing is written.
	SaveInvoiceFromWorkOrders(ctx context.Context, invoice *domain.Invoice, prefix string, workOrderIDs []string, updatedByUserID string) error

	// UpdateInvoice updates an invoice's header fields.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceInvoiceItems replaces the invoice's full item set and updates
	// the stored totals in one transaction.
	ReplaceInvoiceItems(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus updates the lifecycle status and payment fields
	// of an invoice.
	UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error

	// MarkOverdueInvoices flips every sent invoice whose due date lies
	// before asOf to overdue and returns how many were affected.
	MarkOverdueInvoices(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error)

	// DeleteInvoice removes an invoice and its items, scoped to a company.
	DeleteInvoice(ctx context.Context, companyID string, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
