package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/fieldserve/field_service_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, company_id, invoice_number, customer_id, invoice_type,
	invoice_date, due_date, status, subtotal, vat_amount, total_amount,
	paid_amount, payment_date, payment_reference, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

const invoiceItemColumns = `
	item_id, invoice_id, work_order_id, article_id, description, quantity,
	unit_price, vat_rate, total_price, sort_order
`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.InvoiceNumber,
		&m.CustomerID,
		&m.InvoiceType,
		&m.InvoiceDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.VATAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentDate,
		&m.PaymentReference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanInvoiceItem(row pgx.Row) (*models.InvoiceItem, error) {
	var m models.InvoiceItem
	err := row.Scan(
		&m.ItemID,
		&m.InvoiceID,
		&m.WorkOrderID,
		&m.ArticleID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.VATRate,
		&m.TotalPrice,
		&m.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxInvoiceRepository) loadInvoiceItems(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order ASC;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.InvoiceItem, 0)
	for rows.Next() {
		m, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindInvoiceByID retrieves an invoice with its items, scoped to a company.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND invoice_id = $2;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, companyID, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}

	items, err := r.loadInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load items for invoice "+invoiceID, err)
	}

	invoice := mapping.ToDomainInvoice(*m)
	invoice.Items = mapping.ToDomainInvoiceItemSlice(items)
	return &invoice, nil
}

// ListInvoices retrieves a filtered page of invoices using token-based
// pagination. The cursor is the (invoice_date, created_at) tuple of the last
// invoice on the previous page. Items are not loaded.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, companyID string, filter portsrepo.ListInvoicesFilter) ([]domain.Invoice, *string, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1`
	args := []any{companyID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		invoiceDate, createdAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, invoiceDate, createdAt)
		query += fmt.Sprintf(` AND (invoice_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether a next page exists.
	args = append(args, filter.Limit+1)
	query += fmt.Sprintf(` ORDER BY invoice_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list invoices for company "+companyID, err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var nextToken *string
	if len(invoices) > filter.Limit {
		invoices = invoices[:filter.Limit]
		last := invoices[len(invoices)-1]
		token := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		nextToken = &token
	}
	return invoices, nextToken, nil
}

func (r *PgxInvoiceRepository) insertInvoice(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, prefix string) error {
	number, err := nextDocumentNumber(ctx, tx, invoice.CompanyID, domain.DocumentKindInvoice, prefix)
	if err != nil {
		return apperrors.NewAppError(500, "failed to allocate invoice number", err)
	}
	invoice.InvoiceNumber = number

	m := mapping.ToModelInvoice(*invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID, m.CompanyID, m.InvoiceNumber, m.CustomerID, m.InvoiceType,
		m.InvoiceDate, m.DueDate, m.Status, m.Subtotal, m.VATAmount, m.TotalAmount,
		m.PaidAmount, m.PaymentDate, m.PaymentReference, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	return insertInvoiceItems(ctx, tx, invoice.InvoiceID, invoice.Items)
}

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelInvoiceItem(item)
		batch.Queue(query,
			m.ItemID, invoiceID, m.WorkOrderID, m.ArticleID, m.Description,
			m.Quantity, m.UnitPrice, m.VATRate, m.TotalPrice, m.SortOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert invoice item", err)
		}
	}
	return nil
}

// SaveInvoice persists a new invoice and its items in one transaction,
// allocating the next invoice number for the company and year. The assigned
// number is written back to the invoice.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice, prefix string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for invoice save", err)
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertInvoice(ctx, tx, invoice, prefix); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit invoice save", err)
	}
	return nil
}

// SaveInvoiceFromWorkOrders persists a combined invoice and flips the source
// work orders to invoiced, all in one transaction. A row count mismatch on
// the status flip means another request changed one of the orders since the
// caller validated them, so the whole batch rolls back.
func (r *PgxInvoiceRepository) SaveInvoiceFromWorkOrders(ctx context.Context, invoice *domain.Invoice, prefix string, workOrderIDs []string, updatedByUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for combined invoice save", err)
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertInvoice(ctx, tx, invoice, prefix); err != nil {
		return err
	}

	query := `
		UPDATE work_orders
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE company_id = $1 AND work_order_id = ANY($2) AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query,
		invoice.CompanyID, workOrderIDs,
		string(domain.WorkOrderInvoiced), invoice.LastUpdatedAt, updatedByUserID,
		string(domain.WorkOrderCompleted),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark work orders invoiced", err)
	}
	if cmdTag.RowsAffected() != int64(len(workOrderIDs)) {
		return fmt.Errorf("%w: a work order changed state during invoicing", apperrors.ErrConflict)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit combined invoice save", err)
	}
	return nil
}

// UpdateInvoice updates an invoice's header fields.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET customer_id = $3,
		    invoice_date = $4,
		    due_date = $5,
		    notes = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE company_id = $1 AND invoice_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.InvoiceID,
		m.CustomerID, m.InvoiceDate, m.DueDate, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for update")
	}
	return nil
}

// ReplaceInvoiceItems replaces the invoice's full item set and updates the
// stored totals in one transaction.
func (r *PgxInvoiceRepository) ReplaceInvoiceItems(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for item replace", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for invoice "+invoice.InvoiceID, err)
	}

	if err := insertInvoiceItems(ctx, tx, invoice.InvoiceID, invoice.Items); err != nil {
		return err
	}

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET subtotal = $3,
		    vat_amount = $4,
		    total_amount = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE company_id = $1 AND invoice_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CompanyID, m.InvoiceID,
		m.Subtotal, m.VATAmount, m.TotalAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for item replace")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit item replace", err)
	}
	return nil
}

// UpdateInvoiceStatus updates the lifecycle status and payment fields of an
// invoice.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET status = $3,
		    paid_amount = $4,
		    payment_date = $5,
		    payment_reference = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE company_id = $1 AND invoice_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.InvoiceID,
		m.Status, m.PaidAmount, m.PaymentDate, m.PaymentReference,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + m.InvoiceID + " not found for status update")
	}
	return nil
}

// MarkOverdueInvoices flips every sent invoice whose due date lies before
// asOf to overdue and returns how many were affected.
func (r *PgxInvoiceRepository) MarkOverdueInvoices(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error) {
	query := `
		UPDATE invoices
		SET status = $3,
		    last_updated_at = $2,
		    last_updated_by = $4
		WHERE company_id = $1 AND status = $5 AND due_date < $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		companyID, asOf, string(domain.InvoiceOverdue), updatedByUserID, string(domain.InvoiceSent),
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue invoices for company "+companyID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteInvoice removes an invoice, scoped to a company. Its items go with it
// through the cascade on invoice_items.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, companyID string, invoiceID string) error {
	query := `DELETE FROM invoices WHERE company_id = $1 AND invoice_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found for delete")
	}
	return nil
}
