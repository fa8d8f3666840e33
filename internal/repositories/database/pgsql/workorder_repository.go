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

type PgxWorkOrderRepository struct {
	BaseRepository
}

// newPgxWorkOrderRepository creates a new repository for work order data.
func newPgxWorkOrderRepository(pool *pgxpool.Pool) portsrepo.WorkOrderRepositoryFacade {
	return &PgxWorkOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkOrderRepositoryFacade = (*PgxWorkOrderRepository)(nil)

const workOrderColumns = `
	work_order_id, company_id, work_order_number, quote_id, customer_id, location_id,
	title, description, work_date, status, technician_id, work_performed,
	subtotal, vat_amount, total_amount, notes,
	created_at, created_by, last_updated_at, last_updated_by
`

const workOrderLineColumns = `
	line_id, work_order_id, article_id, description, quantity, unit_price, vat_rate,
	line_total, sort_order
`

const timeEntryColumns = `
	entry_id, company_id, work_order_id, user_id, entry_date, hours, hourly_rate,
	description, billable, vat_rate,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanWorkOrder(row pgx.Row) (*models.WorkOrder, error) {
	var m models.WorkOrder
	err := row.Scan(
		&m.WorkOrderID,
		&m.CompanyID,
		&m.WorkOrderNumber,
		&m.QuoteID,
		&m.CustomerID,
		&m.LocationID,
		&m.Title,
		&m.Description,
		&m.WorkDate,
		&m.Status,
		&m.TechnicianID,
		&m.WorkPerformed,
		&m.Subtotal,
		&m.VATAmount,
		&m.TotalAmount,
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

func scanWorkOrderLine(row pgx.Row) (*models.WorkOrderLine, error) {
	var m models.WorkOrderLine
	err := row.Scan(
		&m.LineID,
		&m.WorkOrderID,
		&m.ArticleID,
		&m.Description,
		&m.Quantity,
		&m.UnitPrice,
		&m.VATRate,
		&m.LineTotal,
		&m.SortOrder,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanTimeEntry(row pgx.Row) (*models.TimeEntry, error) {
	var m models.TimeEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.WorkOrderID,
		&m.UserID,
		&m.EntryDate,
		&m.Hours,
		&m.HourlyRate,
		&m.Description,
		&m.Billable,
		&m.VATRate,
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

func (r *PgxWorkOrderRepository) loadWorkOrderLines(ctx context.Context, workOrderID string) ([]models.WorkOrderLine, error) {
	query := `SELECT ` + workOrderLineColumns + ` FROM work_order_lines WHERE work_order_id = $1 ORDER BY sort_order ASC;`

	rows, err := r.Pool.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]models.WorkOrderLine, 0)
	for rows.Next() {
		m, err := scanWorkOrderLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *m)
	}
	return lines, rows.Err()
}

func (r *PgxWorkOrderRepository) loadTimeEntries(ctx context.Context, workOrderID string) ([]models.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM work_order_time_entries WHERE work_order_id = $1 ORDER BY entry_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TimeEntry, 0)
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	return entries, rows.Err()
}

// FindWorkOrderByID retrieves a work order with its lines and time entries,
// scoped to a company.
func (r *PgxWorkOrderRepository) FindWorkOrderByID(ctx context.Context, companyID string, workOrderID string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE company_id = $1 AND work_order_id = $2;`

	m, err := scanWorkOrder(r.Pool.QueryRow(ctx, query, companyID, workOrderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find work order "+workOrderID, err)
	}

	lines, err := r.loadWorkOrderLines(ctx, workOrderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load lines for work order "+workOrderID, err)
	}
	entries, err := r.loadTimeEntries(ctx, workOrderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load time entries for work order "+workOrderID, err)
	}

	order := mapping.ToDomainWorkOrder(*m)
	order.Lines = mapping.ToDomainWorkOrderLineSlice(lines)
	order.TimeEntries = mapping.ToDomainTimeEntrySlice(entries)
	return &order, nil
}

// FindWorkOrdersByIDs retrieves multiple work orders by ID without their
// collections. Missing IDs are simply absent from the result.
func (r *PgxWorkOrderRepository) FindWorkOrdersByIDs(ctx context.Context, companyID string, workOrderIDs []string) ([]domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE company_id = $1 AND work_order_id = ANY($2);`

	rows, err := r.Pool.Query(ctx, query, companyID, workOrderIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find work orders by ids", err)
	}
	defer rows.Close()

	orders := make([]domain.WorkOrder, 0, len(workOrderIDs))
	for rows.Next() {
		m, err := scanWorkOrder(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan work order row", err)
		}
		orders = append(orders, mapping.ToDomainWorkOrder(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating work order rows", err)
	}
	return orders, nil
}

// ListWorkOrders retrieves a filtered page of work orders using token-based
// pagination. The cursor is the (work_date, created_at) tuple of the last
// order on the previous page. Collections are not loaded.
func (r *PgxWorkOrderRepository) ListWorkOrders(ctx context.Context, companyID string, filter portsrepo.ListWorkOrdersFilter) ([]domain.WorkOrder, *string, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE company_id = $1`
	args := []any{companyID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(` AND customer_id = $%d`, len(args))
	}
	if filter.TechnicianID != "" {
		args = append(args, filter.TechnicianID)
		query += fmt.Sprintf(` AND technician_id = $%d`, len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		workDate, createdAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, workDate, createdAt)
		query += fmt.Sprintf(` AND (work_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether a next page exists.
	args = append(args, filter.Limit+1)
	query += fmt.Sprintf(` ORDER BY work_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list work orders for company "+companyID, err)
	}
	defer rows.Close()

	orders := make([]domain.WorkOrder, 0)
	for rows.Next() {
		m, err := scanWorkOrder(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan work order row", err)
		}
		orders = append(orders, mapping.ToDomainWorkOrder(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating work order rows", err)
	}

	var nextToken *string
	if len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
		last := orders[len(orders)-1]
		token := pagination.EncodeToken(last.WorkDate, last.CreatedAt)
		nextToken = &token
	}
	return orders, nextToken, nil
}

// SaveWorkOrder persists a new work order and its lines in one transaction,
// allocating the next work order number for the company and year. The
// assigned number is written back to the work order.
func (r *PgxWorkOrderRepository) SaveWorkOrder(ctx context.Context, workOrder *domain.WorkOrder, prefix string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for work order save", err)
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, workOrder.CompanyID, domain.DocumentKindWorkOrder, prefix)
	if err != nil {
		return apperrors.NewAppError(500, "failed to allocate work order number", err)
	}
	workOrder.WorkOrderNumber = number

	m := mapping.ToModelWorkOrder(*workOrder)
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		m.WorkOrderID, m.CompanyID, m.WorkOrderNumber, m.QuoteID, m.CustomerID, m.LocationID,
		m.Title, m.Description, m.WorkDate, m.Status, m.TechnicianID, m.WorkPerformed,
		m.Subtotal, m.VATAmount, m.TotalAmount, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert work order "+m.WorkOrderID, err)
	}

	if err := insertWorkOrderLines(ctx, tx, workOrder.WorkOrderID, workOrder.Lines); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit work order save", err)
	}
	return nil
}

func insertWorkOrderLines(ctx context.Context, tx pgx.Tx, workOrderID string, lines []domain.WorkOrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO work_order_lines (` + workOrderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelWorkOrderLine(line)
		batch.Queue(query,
			m.LineID, workOrderID, m.ArticleID, m.Description,
			m.Quantity, m.UnitPrice, m.VATRate, m.LineTotal, m.SortOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert work order line", err)
		}
	}
	return nil
}

// UpdateWorkOrder updates a work order's header fields.
func (r *PgxWorkOrderRepository) UpdateWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error {
	m := mapping.ToModelWorkOrder(workOrder)
	query := `
		UPDATE work_orders
		SET customer_id = $3,
		    location_id = $4,
		    title = $5,
		    description = $6,
		    work_date = $7,
		    technician_id = $8,
		    work_performed = $9,
		    notes = $10,
		    last_updated_at = $11,
		    last_updated_by = $12
		WHERE company_id = $1 AND work_order_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.WorkOrderID,
		m.CustomerID, m.LocationID, m.Title, m.Description,
		m.WorkDate, m.TechnicianID, m.WorkPerformed, m.Notes,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update work order "+m.WorkOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("work order " + m.WorkOrderID + " not found for update")
	}
	return nil
}

// ReplaceWorkOrderLines replaces the order's full material line set and
// updates the stored totals in one transaction.
func (r *PgxWorkOrderRepository) ReplaceWorkOrderLines(ctx context.Context, workOrder domain.WorkOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for line replace", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM work_order_lines WHERE work_order_id = $1;`, workOrder.WorkOrderID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for work order "+workOrder.WorkOrderID, err)
	}

	if err := insertWorkOrderLines(ctx, tx, workOrder.WorkOrderID, workOrder.Lines); err != nil {
		return err
	}

	if err := updateWorkOrderTotals(ctx, tx, workOrder); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit line replace", err)
	}
	return nil
}

func updateWorkOrderTotals(ctx context.Context, tx pgx.Tx, workOrder domain.WorkOrder) error {
	m := mapping.ToModelWorkOrder(workOrder)
	query := `
		UPDATE work_orders
		SET subtotal = $3,
		    vat_amount = $4,
		    total_amount = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE company_id = $1 AND work_order_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CompanyID, m.WorkOrderID,
		m.Subtotal, m.VATAmount, m.TotalAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for work order "+m.WorkOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("work order " + m.WorkOrderID + " not found for totals update")
	}
	return nil
}

// UpdateWorkOrderStatus updates only the lifecycle status of a work order.
func (r *PgxWorkOrderRepository) UpdateWorkOrderStatus(ctx context.Context, companyID string, workOrderID string, status domain.WorkOrderStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE work_orders
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE company_id = $1 AND work_order_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, workOrderID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of work order "+workOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("work order " + workOrderID + " not found for status update")
	}
	return nil
}

// FindTimeEntryByID retrieves a time entry by ID, scoped to a company.
func (r *PgxWorkOrderRepository) FindTimeEntryByID(ctx context.Context, companyID string, entryID string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM work_order_time_entries WHERE company_id = $1 AND entry_id = $2;`

	m, err := scanTimeEntry(r.Pool.QueryRow(ctx, query, companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find time entry "+entryID, err)
	}

	entry := mapping.ToDomainTimeEntry(*m)
	return &entry, nil
}

// ListTimeEntries retrieves all time entries for a work order.
func (r *PgxWorkOrderRepository) ListTimeEntries(ctx context.Context, companyID string, workOrderID string) ([]domain.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM work_order_time_entries
		WHERE company_id = $1 AND work_order_id = $2
		ORDER BY entry_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, workOrderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list time entries for work order "+workOrderID, err)
	}
	defer rows.Close()

	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		m, err := scanTimeEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan time entry row", err)
		}
		entries = append(entries, mapping.ToDomainTimeEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating time entry rows", err)
	}
	return entries, nil
}

// SaveTimeEntry persists a new time entry and updates the parent order's
// stored totals in one transaction.
func (r *PgxWorkOrderRepository) SaveTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for time entry save", err)
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTimeEntry(entry)
	query := `
		INSERT INTO work_order_time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		m.EntryID, m.CompanyID, m.WorkOrderID, m.UserID, m.EntryDate, m.Hours, m.HourlyRate,
		m.Description, m.Billable, m.VATRate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert time entry "+m.EntryID, err)
	}

	if err := updateWorkOrderTotals(ctx, tx, order); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit time entry save", err)
	}
	return nil
}

// UpdateTimeEntry updates a time entry and the parent order's totals in one
// transaction.
func (r *PgxWorkOrderRepository) UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for time entry update", err)
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTimeEntry(entry)
	query := `
		UPDATE work_order_time_entries
		SET user_id = $3,
		    entry_date = $4,
		    hours = $5,
		    hourly_rate = $6,
		    description = $7,
		    billable = $8,
		    vat_rate = $9,
		    last_updated_at = $10,
		    last_updated_by = $11
		WHERE company_id = $1 AND entry_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CompanyID, m.EntryID,
		m.UserID, m.EntryDate, m.Hours, m.HourlyRate, m.Description, m.Billable, m.VATRate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update time entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + m.EntryID + " not found for update")
	}

	if err := updateWorkOrderTotals(ctx, tx, order); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit time entry update", err)
	}
	return nil
}

// DeleteTimeEntry removes a time entry and updates the parent order's totals
// in one transaction.
func (r *PgxWorkOrderRepository) DeleteTimeEntry(ctx context.Context, companyID string, entryID string, order domain.WorkOrder) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for time entry delete", err)
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM work_order_time_entries WHERE company_id = $1 AND entry_id = $2;`, companyID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete time entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("time entry " + entryID + " not found for delete")
	}

	if err := updateWorkOrderTotals(ctx, tx, order); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit time entry delete", err)
	}
	return nil
}
