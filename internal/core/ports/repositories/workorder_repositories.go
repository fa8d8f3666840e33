package repositories

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// ListWorkOrdersFilter narrows work order list queries.
type ListWorkOrdersFilter struct {
	Status       string
	CustomerID   string
	TechnicianID string
	Limit        int
	NextToken    *string
}

// WorkOrderReader defines read operations for work order data
type WorkOrderReader interface {
	// FindWorkOrderByID retrieves a work order with its lines and time
	// entries, scoped to a company.
	FindWorkOrderByID(ctx context.Context, companyID string, workOrderID string) (*domain.WorkOrder, error)

	// FindWorkOrdersByIDs retrieves multiple work orders by ID without
	// their collections. Missing IDs are simply absent from the result.
	FindWorkOrdersByIDs(ctx context.Context, companyID string, workOrderIDs []string) ([]domain.WorkOrder, error)

	// ListWorkOrders retrieves a filtered page of work orders using
	// token-based pagination. Collections are not loaded.
	ListWorkOrders(ctx context.Context, companyID string, filter ListWorkOrdersFilter) ([]domain.WorkOrder, *string, error)
}

// WorkOrderWriter defines write operations for work order data
type WorkOrderWriter interface {
	// SaveWorkOrder persists a new work order and its lines in one
	// transaction, allocating the next work order number for the company
	// and year. The assigned number is written back to the work order.
	SaveWorkOrder(ctx context.Context, workOrder *domain.WorkOrder, prefix string) error

	// UpdateWorkOrder updates a work order's header fields.
	UpdateWorkOrder(ctx context.Context, workOrder domain.WorkOrder) error

	// ReplaceWorkOrderLines replaces the order's full material line set and
	// updates the stored totals in one transaction.
	ReplaceWorkOrderLines(ctx context.Context, workOrder domain.WorkOrder) error

	// UpdateWorkOrderStatus updates only the lifecycle status of a work order.
	UpdateWorkOrderStatus(ctx context.Context, companyID string, workOrderID string, status domain.WorkOrderStatus, updatedByUserID string, updatedAt time.Time) error
}

// TimeEntryReader defines read operations for time entries
type TimeEntryReader interface {
	// FindTimeEntryByID retrieves a time entry by ID, scoped to a company.
	FindTimeEntryByID(ctx context.Context, companyID string, entryID string) (*domain.TimeEntry, error)

	// ListTimeEntries retrieves all time entries for a work order.
	ListTimeEntries(ctx context.Context, companyID string, workOrderID string) ([]domain.TimeEntry, error)
}

// TimeEntryWriter defines write operations for time entries. Every mutation
// carries the recomputed parent order so entry and totals change in one
// transaction.
type TimeEntryWriter interface {
	// SaveTimeEntry persists a new time entry and updates the parent
	// order's stored totals.
	SaveTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error

	// UpdateTimeEntry updates a time entry and the parent order's totals.
	UpdateTimeEntry(ctx context.Context, entry domain.TimeEntry, order domain.WorkOrder) error

	// DeleteTimeEntry removes a time entry and updates the parent order's
	// totals.
	DeleteTimeEntry(ctx context.Context, companyID string, entryID string, order domain.WorkOrder) error
}

// WorkOrderRepositoryFacade combines all work-order-related repository interfaces
type WorkOrderRepositoryFacade interface {
	WorkOrderReader
	WorkOrderWriter
	TimeEntryReader
	TimeEntryWriter
}
