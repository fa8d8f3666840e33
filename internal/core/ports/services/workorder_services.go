package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// WorkOrderReaderSvc defines read operations for work order data
type WorkOrderReaderSvc interface {
	// GetWorkOrderByID retrieves a work order with its lines and time entries.
	GetWorkOrderByID(ctx context.Context, companyID string, workOrderID string) (*domain.WorkOrder, error)

	// ListWorkOrders retrieves a filtered page of work orders using
	// token-based pagination.
	ListWorkOrders(ctx context.Context, companyID string, params dto.ListWorkOrdersParams) ([]domain.WorkOrder, *string, error)
}

// WorkOrderWriterSvc defines write operations for work order data
type WorkOrderWriterSvc interface {
	// CreateWorkOrder persists a new planned work order with its lines,
	// allocating the next work order number and computing the totals.
	CreateWorkOrder(ctx context.Context, companyID string, req dto.CreateWorkOrderRequest, userID string) (*domain.WorkOrder, error)

	// CreateWorkOrderFromQuote converts an accepted quote into a planned
	// work order carrying the quote's lines and a reference to the quote.
	CreateWorkOrderFromQuote(ctx context.Context, companyID string, quoteID string, req dto.ConvertQuoteRequest, userID string) (*domain.WorkOrder, error)

	// UpdateWorkOrder updates the header fields of a work order that has
	// not been invoiced.
	UpdateWorkOrder(ctx context.Context, companyID string, workOrderID string, req dto.UpdateWorkOrderRequest, userID string) (*domain.WorkOrder, error)

	// ReplaceWorkOrderLines replaces the full material line set of a work
	// order that has not been invoiced and recomputes the totals.
	ReplaceWorkOrderLines(ctx context.Context, companyID string, workOrderID string, req dto.ReplaceWorkOrderLinesRequest, userID string) (*domain.WorkOrder, error)

	// UpdateWorkOrderStatus applies a lifecycle transition.
	UpdateWorkOrderStatus(ctx context.Context, companyID string, workOrderID string, status domain.WorkOrderStatus, userID string) (*domain.WorkOrder, error)
}

// TimeEntrySvc defines operations for registering hours on work orders
type TimeEntrySvc interface {
	// ListTimeEntries retrieves all time entries for a work order.
	ListTimeEntries(ctx context.Context, companyID string, workOrderID string) ([]domain.TimeEntry, error)

	// CreateTimeEntry registers hours against a work order that has not
	// been invoiced and recomputes the order's totals.
	CreateTimeEntry(ctx context.Context, companyID string, workOrderID string, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error)

	// UpdateTimeEntry updates a time entry and recomputes the order's totals.
	UpdateTimeEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateTimeEntryRequest, userID string) (*domain.TimeEntry, error)

	// DeleteTimeEntry removes a time entry and recomputes the order's totals.
	DeleteTimeEntry(ctx context.Context, companyID string, entryID string, userID string) error
}

// WorkOrderSvcFacade combines all work-order-related service interfaces
type WorkOrderSvcFacade interface {
	WorkOrderReaderSvc
	WorkOrderWriterSvc
	TimeEntrySvc
}
