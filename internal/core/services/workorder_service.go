package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/middleware"
	"github.com/fieldserve/field_service_app/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// workOrderService handles the work order lifecycle and time registration.
// Once a work order is invoiced it is frozen: no header, line or time entry
// mutation touches it again.
type workOrderService struct {
	workOrderRepo portsrepo.WorkOrderRepositoryFacade
	quoteRepo     portsrepo.QuoteRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	companyRepo   portsrepo.CompanyRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
	audit         *auditLogService
}

// NewWorkOrderService creates a new work order service.
func NewWorkOrderService(workOrderRepo portsrepo.WorkOrderRepositoryFacade, quoteRepo portsrepo.QuoteRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService) portssvc.WorkOrderSvcFacade {
	return &workOrderService{
		workOrderRepo: workOrderRepo,
		quoteRepo:     quoteRepo,
		customerRepo:  customerRepo,
		companyRepo:   companyRepo,
		userRepo:      userRepo,
		audit:         audit,
	}
}

var _ portssvc.WorkOrderSvcFacade = (*workOrderService)(nil)

// GetWorkOrderByID retrieves a work order with its lines and time entries.
func (s *workOrderService) GetWorkOrderByID(ctx context.Context, companyID string, workOrderID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find work order", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		}
		return nil, err
	}
	if order.CompanyID != companyID {
		logger.Warn("Work order found but belongs to a different company",
			slog.String("work_order_id", workOrderID),
			slog.String("owner_company", order.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

// ListWorkOrders retrieves a filtered page of work orders.
func (s *workOrderService) ListWorkOrders(ctx context.Context, companyID string, params dto.ListWorkOrdersParams) ([]domain.WorkOrder, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Status != "" && !domain.ValidWorkOrderStatus(domain.WorkOrderStatus(params.Status)) {
		return nil, nil, fmt.Errorf("%w: unknown work order status %q", apperrors.ErrValidation, params.Status)
	}

	orders, nextToken, err := s.workOrderRepo.ListWorkOrders(ctx, companyID, portsrepo.ListWorkOrdersFilter{
		Status:       params.Status,
		CustomerID:   params.CustomerID,
		TechnicianID: params.TechnicianID,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	})
	if err != nil {
		logger.Error("Failed to list work orders", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	if orders == nil {
		orders = []domain.WorkOrder{}
	}
	return orders, nextToken, nil
}

// CreateWorkOrder persists a new planned work order with its lines.
func (s *workOrderService) CreateWorkOrder(ctx context.Context, companyID string, req dto.CreateWorkOrderRequest, userID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to validate customer: %w", err)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, req.CustomerID)
	}
	if req.LocationID != nil {
		if _, err := s.customerRepo.FindLocationByID(ctx, companyID, req.CustomerID, *req.LocationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: location %s not found for customer", apperrors.ErrValidation, *req.LocationID)
			}
			return nil, fmt.Errorf("failed to validate location: %w", err)
		}
	}
	if req.TechnicianID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, companyID, *req.TechnicianID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: technician %s not found", apperrors.ErrValidation, *req.TechnicianID)
			}
			return nil, fmt.Errorf("failed to validate technician: %w", err)
		}
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	workDate := now
	if req.WorkDate != nil {
		workDate = *req.WorkDate
	}

	orderID := uuid.NewString()
	lines, err := s.buildLines(orderID, req.Lines, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.WorkOrderTotals(lines, nil)

	order := domain.WorkOrder{
		WorkOrderID:  orderID,
		CompanyID:    companyID,
		CustomerID:   req.CustomerID,
		LocationID:   req.LocationID,
		Title:        req.Title,
		Description:  req.Description,
		WorkDate:     workDate,
		Status:       domain.WorkOrderPlanned,
		TechnicianID: req.TechnicianID,
		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		TotalAmount:  totals.TotalAmount,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}

	if err := s.workOrderRepo.SaveWorkOrder(ctx, &order, company.NumberPrefix(domain.DocumentKindWorkOrder)); err != nil {
		logger.Error("Failed to save work order", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "work_order", order.WorkOrderID, domain.AuditCreate, fmt.Sprintf("created work order %s", order.WorkOrderNumber))

	logger.Info("Work order created", slog.String("work_order_id", order.WorkOrderID), slog.String("work_order_number", order.WorkOrderNumber))
	return &order, nil
}

// CreateWorkOrderFromQuote converts an accepted quote into a planned work
// order carrying the quote's lines and a reference back to the quote.
func (s *workOrderService) CreateWorkOrderFromQuote(ctx context.Context, companyID string, quoteID string, req dto.ConvertQuoteRequest, userID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteAccepted {
		return nil, fmt.Errorf("%w: quote %s is %s, only accepted quotes can be converted", apperrors.ErrStateTransition, quote.QuoteNumber, quote.Status)
	}
	if req.TechnicianID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, companyID, *req.TechnicianID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: technician %s not found", apperrors.ErrValidation, *req.TechnicianID)
			}
			return nil, fmt.Errorf("failed to validate technician: %w", err)
		}
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	workDate := now
	if req.WorkDate != nil {
		workDate = *req.WorkDate
	}

	orderID := uuid.NewString()
	lines := make([]domain.WorkOrderLine, len(quote.Lines))
	for i, ql := range quote.Lines {
		lines[i] = domain.WorkOrderLine{
			LineID:      uuid.NewString(),
			WorkOrderID: orderID,
			ArticleID:   ql.ArticleID,
			Description: ql.Description,
			Quantity:    ql.Quantity,
			UnitPrice:   ql.UnitPrice,
			VATRate:     ql.VATRate,
			LineTotal:   ql.LineTotal,
			SortOrder:   ql.SortOrder,
		}
	}
	totals := billing.WorkOrderTotals(lines, nil)

	order := domain.WorkOrder{
		WorkOrderID:  orderID,
		CompanyID:    companyID,
		QuoteID:      &quote.QuoteID,
		CustomerID:   quote.CustomerID,
		LocationID:   quote.LocationID,
		Title:        quote.Title,
		Description:  quote.Description,
		WorkDate:     workDate,
		Status:       domain.WorkOrderPlanned,
		TechnicianID: req.TechnicianID,
		Subtotal:     totals.Subtotal,
		VATAmount:    totals.VATAmount,
		TotalAmount:  totals.TotalAmount,
		Notes:        quote.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}

	if err := s.workOrderRepo.SaveWorkOrder(ctx, &order, company.NumberPrefix(domain.DocumentKindWorkOrder)); err != nil {
		logger.Error("Failed to save work order from quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to convert quote: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "work_order", order.WorkOrderID, domain.AuditConvert, fmt.Sprintf("converted quote %s into work order %s", quote.QuoteNumber, order.WorkOrderNumber))

	logger.Info("Quote converted to work order",
		slog.String("quote_id", quoteID),
		slog.String("work_order_id", order.WorkOrderID),
		slog.String("work_order_number", order.WorkOrderNumber),
	)
	return &order, nil
}

// UpdateWorkOrder updates the header fields of a work order that has not been
// invoiced.
func (s *workOrderService) UpdateWorkOrder(ctx context.Context, companyID string, workOrderID string, req dto.UpdateWorkOrderRequest, userID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return nil, err
	}

	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.WorkOrderInvoiced {
		return nil, fmt.Errorf("%w: work order %s is invoiced and frozen", apperrors.ErrStateTransition, order.WorkOrderNumber)
	}

	if req.LocationID != nil {
		if _, err := s.customerRepo.FindLocationByID(ctx, companyID, order.CustomerID, *req.LocationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: location %s not found for customer", apperrors.ErrValidation, *req.LocationID)
			}
			return nil, fmt.Errorf("failed to validate location: %w", err)
		}
		order.LocationID = req.LocationID
	}
	if req.Title != nil {
		order.Title = *req.Title
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.WorkDate != nil {
		order.WorkDate = *req.WorkDate
	}
	if req.TechnicianID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, companyID, *req.TechnicianID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: technician %s not found", apperrors.ErrValidation, *req.TechnicianID)
			}
			return nil, fmt.Errorf("failed to validate technician: %w", err)
		}
		order.TechnicianID = req.TechnicianID
	}
	if req.WorkPerformed != nil {
		order.WorkPerformed = *req.WorkPerformed
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.workOrderRepo.UpdateWorkOrder(ctx, *order); err != nil {
		logger.Error("Failed to update work order", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "work_order", workOrderID, domain.AuditUpdate, fmt.Sprintf("updated work order %s", order.WorkOrderNumber))

	logger.Info("Work order updated", slog.String("work_order_id", workOrderID))
	return order, nil
}

// ReplaceWorkOrderLines replaces the full material line set of a work order
// that has not been invoiced and recomputes the totals.
func (s *workOrderService) ReplaceWorkOrderLines(ctx context.Context, companyID string, workOrderID string, req dto.ReplaceWorkOrderLinesRequest, userID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return nil, err
	}

	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.WorkOrderInvoiced {
		return nil, fmt.Errorf("%w: work order %s is invoiced and frozen", apperrors.ErrStateTransition, order.WorkOrderNumber)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	lines, err := s.buildLines(workOrderID, req.Lines, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.WorkOrderTotals(lines, order.TimeEntries)

	order.Lines = lines
	order.Subtotal = totals.Subtotal
	order.VATAmount = totals.VATAmount
	order.TotalAmount = totals.TotalAmount
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.workOrderRepo.ReplaceWorkOrderLines(ctx, *order); err != nil {
		logger.Error("Failed to replace work order lines", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to replace work order lines: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "work_order", workOrderID, domain.AuditUpdate, fmt.Sprintf("replaced lines of work order %s", order.WorkOrderNumber))

	logger.Info("Work order lines replaced", slog.String("work_order_id", workOrderID), slog.Int("line_count", len(lines)))
	return order, nil
}

// UpdateWorkOrderStatus applies a lifecycle transition. The invoiced status
// is set exclusively by the invoicing pipeline.
func (s *workOrderService) UpdateWorkOrderStatus(ctx context.Context, companyID string, workOrderID string, status domain.WorkOrderStatus, userID string) (*domain.WorkOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return nil, err
	}

	if !domain.ValidWorkOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown work order status %q", apperrors.ErrValidation, status)
	}
	if status == domain.WorkOrderInvoiced {
		return nil, fmt.Errorf("%w: work orders become invoiced only through invoicing", apperrors.ErrStateTransition)
	}

	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: work order %s cannot move from %s to %s", apperrors.ErrStateTransition, order.WorkOrderNumber, order.Status, status)
	}

	now := time.Now().UTC()
	if err := s.workOrderRepo.UpdateWorkOrderStatus(ctx, companyID, workOrderID, status, userID, now); err != nil {
		logger.Error("Failed to update work order status", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to update work order status: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "work_order", workOrderID, domain.AuditStatusChange, fmt.Sprintf("work order %s: %s -> %s", order.WorkOrderNumber, order.Status, status))

	order.Status = status
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	logger.Info("Work order status updated", slog.String("work_order_id", workOrderID), slog.String("status", string(status)))
	return order, nil
}

// ListTimeEntries retrieves all time entries for a work order.
func (s *workOrderService) ListTimeEntries(ctx context.Context, companyID string, workOrderID string) ([]domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID); err != nil {
		return nil, err
	}

	entries, err := s.workOrderRepo.ListTimeEntries(ctx, companyID, workOrderID)
	if err != nil {
		logger.Error("Failed to list time entries", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	if entries == nil {
		return []domain.TimeEntry{}, nil
	}
	return entries, nil
}

// CreateTimeEntry registers hours against a work order that has not been
// invoiced and recomputes the order's totals.
func (s *workOrderService) CreateTimeEntry(ctx context.Context, companyID string, workOrderID string, req dto.CreateTimeEntryRequest, userID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return nil, err
	}

	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, workOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.WorkOrderInvoiced {
		return nil, fmt.Errorf("%w: work order %s is invoiced and frozen", apperrors.ErrStateTransition, order.WorkOrderNumber)
	}

	if req.Hours.IsNegative() || req.Hours.IsZero() {
		return nil, fmt.Errorf("%w: hours must be positive", apperrors.ErrValidation)
	}
	if req.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
	}

	entryUserID := userID
	if req.UserID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, companyID, *req.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, *req.UserID)
			}
			return nil, fmt.Errorf("failed to validate user: %w", err)
		}
		entryUserID = *req.UserID
	}

	vatRate, err := s.resolveVATRate(ctx, companyID, req.VATRate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryDate := now
	if req.EntryDate != nil {
		entryDate = *req.EntryDate
	}
	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	entry := domain.TimeEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		WorkOrderID: workOrderID,
		UserID:      entryUserID,
		EntryDate:   entryDate,
		Hours:       req.Hours,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
		Billable:    billable,
		VATRate:     vatRate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	totals := billing.WorkOrderTotals(order.Lines, append(order.TimeEntries, entry))
	order.Subtotal = totals.Subtotal
	order.VATAmount = totals.VATAmount
	order.TotalAmount = totals.TotalAmount
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.workOrderRepo.SaveTimeEntry(ctx, entry, *order); err != nil {
		logger.Error("Failed to save time entry", slog.String("error", err.Error()), slog.String("work_order_id", workOrderID))
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "time_entry", entry.EntryID, domain.AuditCreate, fmt.Sprintf("registered %s hours on work order %s", entry.Hours.String(), order.WorkOrderNumber))

	logger.Info("Time entry created", slog.String("entry_id", entry.EntryID), slog.String("work_order_id", workOrderID))
	return &entry, nil
}

// UpdateTimeEntry updates a time entry and recomputes the order's totals.
func (s *workOrderService) UpdateTimeEntry(ctx context.Context, companyID string, entryID string, req dto.UpdateTimeEntryRequest, userID string) (*domain.TimeEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return nil, err
	}

	entry, err := s.workOrderRepo.FindTimeEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, entry.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.WorkOrderInvoiced {
		return nil, fmt.Errorf("%w: work order %s is invoiced and frozen", apperrors.ErrStateTransition, order.WorkOrderNumber)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Hours != nil {
		if req.Hours.IsNegative() || req.Hours.IsZero() {
			return nil, fmt.Errorf("%w: hours must be positive", apperrors.ErrValidation)
		}
		entry.Hours = *req.Hours
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
		}
		entry.HourlyRate = *req.HourlyRate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Billable != nil {
		entry.Billable = *req.Billable
	}
	if req.VATRate != nil {
		if req.VATRate.IsNegative() {
			return nil, fmt.Errorf("%w: VAT rate must not be negative", apperrors.ErrValidation)
		}
		entry.VATRate = *req.VATRate
	}

	now := time.Now().UTC()
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	entries := make([]domain.TimeEntry, len(order.TimeEntries))
	for i, e := range order.TimeEntries {
		if e.EntryID == entryID {
			entries[i] = *entry
		} else {
			entries[i] = e
		}
	}
	totals := billing.WorkOrderTotals(order.Lines, entries)
	order.Subtotal = totals.Subtotal
	order.VATAmount = totals.VATAmount
	order.TotalAmount = totals.TotalAmount
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID

	if err := s.workOrderRepo.UpdateTimeEntry(ctx, *entry, *order); err != nil {
		logger.Error("Failed to update time entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "time_entry", entryID, domain.AuditUpdate, fmt.Sprintf("updated time entry on work order %s", order.WorkOrderNumber))

	logger.Info("Time entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteTimeEntry removes a time entry and recomputes the order's totals.
func (s *workOrderService) DeleteTimeEntry(ctx context.Context, companyID string, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales, domain.RoleTechnician); err != nil {
		return err
	}

	entry, err := s.workOrderRepo.FindTimeEntryByID(ctx, companyID, entryID)
	if err != nil {
		return err
	}
	order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, entry.WorkOrderID)
	if err != nil {
		return err
	}
	if order.Status == domain.WorkOrderInvoiced {
		return fmt.Errorf("%w: work order %s is invoiced and frozen", apperrors.ErrStateTransition, order.WorkOrderNumber)
	}

	remaining := make([]domain.TimeEntry, 0, len(order.TimeEntries))
	for _, e := range order.TimeEntries {
		if e.EntryID != entryID {
			remaining = append(remaining, e)
		}
	}
	totals := billing.WorkOrderTotals(order.Lines, remaining)
	order.Subtotal = totals.Subtotal
	order.VATAmount = totals.VATAmount
	order.TotalAmount = totals.TotalAmount
	order.LastUpdatedAt = time.Now().UTC()
	order.LastUpdatedBy = userID

	if err := s.workOrderRepo.DeleteTimeEntry(ctx, companyID, entryID, *order); err != nil {
		logger.Error("Failed to delete time entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "time_entry", entryID, domain.AuditUpdate, fmt.Sprintf("deleted time entry from work order %s", order.WorkOrderNumber))

	logger.Info("Time entry deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *workOrderService) buildLines(workOrderID string, reqs []dto.WorkOrderLineRequest, defaultVATRate decimal.Decimal) ([]domain.WorkOrderLine, error) {
	lines := make([]domain.WorkOrderLine, len(reqs))
	for i, lr := range reqs {
		if lr.Quantity.IsNegative() || lr.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: line %d: quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if lr.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		vatRate := defaultVATRate
		if lr.VATRate != nil {
			if lr.VATRate.IsNegative() {
				return nil, fmt.Errorf("%w: line %d: VAT rate must not be negative", apperrors.ErrValidation, i+1)
			}
			vatRate = *lr.VATRate
		}
		lines[i] = domain.WorkOrderLine{
			LineID:      uuid.NewString(),
			WorkOrderID: workOrderID,
			ArticleID:   lr.ArticleID,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitPrice:   lr.UnitPrice,
			VATRate:     vatRate,
			LineTotal:   billing.LineTotal(lr.Quantity, lr.UnitPrice),
			SortOrder:   i,
		}
	}
	return lines, nil
}

func (s *workOrderService) resolveVATRate(ctx context.Context, companyID string, rate *decimal.Decimal) (decimal.Decimal, error) {
	if rate != nil {
		if rate.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: VAT rate must not be negative", apperrors.ErrValidation)
		}
		return *rate, nil
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve default VAT rate: %w", err)
	}
	return company.DefaultVATRate, nil
}
