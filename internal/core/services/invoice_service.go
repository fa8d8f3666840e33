package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// invoiceService handles the invoice lifecycle including the combined
// invoices produced from completed work orders. Items are editable only
// while the invoice is in draft.
type invoiceService struct {
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	workOrderRepo portsrepo.WorkOrderRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	companyRepo   portsrepo.CompanyRepositoryFacade
	userRepo      portsrepo.UserRepositoryFacade
	audit         *auditLogService
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, workOrderRepo portsrepo.WorkOrderRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		workOrderRepo: workOrderRepo,
		customerRepo:  customerRepo,
		companyRepo:   companyRepo,
		userRepo:      userRepo,
		audit:         audit,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves an invoice with its items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, companyID string, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	if invoice.CompanyID != companyID {
		logger.Warn("Invoice found but belongs to a different company",
			slog.String("invoice_id", invoiceID),
			slog.String("owner_company", invoice.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// ListInvoices retrieves a filtered page of invoices.
func (s *invoiceService) ListInvoices(ctx context.Context, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Status != "" && !domain.ValidInvoiceStatus(domain.InvoiceStatus(params.Status)) {
		return nil, nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, companyID, portsrepo.ListInvoicesFilter{
		Status:     params.Status,
		CustomerID: params.CustomerID,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nextToken, nil
}

// CreateInvoice persists a new draft standard invoice. The due date is the
// invoice date plus the customer's payment terms.
func (s *invoiceService) CreateInvoice(ctx context.Context, companyID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
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

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	invoiceID := uuid.NewString()
	items, err := s.buildItems(invoiceID, req.Items, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.InvoiceTotals(items)

	invoice := domain.Invoice{
		InvoiceID:   invoiceID,
		CompanyID:   companyID,
		CustomerID:  req.CustomerID,
		InvoiceType: domain.InvoiceTypeStandard,
		InvoiceDate: invoiceDate,
		DueDate:     invoiceDate.AddDate(0, 0, customer.PaymentTerms),
		Status:      domain.InvoiceDraft,
		Subtotal:    totals.Subtotal,
		VATAmount:   totals.VATAmount,
		TotalAmount: totals.TotalAmount,
		PaidAmount:  decimal.Zero,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Items: items,
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, &invoice, company.NumberPrefix(domain.DocumentKindInvoice)); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoice.InvoiceID, domain.AuditCreate, fmt.Sprintf("created invoice %s", invoice.InvoiceNumber))

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	return &invoice, nil
}

// CreateInvoiceFromWorkOrders builds one combined invoice out of a batch of
// completed work orders belonging to the same customer. Every material line
// and billable time entry becomes an item carrying its work order reference.
// An ineligible work order rejects the whole batch.
func (s *invoiceService) CreateInvoiceFromWorkOrders(ctx context.Context, companyID string, req dto.CreateInvoiceFromWorkOrdersRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(req.WorkOrderIDs))
	orders := make([]*domain.WorkOrder, 0, len(req.WorkOrderIDs))
	var missing, notCompleted []string
	for _, id := range req.WorkOrderIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: work order %s listed twice", apperrors.ErrValidation, id)
		}
		seen[id] = true

		order, err := s.workOrderRepo.FindWorkOrderByID(ctx, companyID, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return nil, fmt.Errorf("failed to load work order %s: %w", id, err)
		}
		if order.Status != domain.WorkOrderCompleted {
			notCompleted = append(notCompleted, order.WorkOrderNumber)
			continue
		}
		orders = append(orders, order)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: work orders not found: %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}
	if len(notCompleted) > 0 {
		return nil, fmt.Errorf("%w: work orders not completed: %s", apperrors.ErrConsistency, strings.Join(notCompleted, ", "))
	}

	customerID := orders[0].CustomerID
	var otherCustomer []string
	for _, order := range orders[1:] {
		if order.CustomerID != customerID {
			otherCustomer = append(otherCustomer, order.WorkOrderNumber)
		}
	}
	if len(otherCustomer) > 0 {
		return nil, fmt.Errorf("%w: work orders belong to a different customer: %s", apperrors.ErrConsistency, strings.Join(otherCustomer, ", "))
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	invoiceDate := now
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}

	invoiceID := uuid.NewString()
	var items []domain.InvoiceItem
	for _, order := range orders {
		orderID := order.WorkOrderID
		for _, line := range order.Lines {
			items = append(items, domain.InvoiceItem{
				ItemID:      uuid.NewString(),
				InvoiceID:   invoiceID,
				WorkOrderID: &orderID,
				ArticleID:   line.ArticleID,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				VATRate:     line.VATRate,
				TotalPrice:  line.LineTotal,
				SortOrder:   len(items),
			})
		}
		for _, entry := range order.TimeEntries {
			if !entry.Billable {
				continue
			}
			description := fmt.Sprintf("Labour %s", order.WorkOrderNumber)
			if entry.Description != "" {
				description = fmt.Sprintf("Labour %s: %s", order.WorkOrderNumber, entry.Description)
			}
			items = append(items, domain.InvoiceItem{
				ItemID:      uuid.NewString(),
				InvoiceID:   invoiceID,
				WorkOrderID: &orderID,
				Description: description,
				Quantity:    entry.Hours,
				UnitPrice:   entry.HourlyRate,
				VATRate:     entry.VATRate,
				TotalPrice:  billing.LineTotal(entry.Hours, entry.HourlyRate),
				SortOrder:   len(items),
			})
		}
	}
	totals := billing.InvoiceTotals(items)

	workOrderIDs := make([]string, len(orders))
	for i, order := range orders {
		workOrderIDs[i] = order.WorkOrderID
	}

	invoice := domain.Invoice{
		InvoiceID:   invoiceID,
		CompanyID:   companyID,
		CustomerID:  customerID,
		InvoiceType: domain.InvoiceTypeCombined,
		InvoiceDate: invoiceDate,
		DueDate:     invoiceDate.AddDate(0, 0, customer.PaymentTerms),
		Status:      domain.InvoiceDraft,
		Subtotal:    totals.Subtotal,
		VATAmount:   totals.VATAmount,
		TotalAmount: totals.TotalAmount,
		PaidAmount:  decimal.Zero,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Items: items,
	}

	if err := s.invoiceRepo.SaveInvoiceFromWorkOrders(ctx, &invoice, company.NumberPrefix(domain.DocumentKindInvoice), workOrderIDs, userID); err != nil {
		logger.Error("Failed to save combined invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create combined invoice: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoice.InvoiceID, domain.AuditConvert, fmt.Sprintf("created invoice %s from %d work orders", invoice.InvoiceNumber, len(orders)))

	logger.Info("Combined invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int("work_order_count", len(orders)),
	)
	return &invoice, nil
}

// UpdateInvoice updates the header fields of a draft invoice.
func (s *invoiceService) UpdateInvoice(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s, only draft invoices can be edited", apperrors.ErrStateTransition, invoice.InvoiceNumber, invoice.Status)
	}

	if req.InvoiceDate != nil {
		shift := invoice.DueDate.Sub(invoice.InvoiceDate)
		invoice.InvoiceDate = *req.InvoiceDate
		invoice.DueDate = req.InvoiceDate.Add(shift)
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}

	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoiceID, domain.AuditUpdate, fmt.Sprintf("updated invoice %s", invoice.InvoiceNumber))

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// ReplaceInvoiceItems replaces the full item set of a draft invoice and
// recomputes the totals.
func (s *invoiceService) ReplaceInvoiceItems(ctx context.Context, companyID string, invoiceID string, req dto.ReplaceInvoiceItemsRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s, only draft invoices can be edited", apperrors.ErrStateTransition, invoice.InvoiceNumber, invoice.Status)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	items, err := s.buildItems(invoiceID, req.Items, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.InvoiceTotals(items)

	invoice.Items = items
	invoice.Subtotal = totals.Subtotal
	invoice.VATAmount = totals.VATAmount
	invoice.TotalAmount = totals.TotalAmount
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.ReplaceInvoiceItems(ctx, *invoice); err != nil {
		logger.Error("Failed to replace invoice items", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to replace invoice items: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoiceID, domain.AuditUpdate, fmt.Sprintf("replaced items of invoice %s", invoice.InvoiceNumber))

	logger.Info("Invoice items replaced", slog.String("invoice_id", invoiceID), slog.Int("item_count", len(items)))
	return invoice, nil
}

// UpdateInvoiceStatus applies a lifecycle transition. Moving to paid records
// the payment fields; paid and cancelled are terminal.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, companyID string, invoiceID string, req dto.UpdateInvoiceStatusRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return nil, err
	}

	if !domain.ValidInvoiceStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, req.Status)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("%w: invoice %s cannot move from %s to %s", apperrors.ErrStateTransition, invoice.InvoiceNumber, invoice.Status, req.Status)
	}

	now := time.Now().UTC()
	from := invoice.Status
	invoice.Status = req.Status
	if req.Status == domain.InvoicePaid {
		invoice.PaidAmount = invoice.TotalAmount
		if req.PaidAmount != nil {
			if req.PaidAmount.IsNegative() {
				return nil, fmt.Errorf("%w: paid amount must not be negative", apperrors.ErrValidation)
			}
			invoice.PaidAmount = *req.PaidAmount
		}
		paymentDate := now
		if req.PaymentDate != nil {
			paymentDate = *req.PaymentDate
		}
		invoice.PaymentDate = &paymentDate
		if req.PaymentReference != nil {
			invoice.PaymentReference = *req.PaymentReference
		}
	}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, *invoice); err != nil {
		logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoiceID, domain.AuditStatusChange, fmt.Sprintf("invoice %s: %s -> %s", invoice.InvoiceNumber, from, req.Status))

	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(req.Status)))
	return invoice, nil
}

// MarkOverdueInvoices flips every sent invoice past its due date to overdue.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, companyID string, asOf time.Time, userID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return 0, err
	}

	count, err := s.invoiceRepo.MarkOverdueInvoices(ctx, companyID, asOf, userID)
	if err != nil {
		logger.Error("Failed to mark overdue invoices", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	if count > 0 {
		s.audit.record(ctx, companyID, userID, "invoice", "", domain.AuditStatusChange, fmt.Sprintf("marked %d invoices overdue", count))
	}

	logger.Info("Overdue invoice sweep completed", slog.Int64("affected", count))
	return count, nil
}

// DeleteInvoice removes a draft invoice together with its items.
func (s *invoiceService) DeleteInvoice(ctx context.Context, companyID string, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleFinancial); err != nil {
		return err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.CompanyID != companyID {
		logger.Warn("Invoice found but belongs to a different company", slog.String("invoice_id", invoiceID), slog.String("owner_company", invoice.CompanyID))
		return apperrors.ErrNotFound
	}
	if invoice.Status != domain.InvoiceDraft {
		return fmt.Errorf("%w: invoice %s is %s, only draft invoices can be deleted", apperrors.ErrStateTransition, invoice.InvoiceNumber, invoice.Status)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, companyID, invoiceID); err != nil {
		logger.Error("Failed to delete invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "invoice", invoiceID, domain.AuditDelete, fmt.Sprintf("deleted draft invoice %s", invoice.InvoiceNumber))

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) buildItems(invoiceID string, reqs []dto.InvoiceItemRequest, defaultVATRate decimal.Decimal) ([]domain.InvoiceItem, error) {
	items := make([]domain.InvoiceItem, len(reqs))
	for i, ir := range reqs {
		if ir.Quantity.IsNegative() || ir.Quantity.IsZero() {
			return nil, fmt.Errorf("%w: item %d: quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if ir.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		vatRate := defaultVATRate
		if ir.VATRate != nil {
			if ir.VATRate.IsNegative() {
				return nil, fmt.Errorf("%w: item %d: VAT rate must not be negative", apperrors.ErrValidation, i+1)
			}
			vatRate = *ir.VATRate
		}
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			ArticleID:   ir.ArticleID,
			Description: ir.Description,
			Quantity:    ir.Quantity,
			UnitPrice:   ir.UnitPrice,
			VATRate:     vatRate,
			TotalPrice:  billing.LineTotal(ir.Quantity, ir.UnitPrice),
			SortOrder:   i,
		}
	}
	return items, nil
}
