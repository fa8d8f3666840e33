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

// quoteService handles the quote lifecycle: draft, send, accept or reject,
// expire. Lines and totals are mutable only while the quote is in draft.
type quoteService struct {
	quoteRepo    portsrepo.QuoteRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	companyRepo  portsrepo.CompanyRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	audit        *auditLogService

	validityDays int
}

// NewQuoteService creates a new quote service.
func NewQuoteService(quoteRepo portsrepo.QuoteRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService, validityDays int) portssvc.QuoteSvcFacade {
	return &quoteService{
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		audit:        audit,
		validityDays: validityDays,
	}
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// GetQuoteByID retrieves a quote with its lines.
func (s *quoteService) GetQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	quote, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		}
		return nil, err
	}
	if quote.CompanyID != companyID {
		logger.Warn("Quote found but belongs to a different company",
			slog.String("quote_id", quoteID),
			slog.String("owner_company", quote.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return quote, nil
}

// ListQuotes retrieves a filtered page of quotes.
func (s *quoteService) ListQuotes(ctx context.Context, companyID string, params dto.ListQuotesParams) ([]domain.Quote, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Status != "" && !domain.ValidQuoteStatus(domain.QuoteStatus(params.Status)) {
		return nil, nil, fmt.Errorf("%w: unknown quote status %q", apperrors.ErrValidation, params.Status)
	}

	quotes, nextToken, err := s.quoteRepo.ListQuotes(ctx, companyID, portsrepo.ListQuotesFilter{
		Status:     params.Status,
		CustomerID: params.CustomerID,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		logger.Error("Failed to list quotes", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	return quotes, nextToken, nil
}

// CreateQuote persists a new draft quote with its lines, allocating the next
// quote number and computing the totals.
func (s *quoteService) CreateQuote(ctx context.Context, companyID string, req dto.CreateQuoteRequest, userID string) (*domain.Quote, error) {
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

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	quoteDate := now
	if req.QuoteDate != nil {
		quoteDate = *req.QuoteDate
	}
	validUntil := quoteDate.AddDate(0, 0, s.validityDays)
	if req.ValidUntil != nil {
		validUntil = *req.ValidUntil
	}

	quoteID := uuid.NewString()
	lines, err := s.buildLines(quoteID, req.Lines, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.QuoteTotals(lines)

	quote := domain.Quote{
		QuoteID:         quoteID,
		CompanyID:       companyID,
		CustomerID:      req.CustomerID,
		LocationID:      req.LocationID,
		Title:           req.Title,
		Description:     req.Description,
		QuoteDate:       quoteDate,
		ValidUntil:      validUntil,
		Status:          domain.QuoteDraft,
		Subtotal:        totals.Subtotal,
		VATAmount:       totals.VATAmount,
		TotalAmount:     totals.TotalAmount,
		Notes:           req.Notes,
		TermsConditions: req.TermsConditions,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}

	if err := s.quoteRepo.SaveQuote(ctx, &quote, company.NumberPrefix(domain.DocumentKindQuote)); err != nil {
		logger.Error("Failed to save quote", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "quote", quote.QuoteID, domain.AuditCreate, fmt.Sprintf("created quote %s", quote.QuoteNumber))

	logger.Info("Quote created", slog.String("quote_id", quote.QuoteID), slog.String("quote_number", quote.QuoteNumber))
	return &quote, nil
}

// UpdateQuote updates a draft quote's header fields.
func (s *quoteService) UpdateQuote(ctx context.Context, companyID string, quoteID string, req dto.UpdateQuoteRequest, userID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteDraft {
		return nil, fmt.Errorf("%w: quote %s is %s, only draft quotes can be edited", apperrors.ErrStateTransition, quote.QuoteNumber, quote.Status)
	}

	if req.LocationID != nil {
		if _, err := s.customerRepo.FindLocationByID(ctx, companyID, quote.CustomerID, *req.LocationID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: location %s not found for customer", apperrors.ErrValidation, *req.LocationID)
			}
			return nil, fmt.Errorf("failed to validate location: %w", err)
		}
		quote.LocationID = req.LocationID
	}
	if req.Title != nil {
		quote.Title = *req.Title
	}
	if req.Description != nil {
		quote.Description = *req.Description
	}
	if req.QuoteDate != nil {
		quote.QuoteDate = *req.QuoteDate
	}
	if req.ValidUntil != nil {
		quote.ValidUntil = *req.ValidUntil
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}
	if req.TermsConditions != nil {
		quote.TermsConditions = *req.TermsConditions
	}

	quote.LastUpdatedAt = time.Now().UTC()
	quote.LastUpdatedBy = userID

	if err := s.quoteRepo.UpdateQuote(ctx, *quote); err != nil {
		logger.Error("Failed to update quote", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "quote", quoteID, domain.AuditUpdate, fmt.Sprintf("updated quote %s", quote.QuoteNumber))

	logger.Info("Quote updated", slog.String("quote_id", quoteID))
	return quote, nil
}

// ReplaceQuoteLines replaces the full line set of a draft quote and recomputes
// the totals.
func (s *quoteService) ReplaceQuoteLines(ctx context.Context, companyID string, quoteID string, req dto.ReplaceQuoteLinesRequest, userID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != domain.QuoteDraft {
		return nil, fmt.Errorf("%w: quote %s is %s, only draft quotes can be edited", apperrors.ErrStateTransition, quote.QuoteNumber, quote.Status)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	lines, err := s.buildLines(quoteID, req.Lines, company.DefaultVATRate)
	if err != nil {
		return nil, err
	}
	totals := billing.QuoteTotals(lines)

	quote.Lines = lines
	quote.Subtotal = totals.Subtotal
	quote.VATAmount = totals.VATAmount
	quote.TotalAmount = totals.TotalAmount
	quote.LastUpdatedAt = time.Now().UTC()
	quote.LastUpdatedBy = userID

	if err := s.quoteRepo.ReplaceQuoteLines(ctx, *quote); err != nil {
		logger.Error("Failed to replace quote lines", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to replace quote lines: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "quote", quoteID, domain.AuditUpdate, fmt.Sprintf("replaced lines of quote %s", quote.QuoteNumber))

	logger.Info("Quote lines replaced", slog.String("quote_id", quoteID), slog.Int("line_count", len(lines)))
	return quote, nil
}

// UpdateQuoteStatus applies a lifecycle transition.
func (s *quoteService) UpdateQuoteStatus(ctx context.Context, companyID string, quoteID string, status domain.QuoteStatus, userID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	if !domain.ValidQuoteStatus(status) {
		return nil, fmt.Errorf("%w: unknown quote status %q", apperrors.ErrValidation, status)
	}

	quote, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: quote %s cannot move from %s to %s", apperrors.ErrStateTransition, quote.QuoteNumber, quote.Status, status)
	}

	now := time.Now().UTC()
	if err := s.quoteRepo.UpdateQuoteStatus(ctx, companyID, quoteID, status, userID, now); err != nil {
		logger.Error("Failed to update quote status", slog.String("error", err.Error()), slog.String("quote_id", quoteID))
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "quote", quoteID, domain.AuditStatusChange, fmt.Sprintf("quote %s: %s -> %s", quote.QuoteNumber, quote.Status, status))

	quote.Status = status
	quote.LastUpdatedAt = now
	quote.LastUpdatedBy = userID

	logger.Info("Quote status updated", slog.String("quote_id", quoteID), slog.String("status", string(status)))
	return quote, nil
}

// DuplicateQuote creates an independent draft copy of a quote with a fresh
// number and dates.
func (s *quoteService) DuplicateQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	source, err := s.quoteRepo.FindQuoteByID(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	now := time.Now().UTC()
	newQuoteID := uuid.NewString()

	lines := make([]domain.QuoteLine, len(source.Lines))
	for i, l := range source.Lines {
		lines[i] = l
		lines[i].LineID = uuid.NewString()
		lines[i].QuoteID = newQuoteID
	}
	totals := billing.QuoteTotals(lines)

	copyQuote := domain.Quote{
		QuoteID:         newQuoteID,
		CompanyID:       companyID,
		CustomerID:      source.CustomerID,
		LocationID:      source.LocationID,
		Title:           source.Title,
		Description:     source.Description,
		QuoteDate:       now,
		ValidUntil:      now.AddDate(0, 0, s.validityDays),
		Status:          domain.QuoteDraft,
		Subtotal:        totals.Subtotal,
		VATAmount:       totals.VATAmount,
		TotalAmount:     totals.TotalAmount,
		Notes:           source.Notes,
		TermsConditions: source.TermsConditions,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		Lines: lines,
	}

	if err := s.quoteRepo.SaveQuote(ctx, &copyQuote, company.NumberPrefix(domain.DocumentKindQuote)); err != nil {
		logger.Error("Failed to save duplicated quote", slog.String("error", err.Error()), slog.String("source_quote_id", quoteID))
		return nil, fmt.Errorf("failed to duplicate quote: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "quote", copyQuote.QuoteID, domain.AuditCreate, fmt.Sprintf("duplicated quote %s as %s", source.QuoteNumber, copyQuote.QuoteNumber))

	logger.Info("Quote duplicated", slog.String("source_quote_id", quoteID), slog.String("new_quote_id", copyQuote.QuoteID))
	return &copyQuote, nil
}

// ExpireQuotes flips sent quotes past their validity date to expired.
func (s *quoteService) ExpireQuotes(ctx context.Context, companyID string, asOf time.Time, userID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return 0, err
	}

	count, err := s.quoteRepo.MarkExpiredQuotes(ctx, companyID, asOf, userID)
	if err != nil {
		logger.Error("Failed to expire quotes", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to expire quotes: %w", err)
	}

	if count > 0 {
		s.audit.record(ctx, companyID, userID, "quote", "", domain.AuditStatusChange, fmt.Sprintf("expired %d quotes past their validity date", count))
	}

	logger.Info("Expired quotes", slog.Int64("count", count))
	return count, nil
}

// buildLines converts line requests into domain lines with computed totals
// and sequential sort order.
func (s *quoteService) buildLines(quoteID string, reqs []dto.QuoteLineRequest, defaultVATRate decimal.Decimal) ([]domain.QuoteLine, error) {
	lines := make([]domain.QuoteLine, len(reqs))
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
		lines[i] = domain.QuoteLine{
			LineID:      uuid.NewString(),
			QuoteID:     quoteID,
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
