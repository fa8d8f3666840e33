package services

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// QuoteReaderSvc defines read operations for quote data
type QuoteReaderSvc interface {
	// GetQuoteByID retrieves a quote with its lines.
	GetQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error)

	// ListQuotes retrieves a filtered page of quotes using token-based
	// pagination. It returns the quotes and a token for the next page.
	ListQuotes(ctx context.Context, companyID string, params dto.ListQuotesParams) ([]domain.Quote, *string, error)
}

// QuoteWriterSvc defines write operations for quote data
type QuoteWriterSvc interface {
	// CreateQuote persists a new draft quote with its lines, allocating the
	// next quote number and computing the totals.
	CreateQuote(ctx context.Context, companyID string, req dto.CreateQuoteRequest, userID string) (*domain.Quote, error)

	// UpdateQuote updates a draft quote's header fields.
	UpdateQuote(ctx context.Context, companyID string, quoteID string, req dto.UpdateQuoteRequest, userID string) (*domain.Quote, error)

	// ReplaceQuoteLines replaces the full line set of a draft quote and
	// recomputes the totals.
	ReplaceQuoteLines(ctx context.Context, companyID string, quoteID string, req dto.ReplaceQuoteLinesRequest, userID string) (*domain.Quote, error)

	// UpdateQuoteStatus applies a lifecycle transition.
	UpdateQuoteStatus(ctx context.Context, companyID string, quoteID string, status domain.QuoteStatus, userID string) (*domain.Quote, error)

	// DuplicateQuote creates an independent draft copy of a quote with a
	// fresh number and dates. Later changes to either quote never affect
	// the other.
	DuplicateQuote(ctx context.Context, companyID string, quoteID string, userID string) (*domain.Quote, error)

	// ExpireQuotes flips sent quotes past their validity date to expired
	// and returns how many were affected.
	ExpireQuotes(ctx context.Context, companyID string, asOf time.Time, userID string) (int64, error)
}

// QuoteSvcFacade combines all quote-related service interfaces
type QuoteSvcFacade interface {
	QuoteReaderSvc
	QuoteWriterSvc
}
