package repositories

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// ListQuotesFilter narrows quote list queries. Pages are keyed by an opaque
// token rather than an offset.
type ListQuotesFilter struct {
	Status     string
	CustomerID string
	Limit      int
	NextToken  *string
}

// QuoteReader defines read operations for quote data
type QuoteReader interface {
	// FindQuoteByID retrieves a quote with its lines, scoped to a company.
	FindQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error)

	// ListQuotes retrieves a filtered page of quotes using token-based
	// pagination. It returns the quotes, a token for the next page, and an
	// error. Lines are not loaded.
	ListQuotes(ctx context.Context, companyID string, filter ListQuotesFilter) ([]domain.Quote, *string, error)
}

// QuoteWriter defines write operations for quote data
type QuoteWriter interface {
	// SaveQuote persists a new quote and its lines in one transaction,
	// allocating the next quote number for the company and year. The
	// assigned number is written back to the quote.
	SaveQuote(ctx context.Context, quote *domain.Quote, prefix string) error

	// UpdateQuote updates a quote's header fields.
	UpdateQuote(ctx context.Context, quote domain.Quote) error

	// ReplaceQuoteLines replaces the quote's full line set and updates the
	// stored totals in one transaction.
	ReplaceQuoteLines(ctx context.Context, quote domain.Quote) error

	// UpdateQuoteStatus updates only the lifecycle status of a quote.
	UpdateQuoteStatus(ctx context.Context, companyID string, quoteID string, status domain.QuoteStatus, updatedByUserID string, updatedAt time.Time) error

	// MarkExpiredQuotes flips every sent quote whose validity date lies
	// before asOf to expired and returns how many were affected.
	MarkExpiredQuotes(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error)
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}
