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

type PgxQuoteRepository struct {
	BaseRepository
}

// newPgxQuoteRepository creates a new repository for quote data.
func newPgxQuoteRepository(pool *pgxpool.Pool) portsrepo.QuoteRepositoryFacade {
	return &PgxQuoteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.QuoteRepositoryFacade = (*PgxQuoteRepository)(nil)

const quoteColumns = `
	quote_id, company_id, quote_number, customer_id, location_id, title, description,
	quote_date, valid_until, status, subtotal, vat_amount, total_amount,
	notes, terms_conditions,
	created_at, created_by, last_updated_at, last_updated_by
`

const quoteLineColumns = `
	line_id, quote_id, article_id, description, quantity, unit_price, vat_rate,
	line_total, sort_order
`

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var m models.Quote
	err := row.Scan(
		&m.QuoteID,
		&m.CompanyID,
		&m.QuoteNumber,
		&m.CustomerID,
		&m.LocationID,
		&m.Title,
		&m.Description,
		&m.QuoteDate,
		&m.ValidUntil,
		&m.Status,
		&m.Subtotal,
		&m.VATAmount,
		&m.TotalAmount,
		&m.Notes,
		&m.TermsConditions,
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

func scanQuoteLine(row pgx.Row) (*models.QuoteLine, error) {
	var m models.QuoteLine
	err := row.Scan(
		&m.LineID,
		&m.QuoteID,
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

func (r *PgxQuoteRepository) loadQuoteLines(ctx context.Context, quoteID string) ([]models.QuoteLine, error) {
	query := `SELECT ` + quoteLineColumns + ` FROM quote_lines WHERE quote_id = $1 ORDER BY sort_order ASC;`

	rows, err := r.Pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]models.QuoteLine, 0)
	for rows.Next() {
		m, err := scanQuoteLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *m)
	}
	return lines, rows.Err()
}

// FindQuoteByID retrieves a quote with its lines, scoped to a company.
func (r *PgxQuoteRepository) FindQuoteByID(ctx context.Context, companyID string, quoteID string) (*domain.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE company_id = $1 AND quote_id = $2;`

	m, err := scanQuote(r.Pool.QueryRow(ctx, query, companyID, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find quote "+quoteID, err)
	}

	lines, err := r.loadQuoteLines(ctx, quoteID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load lines for quote "+quoteID, err)
	}

	quote := mapping.ToDomainQuote(*m)
	quote.Lines = mapping.ToDomainQuoteLineSlice(lines)
	return &quote, nil
}

// ListQuotes retrieves a filtered page of quotes using token-based pagination.
// The cursor is the (quote_date, created_at) tuple of the last quote on the
// previous page. Lines are not loaded.
func (r *PgxQuoteRepository) ListQuotes(ctx context.Context, companyID string, filter portsrepo.ListQuotesFilter) ([]domain.Quote, *string, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE company_id = $1`
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
		quoteDate, createdAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, quoteDate, createdAt)
		query += fmt.Sprintf(` AND (quote_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	// Fetch one extra row to know whether a next page exists.
	args = append(args, filter.Limit+1)
	query += fmt.Sprintf(` ORDER BY quote_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list quotes for company "+companyID, err)
	}
	defer rows.Close()

	quotes := make([]domain.Quote, 0)
	for rows.Next() {
		m, err := scanQuote(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan quote row", err)
		}
		quotes = append(quotes, mapping.ToDomainQuote(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating quote rows", err)
	}

	var nextToken *string
	if len(quotes) > filter.Limit {
		quotes = quotes[:filter.Limit]
		last := quotes[len(quotes)-1]
		token := pagination.EncodeToken(last.QuoteDate, last.CreatedAt)
		nextToken = &token
	}
	return quotes, nextToken, nil
}

// SaveQuote persists a new quote and its lines in one transaction, allocating
// the next quote number for the company and year. The assigned number is
// written back to the quote.
func (r *PgxQuoteRepository) SaveQuote(ctx context.Context, quote *domain.Quote, prefix string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for quote save", err)
	}
	defer r.Rollback(ctx, tx)

	number, err := nextDocumentNumber(ctx, tx, quote.CompanyID, domain.DocumentKindQuote, prefix)
	if err != nil {
		return apperrors.NewAppError(500, "failed to allocate quote number", err)
	}
	quote.QuoteNumber = number

	m := mapping.ToModelQuote(*quote)
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, query,
		m.QuoteID, m.CompanyID, m.QuoteNumber, m.CustomerID, m.LocationID, m.Title, m.Description,
		m.QuoteDate, m.ValidUntil, m.Status, m.Subtotal, m.VATAmount, m.TotalAmount,
		m.Notes, m.TermsConditions,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert quote "+m.QuoteID, err)
	}

	if err := insertQuoteLines(ctx, tx, quote.QuoteID, quote.Lines); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit quote save", err)
	}
	return nil
}

func insertQuoteLines(ctx context.Context, tx pgx.Tx, quoteID string, lines []domain.QuoteLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO quote_lines (` + quoteLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelQuoteLine(line)
		batch.Queue(query,
			m.LineID, quoteID, m.ArticleID, m.Description,
			m.Quantity, m.UnitPrice, m.VATRate, m.LineTotal, m.SortOrder,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert quote line", err)
		}
	}
	return nil
}

// UpdateQuote updates a quote's header fields.
func (r *PgxQuoteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) error {
	m := mapping.ToModelQuote(quote)
	query := `
		UPDATE quotes
		SET customer_id = $3,
		    location_id = $4,
		    title = $5,
		    description = $6,
		    quote_date = $7,
		    valid_until = $8,
		    notes = $9,
		    terms_conditions = $10,
		    last_updated_at = $11,
		    last_updated_by = $12
		WHERE company_id = $1 AND quote_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.QuoteID,
		m.CustomerID, m.LocationID, m.Title, m.Description,
		m.QuoteDate, m.ValidUntil, m.Notes, m.TermsConditions,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update quote "+m.QuoteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + m.QuoteID + " not found for update")
	}
	return nil
}

// ReplaceQuoteLines replaces the quote's full line set and updates the stored
// totals in one transaction.
func (r *PgxQuoteRepository) ReplaceQuoteLines(ctx context.Context, quote domain.Quote) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction for line replace", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM quote_lines WHERE quote_id = $1;`, quote.QuoteID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for quote "+quote.QuoteID, err)
	}

	if err := insertQuoteLines(ctx, tx, quote.QuoteID, quote.Lines); err != nil {
		return err
	}

	m := mapping.ToModelQuote(quote)
	query := `
		UPDATE quotes
		SET subtotal = $3,
		    vat_amount = $4,
		    total_amount = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE company_id = $1 AND quote_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.CompanyID, m.QuoteID,
		m.Subtotal, m.VATAmount, m.TotalAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for quote "+m.QuoteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + m.QuoteID + " not found for line replace")
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit line replace", err)
	}
	return nil
}

// UpdateQuoteStatus updates only the lifecycle status of a quote.
func (r *PgxQuoteRepository) UpdateQuoteStatus(ctx context.Context, companyID string, quoteID string, status domain.QuoteStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE quotes
		SET status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE company_id = $1 AND quote_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, companyID, quoteID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of quote "+quoteID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("quote " + quoteID + " not found for status update")
	}
	return nil
}

// MarkExpiredQuotes flips every sent quote whose validity date lies before
// asOf to expired and returns how many were affected.
func (r *PgxQuoteRepository) MarkExpiredQuotes(ctx context.Context, companyID string, asOf time.Time, updatedByUserID string) (int64, error) {
	query := `
		UPDATE quotes
		SET status = $3,
		    last_updated_at = $2,
		    last_updated_by = $4
		WHERE company_id = $1 AND status = $5 AND valid_until < $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		companyID, asOf, string(domain.QuoteExpired), updatedByUserID, string(domain.QuoteSent),
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to expire quotes for company "+companyID, err)
	}
	return cmdTag.RowsAffected(), nil
}
