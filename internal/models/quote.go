package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a row in the quotes table. (company_id, quote_number) is unique.
type Quote struct {
	QuoteID         string          `db:"quote_id"`
	CompanyID       string          `db:"company_id"`
	QuoteNumber     string          `db:"quote_number"`
	CustomerID      string          `db:"customer_id"`
	LocationID      *string         `db:"location_id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	QuoteDate       time.Time       `db:"quote_date"`
	ValidUntil      time.Time       `db:"valid_until"`
	Status          string          `db:"status"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	VATAmount       decimal.Decimal `db:"vat_amount"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Notes           string          `db:"notes"`
	TermsConditions string          `db:"terms_conditions"`
	AuditFields
}

// QuoteLine is a row in the quote_lines table, cascade-deleted with its quote.
type QuoteLine struct {
	LineID      string          `db:"line_id"`
	QuoteID     string          `db:"quote_id"`
	ArticleID   *string         `db:"article_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	VATRate     decimal.Decimal `db:"vat_rate"`
	LineTotal   decimal.Decimal `db:"line_total"`
	SortOrder   int             `db:"sort_order"`
}
