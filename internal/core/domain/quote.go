package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus indicates the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

// quoteTransitions lists the legal transitions per current status.
// Draft only moves to sent; nothing resurrects a rejected or expired quote.
// The expired transitions are driven programmatically by an external check.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteDraft:    {QuoteSent},
	QuoteSent:     {QuoteAccepted, QuoteRejected, QuoteExpired},
	QuoteAccepted: {QuoteExpired},
	QuoteRejected: {QuoteExpired},
	QuoteExpired:  {},
}

// ValidQuoteStatus reports whether s is a known quote status value.
func ValidQuoteStatus(s QuoteStatus) bool {
	_, ok := quoteTransitions[s]
	return ok
}

// CanTransitionTo reports whether the quote may move from s to target.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	for _, t := range quoteTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Quote represents a priced offer to a customer. Subtotal, VATAmount and
// TotalAmount are derived from the lines and recomputed on every line change;
// they are never authoritative on their own.
type Quote struct {
	QuoteID         string          `json:"quoteID"`     // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`   // FK -> companies.company_id (NON-NULL)
	QuoteNumber     string          `json:"quoteNumber"` // e.g. O2026-0001, unique per company
	CustomerID      string          `json:"customerID"`
	LocationID      *string         `json:"locationID"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	QuoteDate       time.Time       `json:"quoteDate"`
	ValidUntil      time.Time       `json:"validUntil"`
	Status          QuoteStatus     `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATAmount       decimal.Decimal `json:"vatAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Notes           string          `json:"notes"`
	TermsConditions string          `json:"termsConditions"`
	AuditFields

	Lines []QuoteLine `json:"lines,omitempty"` // Often loaded separately
}

// QuoteLine is an itemized charge on a quote. LineTotal is VAT-exclusive:
// quantity times unit price.
type QuoteLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	QuoteID     string          `json:"quoteID"` // FK -> quotes.quote_id (NON-NULL)
	ArticleID   *string         `json:"articleID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	VATRate     decimal.Decimal `json:"vatRate"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	SortOrder   int             `json:"sortOrder"`
}
