package mapping

import (
	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/models"
)

// ToModelQuote converts a domain Quote to a model Quote (header only; lines
// are mapped separately).
func ToModelQuote(d domain.Quote) models.Quote {
	return models.Quote{
		QuoteID:         d.QuoteID,
		CompanyID:       d.CompanyID,
		QuoteNumber:     d.QuoteNumber,
		CustomerID:      d.CustomerID,
		LocationID:      d.LocationID,
		Title:           d.Title,
		Description:     d.Description,
		QuoteDate:       d.QuoteDate,
		ValidUntil:      d.ValidUntil,
		Status:          string(d.Status),
		Subtotal:        d.Subtotal,
		VATAmount:       d.VATAmount,
		TotalAmount:     d.TotalAmount,
		Notes:           d.Notes,
		TermsConditions: d.TermsConditions,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuote converts a model Quote to a domain Quote
func ToDomainQuote(m models.Quote) domain.Quote {
	return domain.Quote{
		QuoteID:         m.QuoteID,
		CompanyID:       m.CompanyID,
		QuoteNumber:     m.QuoteNumber,
		CustomerID:      m.CustomerID,
		LocationID:      m.LocationID,
		Title:           m.Title,
		Description:     m.Description,
		QuoteDate:       m.QuoteDate,
		ValidUntil:      m.ValidUntil,
		Status:          domain.QuoteStatus(m.Status),
		Subtotal:        m.Subtotal,
		VATAmount:       m.VATAmount,
		TotalAmount:     m.TotalAmount,
		Notes:           m.Notes,
		TermsConditions: m.TermsConditions,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelQuoteLine converts a domain QuoteLine to a model QuoteLine
func ToModelQuoteLine(d domain.QuoteLine) models.QuoteLine {
	return models.QuoteLine{
		LineID:      d.LineID,
		QuoteID:     d.QuoteID,
		ArticleID:   d.ArticleID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		VATRate:     d.VATRate,
		LineTotal:   d.LineTotal,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainQuoteLine converts a model QuoteLine to a domain QuoteLine
func ToDomainQuoteLine(m models.QuoteLine) domain.QuoteLine {
	return domain.QuoteLine{
		LineID:      m.LineID,
		QuoteID:     m.QuoteID,
		ArticleID:   m.ArticleID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		VATRate:     m.VATRate,
		LineTotal:   m.LineTotal,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainQuoteLineSlice converts a slice of model quote lines.
func ToDomainQuoteLineSlice(ms []models.QuoteLine) []domain.QuoteLine {
	out := make([]domain.QuoteLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainQuoteLine(m)
	}
	return out
}
