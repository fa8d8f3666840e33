package domain

import "github.com/shopspring/decimal"

// Company represents a tenant: an isolated service business whose data is
// never visible to other companies. Every scoped entity carries its CompanyID.
type Company struct {
	CompanyID         string          `json:"companyID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	PostalCode        string          `json:"postalCode"`
	City              string          `json:"city"`
	Country           string          `json:"country"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	VATNumber         string          `json:"vatNumber"`
	InvoicePrefix     string          `json:"invoicePrefix"`   // Default "F"
	QuotePrefix       string          `json:"quotePrefix"`     // Default "O"
	WorkOrderPrefix   string          `json:"workOrderPrefix"` // Default "W"
	DefaultVATRate    decimal.Decimal `json:"defaultVATRate"`  // Percentage, e.g. 21.00
	BankAccount       string          `json:"bankAccount"`
	ChamberOfCommerce string          `json:"chamberOfCommerce"`
	AuditFields
}

// NumberPrefix returns the company's configured numbering prefix for a
// document kind.
func (c Company) NumberPrefix(kind DocumentKind) string {
	switch kind {
	case DocumentKindQuote:
		return c.QuotePrefix
	case DocumentKindWorkOrder:
		return c.WorkOrderPrefix
	case DocumentKindInvoice:
		return c.InvoicePrefix
	}
	return ""
}
