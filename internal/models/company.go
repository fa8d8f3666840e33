package models

import "github.com/shopspring/decimal"

// Company is the tenant row. Every scoped table carries company_id.
type Company struct {
	CompanyID         string          `db:"company_id"`
	Name              string          `db:"name"`
	Address           string          `db:"address"`
	PostalCode        string          `db:"postal_code"`
	City              string          `db:"city"`
	Country           string          `db:"country"`
	Phone             string          `db:"phone"`
	Email             string          `db:"email"`
	VATNumber         string          `db:"vat_number"`
	InvoicePrefix     string          `db:"invoice_prefix"`
	QuotePrefix       string          `db:"quote_prefix"`
	WorkOrderPrefix   string          `db:"work_order_prefix"`
	DefaultVATRate    decimal.Decimal `db:"default_vat_rate"`
	BankAccount       string          `db:"bank_account"`
	ChamberOfCommerce string          `db:"chamber_of_commerce"`
	AuditFields
}
