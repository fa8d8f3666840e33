package models

import "github.com/shopspring/decimal"

// Customer is a row in the customers table. Deactivation is the only form of
// deletion; documents keep their customer_id references forever.
type Customer struct {
	CustomerID    string           `db:"customer_id"`
	CompanyID     string           `db:"company_id"`
	CompanyName   string           `db:"company_name"`
	ContactPerson string           `db:"contact_person"`
	Email         string           `db:"email"`
	Phone         string           `db:"phone"`
	Mobile        string           `db:"mobile"`
	Address       string           `db:"address"`
	PostalCode    string           `db:"postal_code"`
	City          string           `db:"city"`
	Country       string           `db:"country"`
	VATNumber     string           `db:"vat_number"`
	PaymentTerms  int              `db:"payment_terms"`
	CreditLimit   *decimal.Decimal `db:"credit_limit"`
	Notes         string           `db:"notes"`
	IsActive      bool             `db:"is_active"`
	AuditFields
}

// Location is a row in the locations table, owned by a customer.
type Location struct {
	LocationID         string `db:"location_id"`
	CustomerID         string `db:"customer_id"`
	Name               string `db:"name"`
	Address            string `db:"address"`
	PostalCode         string `db:"postal_code"`
	City               string `db:"city"`
	Country            string `db:"country"`
	ContactPerson      string `db:"contact_person"`
	Phone              string `db:"phone"`
	AccessInstructions string `db:"access_instructions"`
	Notes              string `db:"notes"`
	IsActive           bool   `db:"is_active"`
	AuditFields
}
