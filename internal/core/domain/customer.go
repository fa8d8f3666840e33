package domain

import "github.com/shopspring/decimal"

// Customer represents a client of a company. Customers are never physically
// deleted; historical documents keep referencing them after deactivation.
type Customer struct {
	CustomerID    string           `json:"customerID"` // Primary Key (UUID)
	CompanyID     string           `json:"companyID"`  // FK -> companies.company_id (NON-NULL)
	CompanyName   string           `json:"companyName"`
	ContactPerson string           `json:"contactPerson"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Mobile        string           `json:"mobile"`
	Address       string           `json:"address"`
	PostalCode    string           `json:"postalCode"`
	City          string           `json:"city"`
	Country       string           `json:"country"`
	VATNumber     string           `json:"vatNumber"`
	PaymentTerms  int              `json:"paymentTerms"` // Days until invoice due, default 30
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	Notes         string           `json:"notes"`
	IsActive      bool             `json:"isActive"` // Soft delete flag
	AuditFields
}

// Location is a service address owned by a customer.
type Location struct {
	LocationID         string `json:"locationID"` // Primary Key (UUID)
	CustomerID         string `json:"customerID"` // FK -> customers.customer_id (NON-NULL)
	Name               string `json:"name"`
	Address            string `json:"address"`
	PostalCode         string `json:"postalCode"`
	City               string `json:"city"`
	Country            string `json:"country"`
	ContactPerson      string `json:"contactPerson"`
	Phone              string `json:"phone"`
	AccessInstructions string `json:"accessInstructions"`
	Notes              string `json:"notes"`
	IsActive           bool   `json:"isActive"`
	AuditFields
}
