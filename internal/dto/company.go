package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CompanyResponse defines the data returned for a company profile.
type CompanyResponse struct {
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	PostalCode        string          `json:"postalCode"`
	City              string          `json:"city"`
	Country           string          `json:"country"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	VATNumber         string          `json:"vatNumber"`
	InvoicePrefix     string          `json:"invoicePrefix"`
	QuotePrefix       string          `json:"quotePrefix"`
	WorkOrderPrefix   string          `json:"workOrderPrefix"`
	DefaultVATRate    decimal.Decimal `json:"defaultVATRate"`
	BankAccount       string          `json:"bankAccount"`
	ChamberOfCommerce string          `json:"chamberOfCommerce"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// UpdateCompanyRequest defines the data allowed for updating a company profile.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateCompanyRequest struct {
	Name              *string          `json:"name"`
	Address           *string          `json:"address"`
	PostalCode        *string          `json:"postalCode"`
	City              *string          `json:"city"`
	Country           *string          `json:"country"`
	Phone             *string          `json:"phone"`
	Email             *string          `json:"email" binding:"omitempty,email"`
	VATNumber         *string          `json:"vatNumber"`
	InvoicePrefix     *string          `json:"invoicePrefix" binding:"omitempty,min=1,max=5"`
	QuotePrefix       *string          `json:"quotePrefix" binding:"omitempty,min=1,max=5"`
	WorkOrderPrefix   *string          `json:"workOrderPrefix" binding:"omitempty,min=1,max=5"`
	DefaultVATRate    *decimal.Decimal `json:"defaultVATRate"`
	BankAccount       *string          `json:"bankAccount"`
	ChamberOfCommerce *string          `json:"chamberOfCommerce"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:         c.CompanyID,
		Name:              c.Name,
		Address:           c.Address,
		PostalCode:        c.PostalCode,
		City:              c.City,
		Country:           c.Country,
		Phone:             c.Phone,
		Email:             c.Email,
		VATNumber:         c.VATNumber,
		InvoicePrefix:     c.InvoicePrefix,
		QuotePrefix:       c.QuotePrefix,
		WorkOrderPrefix:   c.WorkOrderPrefix,
		DefaultVATRate:    c.DefaultVATRate,
		BankAccount:       c.BankAccount,
		ChamberOfCommerce: c.ChamberOfCommerce,
		CreatedAt:         c.CreatedAt,
		LastUpdatedAt:     c.LastUpdatedAt,
	}
}
