package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	CompanyName   string           `json:"companyName" binding:"required"`
	ContactPerson string           `json:"contactPerson"`
	Email         string           `json:"email" binding:"omitempty,email"`
	Phone         string           `json:"phone"`
	Mobile        string           `json:"mobile"`
	Address       string           `json:"address"`
	PostalCode    string           `json:"postalCode"`
	City          string           `json:"city"`
	Country       string           `json:"country"`
	VATNumber     string           `json:"vatNumber"`
	PaymentTerms  *int             `json:"paymentTerms" binding:"omitempty,min=0"` // Defaults to 30 when omitted
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	Notes         string           `json:"notes"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateCustomerRequest struct {
	CompanyName   *string          `json:"companyName"`
	ContactPerson *string          `json:"contactPerson"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Phone         *string          `json:"phone"`
	Mobile        *string          `json:"mobile"`
	Address       *string          `json:"address"`
	PostalCode    *string          `json:"postalCode"`
	City          *string          `json:"city"`
	Country       *string          `json:"country"`
	VATNumber     *string          `json:"vatNumber"`
	PaymentTerms  *int             `json:"paymentTerms" binding:"omitempty,min=0"`
	CreditLimit   *decimal.Decimal `json:"creditLimit"`
	Notes         *string          `json:"notes"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string           `json:"customerID"`
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
	PaymentTerms  int              `json:"paymentTerms"`
	CreditLimit   *decimal.Decimal `json:"creditLimit,omitempty"`
	Notes         string           `json:"notes"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		CompanyName:   c.CompanyName,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Mobile:        c.Mobile,
		Address:       c.Address,
		PostalCode:    c.PostalCode,
		City:          c.City,
		Country:       c.Country,
		VATNumber:     c.VATNumber,
		PaymentTerms:  c.PaymentTerms,
		CreditLimit:   c.CreditLimit,
		Notes:         c.Notes,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit         int    `form:"limit,default=20"`
	Offset        int    `form:"offset,default=0"`
	Search        string `form:"search"`
	IncludeInactive bool `form:"includeInactive"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to DTO.
func ToListCustomersResponse(cs []domain.Customer) ListCustomersResponse {
	res := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		res[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: res}
}

// --- Location DTOs ---

// CreateLocationRequest defines the data needed to create a service location.
type CreateLocationRequest struct {
	Name               string `json:"name" binding:"required"`
	Address            string `json:"address" binding:"required"`
	PostalCode         string `json:"postalCode"`
	City               string `json:"city"`
	Country            string `json:"country"`
	ContactPerson      string `json:"contactPerson"`
	Phone              string `json:"phone"`
	AccessInstructions string `json:"accessInstructions"`
	Notes              string `json:"notes"`
}

// UpdateLocationRequest defines the data allowed for updating a location.
type UpdateLocationRequest struct {
	Name               *string `json:"name"`
	Address            *string `json:"address"`
	PostalCode         *string `json:"postalCode"`
	City               *string `json:"city"`
	Country            *string `json:"country"`
	ContactPerson      *string `json:"contactPerson"`
	Phone              *string `json:"phone"`
	AccessInstructions *string `json:"accessInstructions"`
	Notes              *string `json:"notes"`
	IsActive           *bool   `json:"isActive"`
}

// LocationResponse defines the data returned for a service location.
type LocationResponse struct {
	LocationID         string    `json:"locationID"`
	CustomerID         string    `json:"customerID"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	PostalCode         string    `json:"postalCode"`
	City               string    `json:"city"`
	Country            string    `json:"country"`
	ContactPerson      string    `json:"contactPerson"`
	Phone              string    `json:"phone"`
	AccessInstructions string    `json:"accessInstructions"`
	Notes              string    `json:"notes"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ToLocationResponse converts a domain.Location to LocationResponse DTO.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID:         l.LocationID,
		CustomerID:         l.CustomerID,
		Name:               l.Name,
		Address:            l.Address,
		PostalCode:         l.PostalCode,
		City:               l.City,
		Country:            l.Country,
		ContactPerson:      l.ContactPerson,
		Phone:              l.Phone,
		AccessInstructions: l.AccessInstructions,
		Notes:              l.Notes,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
	}
}

// ListLocationsResponse wraps the list of locations for a customer.
type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

// ToListLocationsResponse converts a slice of domain.Location to DTO.
func ToListLocationsResponse(ls []domain.Location) ListLocationsResponse {
	res := make([]LocationResponse, len(ls))
	for i, l := range ls {
		res[i] = ToLocationResponse(&l)
	}
	return ListLocationsResponse{Locations: res}
}
