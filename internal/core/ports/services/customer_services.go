package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a customer within the caller's company.
	GetCustomerByID(ctx context.Context, companyID string, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a filtered, paginated list of customers.
	ListCustomers(ctx context.Context, companyID string, params dto.ListCustomersParams) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, companyID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, companyID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	// DeactivateCustomer marks a customer as inactive. Historical documents
	// keep referencing the customer.
	DeactivateCustomer(ctx context.Context, companyID string, customerID string, userID string) error
}

// LocationSvc defines operations for a customer's service locations
type LocationSvc interface {
	// GetLocationByID retrieves a location for a known customer.
	GetLocationByID(ctx context.Context, companyID string, customerID string, locationID string) (*domain.Location, error)

	// ListLocations retrieves all locations for a customer.
	ListLocations(ctx context.Context, companyID string, customerID string) ([]domain.Location, error)

	// CreateLocation persists a new location under a customer.
	CreateLocation(ctx context.Context, companyID string, customerID string, req dto.CreateLocationRequest, userID string) (*domain.Location, error)

	// UpdateLocation updates an existing location's details.
	UpdateLocation(ctx context.Context, companyID string, customerID string, locationID string, req dto.UpdateLocationRequest, userID string) (*domain.Location, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
	LocationSvc
}
