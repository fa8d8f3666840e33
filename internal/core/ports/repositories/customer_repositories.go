package repositories

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// ListCustomersFilter narrows customer list queries.
type ListCustomersFilter struct {
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by ID, scoped to a company.
	FindCustomerByID(ctx context.Context, companyID string, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a filtered, paginated list of customers.
	ListCustomers(ctx context.Context, companyID string, filter ListCustomersFilter) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
}

// LocationReader defines read operations for service locations
type LocationReader interface {
	// FindLocationByID retrieves a location by ID for a known customer.
	FindLocationByID(ctx context.Context, companyID string, customerID string, locationID string) (*domain.Location, error)

	// ListLocations retrieves all locations for a customer.
	ListLocations(ctx context.Context, companyID string, customerID string) ([]domain.Location, error)
}

// LocationWriter defines write operations for service locations
type LocationWriter interface {
	// SaveLocation persists a new location.
	SaveLocation(ctx context.Context, location domain.Location) error

	// UpdateLocation updates an existing location's details.
	UpdateLocation(ctx context.Context, location domain.Location) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	LocationReader
	LocationWriter
}
