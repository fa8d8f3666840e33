package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	portssvc "github.com/fieldserve/field_service_app/internal/core/ports/services"
	"github.com/fieldserve/field_service_app/internal/dto"
	"github.com/fieldserve/field_service_app/internal/middleware"
	"github.com/google/uuid"
)

// customerService handles customers and their service locations.
type customerService struct {
	customerRepo        portsrepo.CustomerRepositoryFacade
	userRepo            portsrepo.UserRepositoryFacade
	audit               *auditLogService
	defaultPaymentTerms int
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService, defaultPaymentTermsDays int) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo:        customerRepo,
		userRepo:            userRepo,
		audit:               audit,
		defaultPaymentTerms: defaultPaymentTermsDays,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// GetCustomerByID retrieves a customer within the company scope.
func (s *customerService) GetCustomerByID(ctx context.Context, companyID string, customerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}
	if customer.CompanyID != companyID {
		logger.Warn("Customer found but belongs to a different company",
			slog.String("customer_id", customerID),
			slog.String("owner_company", customer.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return customer, nil
}

// ListCustomers retrieves a filtered, paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, companyID string, params dto.ListCustomersParams) ([]domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customers, err := s.customerRepo.ListCustomers(ctx, companyID, portsrepo.ListCustomersFilter{
		Search:          params.Search,
		IncludeInactive: params.IncludeInactive,
		Limit:           params.Limit,
		Offset:          params.Offset,
	})
	if err != nil {
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// CreateCustomer persists a new customer.
func (s *customerService) CreateCustomer(ctx context.Context, companyID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	paymentTerms := s.defaultPaymentTerms
	if req.PaymentTerms != nil {
		paymentTerms = *req.PaymentTerms
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:    uuid.NewString(),
		CompanyID:     companyID,
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Mobile:        req.Mobile,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		City:          req.City,
		Country:       req.Country,
		VATNumber:     req.VATNumber,
		PaymentTerms:  paymentTerms,
		CreditLimit:   req.CreditLimit,
		Notes:         req.Notes,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "customer", customer.CustomerID, domain.AuditCreate, fmt.Sprintf("created customer %q", customer.CompanyName))

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// UpdateCustomer updates an existing customer's details.
func (s *customerService) UpdateCustomer(ctx context.Context, companyID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	if req.ContactPerson != nil {
		customer.ContactPerson = *req.ContactPerson
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Mobile != nil {
		customer.Mobile = *req.Mobile
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	if req.VATNumber != nil {
		customer.VATNumber = *req.VATNumber
	}
	if req.PaymentTerms != nil {
		customer.PaymentTerms = *req.PaymentTerms
	}
	if req.CreditLimit != nil {
		customer.CreditLimit = req.CreditLimit
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "customer", customerID, domain.AuditUpdate, "updated customer")

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeactivateCustomer marks a customer as inactive. Historical documents keep
// referencing the customer.
func (s *customerService) DeactivateCustomer(ctx context.Context, companyID string, customerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager); err != nil {
		return err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID)
	if err != nil {
		return err
	}
	if !customer.IsActive {
		return fmt.Errorf("%w: customer is already inactive", apperrors.ErrValidation)
	}

	customer.IsActive = false
	customer.LastUpdatedAt = time.Now().UTC()
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "customer", customerID, domain.AuditDeactivate, "deactivated customer")

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}

// GetLocationByID retrieves a location for a known customer.
func (s *customerService) GetLocationByID(ctx context.Context, companyID string, customerID string, locationID string) (*domain.Location, error) {
	location, err := s.customerRepo.FindLocationByID(ctx, companyID, customerID, locationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find location", slog.String("error", err.Error()), slog.String("location_id", locationID))
		}
		return nil, err
	}
	return location, nil
}

// ListLocations retrieves all locations for a customer.
func (s *customerService) ListLocations(ctx context.Context, companyID string, customerID string) ([]domain.Location, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Customer lookup doubles as the scope check.
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID); err != nil {
		return nil, err
	}

	locations, err := s.customerRepo.ListLocations(ctx, companyID, customerID)
	if err != nil {
		logger.Error("Failed to list locations", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	if locations == nil {
		return []domain.Location{}, nil
	}
	return locations, nil
}

// CreateLocation persists a new location under a customer.
func (s *customerService) CreateLocation(ctx context.Context, companyID string, customerID string, req dto.CreateLocationRequest, userID string) (*domain.Location, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, customerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	location := domain.Location{
		LocationID:         uuid.NewString(),
		CustomerID:         customerID,
		Name:               req.Name,
		Address:            req.Address,
		PostalCode:         req.PostalCode,
		City:               req.City,
		Country:            req.Country,
		ContactPerson:      req.ContactPerson,
		Phone:              req.Phone,
		AccessInstructions: req.AccessInstructions,
		Notes:              req.Notes,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.customerRepo.SaveLocation(ctx, location); err != nil {
		logger.Error("Failed to save location", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "location", location.LocationID, domain.AuditCreate, fmt.Sprintf("created location %q for customer %s", location.Name, customerID))

	logger.Info("Location created", slog.String("location_id", location.LocationID), slog.String("customer_id", customerID))
	return &location, nil
}

// UpdateLocation updates an existing location's details.
func (s *customerService) UpdateLocation(ctx context.Context, companyID string, customerID string, locationID string, req dto.UpdateLocationRequest, userID string) (*domain.Location, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleManager, domain.RoleSales); err != nil {
		return nil, err
	}

	location, err := s.customerRepo.FindLocationByID(ctx, companyID, customerID, locationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.PostalCode != nil {
		location.PostalCode = *req.PostalCode
	}
	if req.City != nil {
		location.City = *req.City
	}
	if req.Country != nil {
		location.Country = *req.Country
	}
	if req.ContactPerson != nil {
		location.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		location.Phone = *req.Phone
	}
	if req.AccessInstructions != nil {
		location.AccessInstructions = *req.AccessInstructions
	}
	if req.Notes != nil {
		location.Notes = *req.Notes
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	location.LastUpdatedAt = time.Now().UTC()
	location.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateLocation(ctx, *location); err != nil {
		logger.Error("Failed to update location", slog.String("error", err.Error()), slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "location", locationID, domain.AuditUpdate, "updated location")

	logger.Info("Location updated", slog.String("location_id", locationID))
	return location, nil
}
