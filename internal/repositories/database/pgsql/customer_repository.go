package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer and location data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `
	customer_id, company_id, company_name, contact_person, email, phone, mobile,
	address, postal_code, city, country, vat_number, payment_terms, credit_limit,
	notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

const locationColumns = `
	location_id, customer_id, name, address, postal_code, city, country,
	contact_person, phone, access_instructions, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.CompanyID,
		&m.CompanyName,
		&m.ContactPerson,
		&m.Email,
		&m.Phone,
		&m.Mobile,
		&m.Address,
		&m.PostalCode,
		&m.City,
		&m.Country,
		&m.VATNumber,
		&m.PaymentTerms,
		&m.CreditLimit,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanLocation(row pgx.Row) (*models.Location, error) {
	var m models.Location
	err := row.Scan(
		&m.LocationID,
		&m.CustomerID,
		&m.Name,
		&m.Address,
		&m.PostalCode,
		&m.City,
		&m.Country,
		&m.ContactPerson,
		&m.Phone,
		&m.AccessInstructions,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindCustomerByID retrieves a customer by ID, scoped to a company.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, companyID string, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1 AND customer_id = $2;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, companyID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer "+customerID, err)
	}

	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ListCustomers retrieves a filtered, paginated list of customers.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, companyID string, filter portsrepo.ListCustomersFilter) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1`
	args := []any{companyID}

	if !filter.IncludeInactive {
		query += ` AND is_active = TRUE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (company_name ILIKE $%d OR contact_person ILIKE $%d OR email ILIKE $%d)`, n, n, n)
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY company_name ASC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list customers for company "+companyID, err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.CompanyID, m.CompanyName, m.ContactPerson, m.Email, m.Phone, m.Mobile,
		m.Address, m.PostalCode, m.City, m.Country, m.VATNumber, m.PaymentTerms, m.CreditLimit,
		m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET company_name = $3,
		    contact_person = $4,
		    email = $5,
		    phone = $6,
		    mobile = $7,
		    address = $8,
		    postal_code = $9,
		    city = $10,
		    country = $11,
		    vat_number = $12,
		    payment_terms = $13,
		    credit_limit = $14,
		    notes = $15,
		    is_active = $16,
		    last_updated_at = $17,
		    last_updated_by = $18
		WHERE company_id = $1 AND customer_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.CustomerID,
		m.CompanyName, m.ContactPerson, m.Email, m.Phone, m.Mobile,
		m.Address, m.PostalCode, m.City, m.Country, m.VATNumber, m.PaymentTerms, m.CreditLimit,
		m.Notes, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + m.CustomerID + " not found for update")
	}
	return nil
}

// FindLocationByID retrieves a location by ID for a known customer. The join
// through customers keeps the lookup tenant scoped.
func (r *PgxCustomerRepository) FindLocationByID(ctx context.Context, companyID string, customerID string, locationID string) (*domain.Location, error) {
	query := `
		SELECT l.location_id, l.customer_id, l.name, l.address, l.postal_code, l.city, l.country,
		       l.contact_person, l.phone, l.access_instructions, l.notes, l.is_active,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM locations l
		JOIN customers c ON c.customer_id = l.customer_id
		WHERE c.company_id = $1 AND l.customer_id = $2 AND l.location_id = $3;
	`
	m, err := scanLocation(r.Pool.QueryRow(ctx, query, companyID, customerID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find location "+locationID, err)
	}

	location := mapping.ToDomainLocation(*m)
	return &location, nil
}

// ListLocations retrieves all locations for a customer.
func (r *PgxCustomerRepository) ListLocations(ctx context.Context, companyID string, customerID string) ([]domain.Location, error) {
	query := `
		SELECT l.location_id, l.customer_id, l.name, l.address, l.postal_code, l.city, l.country,
		       l.contact_person, l.phone, l.access_instructions, l.notes, l.is_active,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM locations l
		JOIN customers c ON c.customer_id = l.customer_id
		WHERE c.company_id = $1 AND l.customer_id = $2
		ORDER BY l.name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list locations for customer "+customerID, err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		m, err := scanLocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan location row", err)
		}
		locations = append(locations, mapping.ToDomainLocation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating location rows", err)
	}
	return locations, nil
}

// SaveLocation persists a new location.
func (r *PgxCustomerRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LocationID, m.CustomerID, m.Name, m.Address, m.PostalCode, m.City, m.Country,
		m.ContactPerson, m.Phone, m.AccessInstructions, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert location "+m.LocationID, err)
	}
	return nil
}

// UpdateLocation updates an existing location's details.
func (r *PgxCustomerRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		UPDATE locations
		SET name = $2,
		    address = $3,
		    postal_code = $4,
		    city = $5,
		    country = $6,
		    contact_person = $7,
		    phone = $8,
		    access_instructions = $9,
		    notes = $10,
		    is_active = $11,
		    last_updated_at = $12,
		    last_updated_by = $13
		WHERE location_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.LocationID,
		m.Name, m.Address, m.PostalCode, m.City, m.Country,
		m.ContactPerson, m.Phone, m.AccessInstructions, m.Notes, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update location "+m.LocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("location " + m.LocationID + " not found for update")
	}
	return nil
}
