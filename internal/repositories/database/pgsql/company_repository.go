package pgsql

import (
	"context"
	"errors"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/models"
	"github.com/fieldserve/field_service_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `
	company_id, name, address, postal_code, city, country, phone, email,
	vat_number, invoice_prefix, quote_prefix, work_order_prefix,
	default_vat_rate, bank_account, chamber_of_commerce,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCompany(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.Address,
		&m.PostalCode,
		&m.City,
		&m.Country,
		&m.Phone,
		&m.Email,
		&m.VATNumber,
		&m.InvoicePrefix,
		&m.QuotePrefix,
		&m.WorkOrderPrefix,
		&m.DefaultVATRate,
		&m.BankAccount,
		&m.ChamberOfCommerce,
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

// FindCompanyByID retrieves a company by its unique identifier.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`

	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company "+companyID, err)
	}

	company := mapping.ToDomainCompany(*m)
	return &company, nil
}

// SaveCompany persists a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.Address, m.PostalCode, m.City, m.Country, m.Phone, m.Email,
		m.VATNumber, m.InvoicePrefix, m.QuotePrefix, m.WorkOrderPrefix,
		m.DefaultVATRate, m.BankAccount, m.ChamberOfCommerce,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert company "+m.CompanyID, err)
	}
	return nil
}

// UpdateCompany updates an existing company's profile.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET name = $2,
		    address = $3,
		    postal_code = $4,
		    city = $5,
		    country = $6,
		    phone = $7,
		    email = $8,
		    vat_number = $9,
		    invoice_prefix = $10,
		    quote_prefix = $11,
		    work_order_prefix = $12,
		    default_vat_rate = $13,
		    bank_account = $14,
		    chamber_of_commerce = $15,
		    last_updated_at = $16,
		    last_updated_by = $17
		WHERE company_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Name, m.Address, m.PostalCode, m.City, m.Country, m.Phone, m.Email,
		m.VATNumber, m.InvoicePrefix, m.QuotePrefix, m.WorkOrderPrefix,
		m.DefaultVATRate, m.BankAccount, m.ChamberOfCommerce,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update company "+m.CompanyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + m.CompanyID + " not found for update")
	}
	return nil
}
