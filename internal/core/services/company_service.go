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
)

// companyService handles the tenant's own profile.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	audit       *auditLogService
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, audit *auditLogService) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, userRepo: userRepo, audit: audit}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves the caller's company profile.
func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// UpdateCompany updates the company profile. Admin only.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, userID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.PostalCode != nil {
		company.PostalCode = *req.PostalCode
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.Country != nil {
		company.Country = *req.Country
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.VATNumber != nil {
		company.VATNumber = *req.VATNumber
	}
	if req.InvoicePrefix != nil {
		company.InvoicePrefix = *req.InvoicePrefix
	}
	if req.QuotePrefix != nil {
		company.QuotePrefix = *req.QuotePrefix
	}
	if req.WorkOrderPrefix != nil {
		company.WorkOrderPrefix = *req.WorkOrderPrefix
	}
	if req.DefaultVATRate != nil {
		if req.DefaultVATRate.IsNegative() {
			return nil, fmt.Errorf("%w: default VAT rate must not be negative", apperrors.ErrValidation)
		}
		company.DefaultVATRate = *req.DefaultVATRate
	}
	if req.BankAccount != nil {
		company.BankAccount = *req.BankAccount
	}
	if req.ChamberOfCommerce != nil {
		company.ChamberOfCommerce = *req.ChamberOfCommerce
	}

	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		logger.Error("Failed to update company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "company", companyID, domain.AuditUpdate, "updated company profile")

	logger.Info("Company updated", slog.String("company_id", companyID))
	return company, nil
}
