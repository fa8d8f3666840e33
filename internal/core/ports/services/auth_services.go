package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// AuthSvcFacade defines authentication operations. Login and registration run
// before any company scope is established.
type AuthSvcFacade interface {
	// Login verifies credentials and returns the user and a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)

	// RegisterCompany creates a new company together with its initial
	// admin user.
	RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, *domain.User, error)
}
