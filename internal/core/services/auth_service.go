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
	"github.com/fieldserve/field_service_app/internal/platform/config"
	"github.com/fieldserve/field_service_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// authService handles credential verification, token issuance and company
// registration.
type authService struct {
	userRepo    portsrepo.UserRepositoryFacade
	companyRepo portsrepo.CompanyRepositoryFacade
	audit       *auditLogService

	jwtSecret         string
	jwtExpiryDuration time.Duration
	jwtIssuer         string
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, audit *auditLogService) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:          userRepo,
		companyRepo:       companyRepo,
		audit:             audit,
		jwtSecret:         cfg.JWTSecret,
		jwtExpiryDuration: cfg.JWTExpiryDuration,
		jwtIssuer:         cfg.JWTIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies credentials and returns the user and a signed JWT. Unknown
// usernames and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("failed to verify credentials: %w", err)
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user", slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, user.CompanyID, user.Role, s.jwtSecret, s.jwtExpiryDuration, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.MarkLastLogin(ctx, user.UserID, now); err != nil {
		// The login itself succeeded, keep going.
		logger.Warn("Failed to record last login time", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}
	user.LastLoginAt = &now

	logger.Info("User logged in", slog.String("user_id", user.UserID), slog.String("company_id", user.CompanyID))
	return user, token, nil
}

// RegisterCompany creates a new company with default numbering prefixes and
// its initial admin user.
func (s *authService) RegisterCompany(ctx context.Context, req dto.RegisterCompanyRequest) (*domain.Company, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrConflict, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check username availability", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to register company: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to register company: %w", err)
	}

	now := time.Now().UTC()
	companyID := uuid.NewString()
	userID := uuid.NewString()

	company := domain.Company{
		CompanyID:       companyID,
		Name:            req.CompanyName,
		Email:           req.Email,
		InvoicePrefix:   "F",
		QuotePrefix:     "O",
		WorkOrderPrefix: "W",
		DefaultVATRate:  decimal.RequireFromString("21.00"),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	user := domain.User{
		UserID:       userID,
		CompanyID:    companyID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to register company: %w", err)
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save initial admin user", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to register company: %w", err)
	}

	s.audit.record(ctx, companyID, userID, "company", companyID, domain.AuditCreate, fmt.Sprintf("registered company %q", company.Name))

	logger.Info("Company registered", slog.String("company_id", companyID), slog.String("admin_user_id", userID))
	return &company, &user, nil
}
