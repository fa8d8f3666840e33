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
	"github.com/fieldserve/field_service_app/internal/utils"
	"github.com/google/uuid"
)

// userService handles user management within a company.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	audit    *auditLogService
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, audit *auditLogService) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, audit: audit}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user within the company scope.
func (s *userService) GetUserByID(ctx context.Context, companyID string, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, companyID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	if user.CompanyID != companyID {
		logger.Warn("User found but belongs to a different company",
			slog.String("user_id", userID),
			slog.String("owner_company", user.CompanyID))
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users in the company.
func (s *userService) ListUsers(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	users, err := s.userRepo.ListUsers(ctx, companyID, limit, offset)
	if err != nil {
		logger.Error("Failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// CreateUser persists a new user in the company. Admin only.
func (s *userService) CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, creatorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if !domain.ValidUserRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrConflict, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check username availability", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    companyID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.record(ctx, companyID, creatorUserID, "user", user.UserID, domain.AuditCreate, fmt.Sprintf("created user %q with role %s", user.Username, user.Role))

	logger.Info("User created", slog.String("new_user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// UpdateUser updates a user's details. Users may update their own contact
// fields; role and active-flag changes require admin.
func (s *userService) UpdateUser(ctx context.Context, companyID string, targetUserID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	requester, err := s.userRepo.FindUserByID(ctx, companyID, requestingUserID)
	if err != nil {
		return nil, err
	}
	isAdmin := requester.Role == domain.RoleAdmin
	if targetUserID != requestingUserID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	if (req.Role != nil || req.IsActive != nil) && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, companyID, targetUserID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			logger.Error("Failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !domain.ValidUserRole(*req.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", targetUserID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.record(ctx, companyID, requestingUserID, "user", targetUserID, domain.AuditUpdate, "updated user")

	logger.Info("User updated", slog.String("target_user_id", targetUserID))
	return user, nil
}

// DeactivateUser marks a user as inactive. Admin only, and admins cannot
// deactivate themselves.
func (s *userService) DeactivateUser(ctx context.Context, companyID string, targetUserID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := authorizeRole(ctx, s.userRepo, companyID, requestingUserID, domain.RoleAdmin); err != nil {
		return err
	}
	if targetUserID == requestingUserID {
		return fmt.Errorf("%w: cannot deactivate your own account", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, companyID, targetUserID)
	if err != nil {
		return err
	}

	user.IsActive = false
	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to deactivate user", slog.String("error", err.Error()), slog.String("user_id", targetUserID))
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.audit.record(ctx, companyID, requestingUserID, "user", targetUserID, domain.AuditDeactivate, "deactivated user")

	logger.Info("User deactivated", slog.String("target_user_id", targetUserID))
	return nil
}
