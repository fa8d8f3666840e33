package services

import (
	"context"

	"github.com/fieldserve/field_service_app/internal/core/domain"
	"github.com/fieldserve/field_service_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID within the caller's company.
	GetUserByID(ctx context.Context, companyID string, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users in the company.
	ListUsers(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser persists a new user in the company. Admin only.
	CreateUser(ctx context.Context, companyID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates an existing user's details. Users may update
	// themselves; role and active-flag changes require admin.
	UpdateUser(ctx context.Context, companyID string, targetUserID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeactivateUser marks a user as inactive. Admin only.
	DeactivateUser(ctx context.Context, companyID string, targetUserID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
