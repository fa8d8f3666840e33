package repositories

import (
	"context"
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID, scoped to a company.
	FindUserByID(ctx context.Context, companyID string, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username across companies.
	// Used by login, which runs before any company scope is established.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users for a company.
	ListUsers(ctx context.Context, companyID string, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// MarkLastLogin records a successful login timestamp.
	MarkLastLogin(ctx context.Context, userID string, at time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
