package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fieldserve/field_service_app/internal/apperrors"
	"github.com/fieldserve/field_service_app/internal/core/domain"
	portsrepo "github.com/fieldserve/field_service_app/internal/core/ports/repositories"
	"github.com/fieldserve/field_service_app/internal/middleware"
)

// authorizeRole loads the requesting user within the company scope and checks
// that their role is in the allowed set. It returns apperrors.ErrNotFound when
// the user does not exist in the company and apperrors.ErrForbidden when the
// role is insufficient or the user is inactive.
func authorizeRole(ctx context.Context, userRepo portsrepo.UserReader, companyID string, userID string, allowed ...domain.UserRole) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := userRepo.FindUserByID(ctx, companyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not found in company", slog.String("user_id", userID))
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to load user for authorization", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check authorization: %w", err)
	}

	if !user.IsActive {
		logger.Warn("Authorization failed: user is inactive", slog.String("user_id", userID))
		return nil, apperrors.ErrForbidden
	}

	// Admin is always authorized
	if user.Role == domain.RoleAdmin {
		return user, nil
	}

	if user.Role.OneOf(allowed...) {
		return user, nil
	}

	logger.Warn("Authorization failed: user lacks required role",
		slog.String("user_id", userID),
		slog.String("user_role", string(user.Role)),
	)
	return nil, apperrors.ErrForbidden
}
