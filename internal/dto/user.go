package dto

import (
	"time"

	"github.com/fieldserve/field_service_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a new user within the
// caller's company.
type CreateUserRequest struct {
	Username  string          `json:"username" binding:"required,min=3"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      domain.UserRole `json:"role" binding:"required,oneof=admin manager sales technician financial"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers distinguish omitted fields from zero-value updates.
type UpdateUserRequest struct {
	Email     *string          `json:"email" binding:"omitempty,email"`
	Password  *string          `json:"password" binding:"omitempty,min=8"`
	FirstName *string          `json:"firstName"`
	LastName  *string          `json:"lastName"`
	Role      *domain.UserRole `json:"role" binding:"omitempty,oneof=admin manager sales technician financial"`
	IsActive  *bool            `json:"isActive"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID      string          `json:"userID"`
	CompanyID   string          `json:"companyID"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Role        domain.UserRole `json:"role"`
	IsActive    bool            `json:"isActive"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		CompanyID:   u.CompanyID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return ListUsersResponse{Users: res}
}
