package domain

import "time"

// UserRole defines the possible roles a user can have within a company.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleSales      UserRole = "sales"
	RoleTechnician UserRole = "technician"
	RoleFinancial  UserRole = "financial"
)

// ValidUserRole reports whether the given role is one of the known roles.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSales, RoleTechnician, RoleFinancial:
		return true
	}
	return false
}

// OneOf reports whether the role appears in the given allowed set.
func (r UserRole) OneOf(allowed ...UserRole) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User represents an authenticated member of a company.
type User struct {
	UserID       string     `json:"userID"`    // Primary Key (UUID)
	CompanyID    string     `json:"companyID"` // FK -> companies.company_id (NON-NULL)
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	AuditFields
}

// FullName returns the user's display name.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
