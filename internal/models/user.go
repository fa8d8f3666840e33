package models

import "time"

// UserRole mirrors the domain role values.
type UserRole string

// User is a row in the users table.
type User struct {
	UserID       string     `db:"user_id"`
	CompanyID    string     `db:"company_id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         UserRole   `db:"role"`
	IsActive     bool       `db:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	AuditFields
}
