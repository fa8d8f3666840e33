package dto

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterCompanyRequest defines the data for registering a new company
// together with its initial admin user.
type RegisterCompanyRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Username    string `json:"username" binding:"required,min=3"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// RegisterCompanyResponse returns the created company and its admin user.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
}
