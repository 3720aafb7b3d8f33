package user

// SignupRequest for POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangeRoleRequest for PATCH /admin/users/{id}/role
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// ChangeStatusRequest for PATCH /admin/users/{id}/status
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending blocked"`
}

// AuthResponse carries the access token and the account
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
