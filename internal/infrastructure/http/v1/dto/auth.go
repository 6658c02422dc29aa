package dto

import (
	"time"

	"paneerflow/internal/domain/auth"
)

// LoginRequest for operator login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserResponse represents an operator in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse carries the issued token and the operator identity.
type LoginResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// FromLoginResult creates a response from the domain login result.
func FromLoginResult(result *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Success: true,
		Token:   result.Token,
		User: UserResponse{
			ID:    result.User.ID,
			Email: result.User.Email,
			Role:  string(result.User.Role),
		},
		ExpiresAt: result.ExpiresAt,
	}
}

// LoginFailureResponse is the fixed body for rejected logins.
type LoginFailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
