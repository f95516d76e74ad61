// Package dto
package dto

// LoginRequest carries admin credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100" example:"admin"`
	Password string `json:"password" validate:"required,min=8,max=200" example:"s3cureP@ss"`
}

// AuthUserDTO is the authenticated user's public profile
type AuthUserDTO struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"admin"`
	CreatedAt string `json:"created_at" example:"2025-01-01T00:00:00Z"`
}

// SessionDTO carries the issued session token
type SessionDTO struct {
	SessionToken string `json:"session_token"`
	ExpiresIn    int    `json:"expires_in" example:"86400"`
	TokenType    string `json:"token_type" example:"Bearer"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// LogoutResponse confirms session termination
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}
