// Package businessflow contains the core business logic and use cases for cargo tracking workflows
package businessflow

import (
	"context"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/services"
	"github.com/edzeame-del/ghana-cargo-logistics/repository"
	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthFlow handles admin authentication
type AuthFlow interface {
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionToken string) (*dto.LogoutResponse, error)
}

// AuthFlowImpl implements the admin login business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	tokenService services.TokenService
	sessionTTL   time.Duration
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(userRepo repository.UserRepository, tokenService services.TokenService, sessionTTL time.Duration) AuthFlow {
	if sessionTTL <= 0 {
		sessionTTL = utils.SessionTokenTTL
	}
	return &AuthFlowImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		sessionTTL:   sessionTTL,
	}
}

// Login authenticates an admin with username and password. Both unknown
// usernames and wrong passwords surface the same error so the endpoint does
// not leak which usernames exist.
func (f *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := f.userRepo.ByUsername(ctx, request.Username)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password", ErrIncorrectPassword)
	}

	token, err := f.tokenService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate session token", err)
	}

	return &dto.LoginResponse{
		User: dto.AuthUserDTO{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
		Session: dto.SessionDTO{
			SessionToken: token,
			ExpiresIn:    int(f.sessionTTL.Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

// Logout revokes the presented session token
func (f *AuthFlowImpl) Logout(ctx context.Context, sessionToken string) (*dto.LogoutResponse, error) {
	if sessionToken != "" {
		if err := f.tokenService.RevokeToken(sessionToken); err != nil {
			return nil, NewBusinessError("LOGOUT_FAILED", "Failed to revoke session", err)
		}
	}
	return &dto.LogoutResponse{Message: "Logged out successfully"}, nil
}
