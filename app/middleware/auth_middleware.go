// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/services"
	"github.com/gofiber/fiber/v3"
)

// SessionCookieName is the cookie carrying the admin session token
const SessionCookieName = "cargo_session"

// AuthMiddleware handles session token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the admin session token. The browser back-office
// sends it as an HTTP-only cookie; API clients may use a Bearer header
// instead. The cookie wins when both are present.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authentication is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_SESSION_TOKEN",
				},
			})
		}

		// Validate the token (this already checks for revocation)
		claims, err := m.tokenService.ValidateSessionToken(token)
		if err != nil {
			var errorCode string
			var message string

			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Session has expired"
			} else if errors.Is(err, services.ErrTokenRevoked) {
				errorCode = "TOKEN_REVOKED"
				message = "Session has been revoked"
			} else {
				errorCode = "TOKEN_INVALID"
				message = "Invalid session token"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		// Store user information in context for downstream handlers
		c.Locals("user_id", claims.UserID)
		c.Locals("token_id", claims.TokenID)
		c.Locals("session_token", token)

		// Store RequestID for request tracing
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

func extractToken(c fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
