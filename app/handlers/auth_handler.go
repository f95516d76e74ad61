// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/app/dto"
	"github.com/edzeame-del/ghana-cargo-logistics/app/middleware"
	businessflow "github.com/edzeame-del/ghana-cargo-logistics/business_flow"
	"github.com/edzeame-del/ghana-cargo-logistics/config"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles staff authentication endpoints
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	security  config.SecurityConfig
	validator *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authFlow businessflow.AuthFlow, security config.SecurityConfig) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		security:  security,
		validator: validator.New(),
	}
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string, expiresIn int) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   expiresIn,
		Secure:   h.security.SessionCookieSecure,
		HTTPOnly: h.security.SessionCookieHTTPOnly,
		SameSite: h.security.SessionCookieSameSite,
	})
}

func (h *AuthHandler) clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.security.SessionCookieSecure,
		HTTPOnly: h.security.SessionCookieHTTPOnly,
		SameSite: h.security.SessionCookieSameSite,
	})
}

// Login authenticates a staff user and opens a session
// @Summary Staff login
// @Description Authenticate with username and password. The session token is returned in the body and set as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Session opened"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /api/v1/admin/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrorMessages(err))
	}

	result, err := h.authFlow.Login(createRequestContext(c, "/api/v1/admin/auth/login"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", "INVALID_CREDENTIALS", nil)
		}

		log.Println("Login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	h.setSessionCookie(c, result.Session.SessionToken, result.Session.ExpiresIn)
	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Logout closes the current session
// @Summary Staff logout
// @Description Revoke the current session token and clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LogoutResponse} "Session closed"
// @Failure 401 {object} dto.APIResponse "No active session"
// @Router /api/v1/admin/auth/logout [post]
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookieName)
	if token == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "No active session", "MISSING_SESSION_TOKEN", nil)
	}

	result, err := h.authFlow.Logout(createRequestContext(c, "/api/v1/admin/auth/logout"), token)
	if err != nil {
		if businessflow.IsSessionExpired(err) {
			h.clearSessionCookie(c)
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session already expired", "SESSION_EXPIRED", nil)
		}

		log.Println("Logout failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Logout failed", "LOGOUT_FAILED", nil)
	}

	h.clearSessionCookie(c)
	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
