package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"pariksha/internal/config"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/middleware"
	"pariksha/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const oauthStateCookieName = "oauthstate"

type AuthHandler struct {
	authService service.AuthService
	appConfig   *config.Config
}

func NewAuthHandler(authService service.AuthService, appConfig *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		appConfig:   appConfig,
	}
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 302 {string} string "Redirects to Google"
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	appLogger := logger.Get()
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		appLogger.Error("Failed to generate random state for OAuth", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_STATE_GENERATION_ERROR", Message: "Could not generate state for OAuth flow", Status: fiber.StatusInternalServerError,
		})
	}
	state := base64.URLEncoding.EncodeToString(b)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	loginURL := h.authService.GetGoogleLoginURL(state)
	return c.Redirect(loginURL, fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Handles user authentication after Google login, issues JWTs.
// @Tags auth
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid state or code"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	appLogger := logger.Get()
	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	if code == "" {
		appLogger.Warn("Authorization code missing in Google OAuth callback")
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_CODE", Message: "Authorization code is missing", Status: fiber.StatusBadRequest,
		})
	}
	if receivedState == "" || expectedState == "" || receivedState != expectedState {
		appLogger.Warn("OAuth state mismatch", zap.String("received", receivedState))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_STATE", Message: "OAuth state mismatch or missing", Status: fiber.StatusBadRequest,
		})
	}

	accessToken, refreshToken, profile, err := h.authService.HandleGoogleCallback(c.Context(), code, receivedState, expectedState)
	if err != nil {
		appLogger.Error("Failed to handle Google callback", zap.Error(err))
		if errors.Is(err, service.ErrInvalidAuthState) || errors.Is(err, service.ErrFailedToExchangeToken) {
			return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
				Code: "OAUTH_CALLBACK_ERROR", Message: err.Error(), Status: fiber.StatusBadRequest,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(middleware.ErrorResponse{
			Code: "OAUTH_PROCESSING_ERROR", Message: "Error processing Google login", Status: fiber.StatusInternalServerError,
		})
	}

	if profile != nil {
		appLogger.Info("Google OAuth callback successful, tokens issued", zap.String("userID", profile.ID))
	}

	return c.Status(fiber.StatusOK).JSON(dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// RefreshToken issues new tokens from a valid refresh token.
// @Summary Refresh JWT tokens
// @Description Provides a new access and refresh token pair if the provided refresh token is valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} middleware.ErrorResponse "Refresh token missing"
// @Failure 401 {object} middleware.ErrorResponse "Refresh token invalid or expired"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	appLogger := logger.Get()
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		appLogger.Warn("Failed to parse request body for token refresh", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_REFRESH_TOKEN", Message: "Refresh token is missing in request body", Status: fiber.StatusBadRequest,
		})
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		appLogger.Warn("Failed to refresh token", zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "INVALID_REFRESH_TOKEN", Message: "Failed to refresh token", Status: fiber.StatusUnauthorized,
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.TokenResponse{AccessToken: newAccessToken, RefreshToken: newRefreshToken})
}

// Logout handles user logout.
// @Summary Logout user
// @Description Logout is client-side for JWTs; the server only records the event.
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	appLogger := logger.Get()
	if userID, ok := c.Locals(middleware.UserIDKey).(string); ok && userID != "" {
		appLogger.Info("User logout request", zap.String("userID", userID))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logout successful. Please discard your tokens."})
}
