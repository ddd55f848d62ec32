package middleware

import (
	"fmt"
	"strings"

	"pariksha/internal/domain"
	"pariksha/internal/logger"
	"pariksha/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and sets the userID in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		// Ensure it's an access token
		if claims.TokenType != "access" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN_TYPE",
				Message: fmt.Sprintf("Invalid token type: expected access, got %s", claims.TokenType),
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(UserIDKey, claims.UserID)

		return c.Next()
	}
}

// OptionalAuth is a middleware function that optionally authenticates a user.
// If a valid access token is provided, it sets the userID in the context.
// Otherwise, it proceeds without setting the userID, allowing for guest access.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			logger.Get().Debug("OptionalAuth: Authorization scheme is not Bearer, proceeding as guest.", zap.String("header", authHeader))
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as guest.", zap.Error(err))
			return c.Next()
		}

		if claims.TokenType != "access" {
			logger.Get().Debug("OptionalAuth: Invalid token type, proceeding as guest.", zap.String("tokenType", claims.TokenType))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// AdminOnly gates staff routes. It must run after Protected, and loads the
// profile to check the admin flag rather than trusting anything in the token.
func AdminOnly(profileRepo domain.UserProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(UserIDKey).(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    string(domain.CodeUnauthorized),
				Message: "Authentication required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		profile, err := profileRepo.GetProfileByID(c.Context(), userID)
		if err != nil {
			return domain.NewInternalError("failed to load profile for admin check", err)
		}
		if profile == nil || !profile.IsAdmin {
			logger.Get().Warn("Admin route denied", zap.String("userID", userID))
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    string(domain.CodeForbidden),
				Message: "Staff access required",
				Status:  fiber.StatusForbidden,
			})
		}

		return c.Next()
	}
}
