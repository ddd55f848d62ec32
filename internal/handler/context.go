package handler

import (
	"pariksha/internal/domain"
	"pariksha/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// requireUserID extracts the authenticated user ID set by the auth middleware.
func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User ID not found in context")
	}
	return userID, nil
}

// optionalProfile loads the caller's profile when the request carries a valid
// token, and returns nil for guests. Used on routes behind OptionalAuth.
func optionalProfile(c *fiber.Ctx, repo domain.UserProfileRepository) (*domain.UserProfile, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return nil, nil
	}
	return repo.GetProfileByID(c.Context(), userID)
}

// requireProfile loads the caller's profile on routes behind Protected.
func requireProfile(c *fiber.Ctx, repo domain.UserProfileRepository) (*domain.UserProfile, error) {
	userID, err := requireUserID(c)
	if err != nil {
		return nil, err
	}
	profile, err := repo.GetProfileByID(c.Context(), userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.NewNotFoundError("user profile")
	}
	return profile, nil
}
