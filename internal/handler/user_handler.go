package handler

import (
	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/service"
	"pariksha/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService         service.UserService
	subscriptionService service.SubscriptionService
	validator           *validation.Validator
}

func NewUserHandler(userService service.UserService, subscriptionService service.SubscriptionService) *UserHandler {
	return &UserHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		validator:           validation.NewValidator(),
	}
}

// GetMyProfile retrieves the profile of the currently authenticated user.
// @Summary Get My Profile
// @Description Returns the logged-in user's profile, subscription state, and remaining daily quotas. The subscription_expired flag is reported once, on the read that observed the expiry.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserProfileResponse
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// RequestUpgrade moves the user onto a paid plan awaiting staff validation.
// @Summary Request a plan upgrade
// @Description Switches the user to a paid plan. Paid features stay locked until a staff member validates the subscription.
// @Tags users
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpgradeRequest true "Target plan"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/upgrade [post]
func (h *UserHandler) RequestUpgrade(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpgradeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateUpgradeRequest(req.Plan); len(errs) > 0 {
		return errs
	}

	plan, err := domain.ParsePlan(req.Plan)
	if err != nil {
		return err
	}

	if _, err := h.subscriptionService.RequestUpgrade(c.Context(), userID, plan); err != nil {
		return err
	}

	logger.Get().Info("Plan upgrade requested",
		zap.String("userID", userID),
		zap.String("plan", req.Plan))
	return c.JSON(dto.MessageResponse{Message: "Upgrade requested. Your subscription is awaiting validation."})
}

// ClearNotifications zeroes the unread counter.
// @Summary Clear unread notifications
// @Description Resets the unread notification counter and records the check time used for is_new flags.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /users/me/notifications/clear [post]
func (h *UserHandler) ClearNotifications(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.userService.ClearNotifications(c.Context(), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Notifications cleared"})
}
