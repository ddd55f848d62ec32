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

// AdminHandler groups the staff-only surfaces: user validation, the
// teacher-question queue, and question CRUD.
type AdminHandler struct {
	userService         service.UserService
	subscriptionService service.SubscriptionService
	teacherService      service.TeacherService
	questionService     service.QuestionService
	validator           *validation.Validator
}

func NewAdminHandler(
	userService service.UserService,
	subscriptionService service.SubscriptionService,
	teacherService service.TeacherService,
	questionService service.QuestionService,
) *AdminHandler {
	return &AdminHandler{
		userService:         userService,
		subscriptionService: subscriptionService,
		teacherService:      teacherService,
		questionService:     questionService,
		validator:           validation.NewValidator(),
	}
}

// ListUsers godoc
// @Summary List all users
// @Description Staff view of every profile with subscription state and pending teacher-question counts.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AdminUserListResponse
// @Failure 403 {object} middleware.ErrorResponse "Staff access required"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ValidateUser godoc
// @Summary Validate a subscription
// @Description Activates a pending paid subscription for the given number of weeks, unlocking paid features.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body dto.ValidateUserRequest true "Subscription duration"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/users/{id}/validate [post]
func (h *AdminHandler) ValidateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	var req dto.ValidateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateDurationWeeks(req.DurationWeeks); len(errs) > 0 {
		return errs
	}

	profile, err := h.subscriptionService.Validate(c.Context(), userID, req.DurationWeeks)
	if err != nil {
		return err
	}

	logger.Get().Info("Subscription validated",
		zap.String("userID", profile.ID),
		zap.Int("durationWeeks", req.DurationWeeks))
	return c.JSON(dto.MessageResponse{Message: "Subscription validated"})
}

// InvalidateUser godoc
// @Summary Invalidate a subscription
// @Description Reverts a validated subscription back to the pending state, locking paid features.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/users/{id}/invalidate [post]
func (h *AdminHandler) InvalidateUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	profile, err := h.subscriptionService.Invalidate(c.Context(), userID)
	if err != nil {
		return err
	}

	logger.Get().Info("Subscription invalidated", zap.String("userID", profile.ID))
	return c.JSON(dto.MessageResponse{Message: "Subscription invalidated"})
}

// PendingTeacherQuestions godoc
// @Summary List pending teacher questions
// @Description Returns the queue of unanswered questions, oldest first.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.PendingTeacherQuestionsResponse
// @Router /admin/teacher-questions [get]
func (h *AdminHandler) PendingTeacherQuestions(c *fiber.Ctx) error {
	resp, err := h.teacherService.PendingQueue(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AnswerTeacherQuestion godoc
// @Summary Answer a teacher question
// @Description Records an answer for a pending question and notifies the asking user.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body dto.AnswerTeacherQuestionRequest true "Answer text"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Failure 409 {object} middleware.ErrorResponse "Question already resolved"
// @Router /admin/teacher-questions/{id}/answer [post]
func (h *AdminHandler) AnswerTeacherQuestion(c *fiber.Ctx) error {
	questionID := c.Params("id")
	staffID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.AnswerTeacherQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateAnswerRequest(questionID, req.AnswerText); len(errs) > 0 {
		return errs
	}

	if err := h.teacherService.Answer(c.Context(), questionID, req.AnswerText, staffID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Answer recorded"})
}

// RejectTeacherQuestion godoc
// @Summary Reject a teacher question
// @Description Resolves a pending question without an answer. The asking user is not notified and keeps seeing the question as pending.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Failure 409 {object} middleware.ErrorResponse "Question already resolved"
// @Router /admin/teacher-questions/{id}/reject [post]
func (h *AdminHandler) RejectTeacherQuestion(c *fiber.Ctx) error {
	questionID := c.Params("id")
	staffID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.teacherService.Reject(c.Context(), questionID, staffID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question rejected"})
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Creates a bilingual question. When only one language block is supplied the other is filled by machine translation.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.QuestionUpsertRequest true "Question content"
// @Success 201 {object} dto.QuestionAdminResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid question content"
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateCategory(req.Category); len(errs) > 0 {
		return errs
	}

	resp, err := h.questionService.Create(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Description Returns a question with both language blocks and correct answers. Staff view only.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionAdminResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [get]
func (h *AdminHandler) GetQuestion(c *fiber.Ctx) error {
	resp, err := h.questionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Replaces a question's content. Both language blocks are required.
// @Tags admin
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param body body dto.QuestionUpsertRequest true "Question content"
// @Success 200 {object} dto.QuestionAdminResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid question content"
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [put]
func (h *AdminHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateCategory(req.Category); len(errs) > 0 {
		return errs
	}

	resp, err := h.questionService.Update(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Soft-deletes a question so it no longer appears in quizzes. Past results keep their recorded answers.
// @Tags admin
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [delete]
func (h *AdminHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.questionService.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question deleted"})
}
