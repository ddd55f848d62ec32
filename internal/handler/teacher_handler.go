package handler

import (
	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/service"
	"pariksha/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TeacherHandler handles the ask-teacher channel for regular users.
type TeacherHandler struct {
	teacherService service.TeacherService
	profileRepo    domain.UserProfileRepository
	validator      *validation.Validator
}

func NewTeacherHandler(teacherService service.TeacherService, profileRepo domain.UserProfileRepository) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
		profileRepo:    profileRepo,
		validator:      validation.NewValidator(),
	}
}

// Ask submits a question to the teacher channel.
// @Summary Ask a teacher
// @Description Submits a free-text question to the teacher queue. Requires an unlocked subscription and consumes one ask-teacher quota unit.
// @Tags teacher
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.AskTeacherRequest true "Question text"
// @Success 201 {object} dto.TeacherQuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse "Feature locked"
// @Failure 429 {object} middleware.ErrorResponse "Daily quota exceeded"
// @Router /teacher/questions [post]
func (h *TeacherHandler) Ask(c *fiber.Ctx) error {
	profile, err := requireProfile(c, h.profileRepo)
	if err != nil {
		return err
	}

	var req dto.AskTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateAskTeacherRequest(req.QuestionText); len(errs) > 0 {
		return errs
	}

	resp, err := h.teacherService.Ask(c.Context(), profile, req.QuestionText)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// MyQuestions lists the caller's submitted questions.
// @Summary List my teacher questions
// @Description Returns the caller's questions with answers where available. The is_new flag marks answers that arrived after the last notification check.
// @Tags teacher
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.TeacherQuestionListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /teacher/questions [get]
func (h *TeacherHandler) MyQuestions(c *fiber.Ctx) error {
	profile, err := requireProfile(c, h.profileRepo)
	if err != nil {
		return err
	}

	resp, err := h.teacherService.MyQuestions(c.Context(), profile)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
