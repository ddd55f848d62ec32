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

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	quizService service.QuizService
	profileRepo domain.UserProfileRepository
	validator   *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, profileRepo domain.UserProfileRepository) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		profileRepo: profileRepo,
		validator:   validation.NewValidator(),
	}
}

// StartQuiz godoc
// @Summary Start a quiz
// @Description Draws a random question set for a category. Works for guests; logged-in users are checked against their daily quota.
// @Tags quiz
// @Produce json
// @Param category query string true "Question category"
// @Param language query string false "Display language (en or ne, default en)"
// @Success 200 {object} dto.QuizStartResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "No questions in category"
// @Failure 429 {object} middleware.ErrorResponse "Daily quota exceeded"
// @Router /quiz/start [get]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	category := c.Query("category")
	if errs := h.validator.ValidateCategory(category); len(errs) > 0 {
		return errs
	}

	lang, err := domain.ParseLanguage(c.Query("language"))
	if err != nil {
		return err
	}

	profile, err := optionalProfile(c, h.profileRepo)
	if err != nil {
		return err
	}

	resp, err := h.quizService.StartQuiz(c.Context(), profile, category, lang)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores a quiz attempt. Guests must send the session_id from start; logged-in attempts consume one quiz quota unit and are saved to history.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizSubmitRequest true "Selected answers"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Session or question not found"
// @Failure 429 {object} middleware.ErrorResponse "Daily quota exceeded"
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse quiz submit body", zap.Error(err))
		return domain.NewInvalidInputError("invalid request body")
	}

	profile, err := optionalProfile(c, h.profileRepo)
	if err != nil {
		return err
	}

	if profile == nil {
		if req.SessionID == "" {
			return domain.NewInvalidInputError("session_id is required for guest attempts")
		}
	} else if errs := h.validator.ValidateQuizSubmitRequest(req.QuestionIDs, req.Selections); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.SubmitQuiz(c.Context(), profile, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetHistory godoc
// @Summary Get quiz history
// @Description Returns the logged-in user's past quiz results, newest first.
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Param limit query int false "Page size (default 10, max 50)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} dto.QuizHistoryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /quiz/history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var pagination dto.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return domain.NewInvalidInputError("invalid pagination parameters")
	}
	if errs := h.validator.ValidatePagination(pagination.Limit, pagination.Offset); len(errs) > 0 {
		return errs
	}

	resp, err := h.quizService.GetHistory(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetCategories godoc
// @Summary List quiz categories
// @Description Returns all categories that currently have questions.
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Router /quiz/categories [get]
func (h *QuizHandler) GetCategories(c *fiber.Ctx) error {
	resp, err := h.quizService.GetCategories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
