package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/handler"
	"pariksha/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	StartQuizFunc     func(ctx context.Context, profile *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error)
	SubmitQuizFunc    func(ctx context.Context, profile *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error)
	GetHistoryFunc    func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizHistoryResponse, error)
	GetCategoriesFunc func(ctx context.Context) (*dto.CategoryListResponse, error)
}

func (m *MockQuizService) StartQuiz(ctx context.Context, profile *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error) {
	if m.StartQuizFunc != nil {
		return m.StartQuizFunc(ctx, profile, category, lang)
	}
	panic("MockQuizService.StartQuizFunc not implemented")
}
func (m *MockQuizService) SubmitQuiz(ctx context.Context, profile *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error) {
	if m.SubmitQuizFunc != nil {
		return m.SubmitQuizFunc(ctx, profile, req)
	}
	panic("MockQuizService.SubmitQuizFunc not implemented")
}
func (m *MockQuizService) GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizHistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, userID, pagination)
	}
	panic("MockQuizService.GetHistoryFunc not implemented")
}
func (m *MockQuizService) GetCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc(ctx)
	}
	panic("MockQuizService.GetCategoriesFunc not implemented")
}

// MockProfileRepo implements domain.UserProfileRepository; only the read
// path is used by the handlers under test.
type MockProfileRepo struct {
	GetProfileByIDFunc func(ctx context.Context, userID string) (*domain.UserProfile, error)
}

func (m *MockProfileRepo) GetProfileByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if m.GetProfileByIDFunc != nil {
		return m.GetProfileByIDFunc(ctx, userID)
	}
	panic("MockProfileRepo.GetProfileByIDFunc not implemented")
}
func (m *MockProfileRepo) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	panic("not implemented")
}
func (m *MockProfileRepo) GetProfileByGoogleID(ctx context.Context, googleID string) (*domain.UserProfile, error) {
	panic("not implemented")
}
func (m *MockProfileRepo) UpdateIdentity(ctx context.Context, profile *domain.UserProfile) error {
	panic("not implemented")
}
func (m *MockProfileRepo) UpdateSubscription(ctx context.Context, userID string, plan domain.Plan, validated bool, expiry *time.Time) error {
	panic("not implemented")
}
func (m *MockProfileRepo) UpdateQuizQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	panic("not implemented")
}
func (m *MockProfileRepo) UpdateAskTeacherQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	panic("not implemented")
}
func (m *MockProfileRepo) IncrementUnreadNotifications(ctx context.Context, userID string) error {
	panic("not implemented")
}
func (m *MockProfileRepo) ClearNotifications(ctx context.Context, userID string, checkedAt time.Time) error {
	panic("not implemented")
}
func (m *MockProfileRepo) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	panic("not implemented")
}

const validQuestionID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func newQuizTestApp(quizHandler *handler.QuizHandler, userID string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	withUser := func(inner fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if userID != "" {
				c.Locals(middleware.UserIDKey, userID)
			}
			return inner(c)
		}
	}
	app.Get("/quiz/start", withUser(quizHandler.StartQuiz))
	app.Post("/quiz/submit", withUser(quizHandler.SubmitQuiz))
	app.Get("/quiz/history", withUser(quizHandler.GetHistory))
	app.Get("/quiz/categories", withUser(quizHandler.GetCategories))
	return app
}

func TestQuizHandler_StartQuiz(t *testing.T) {
	t.Run("Authenticated User", func(t *testing.T) {
		profile := domain.NewUserProfile("g1", "user@example.com")
		profile.ID = "user123"

		mockSvc := &MockQuizService{
			StartQuizFunc: func(ctx context.Context, p *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error) {
				assert.NotNil(t, p)
				assert.Equal(t, "user123", p.ID)
				assert.Equal(t, "geography", category)
				assert.Equal(t, domain.LanguageNepali, lang)
				return &dto.QuizStartResponse{
					Category: category,
					Language: string(lang),
					Questions: []dto.QuizQuestionItem{
						{ID: validQuestionID, Text: "नेपालको राजधानी कुन हो?", Options: []string{"काठमाडौं", "पोखरा"}},
					},
				}, nil
			},
		}
		mockRepo := &MockProfileRepo{
			GetProfileByIDFunc: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
				assert.Equal(t, "user123", userID)
				return profile, nil
			},
		}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, mockRepo), "user123")

		req := httptest.NewRequest("GET", "/quiz/start?category=geography&language=ne", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.QuizStartResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body.SessionID)
		assert.Len(t, body.Questions, 1)
	})

	t.Run("Guest User", func(t *testing.T) {
		mockSvc := &MockQuizService{
			StartQuizFunc: func(ctx context.Context, p *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error) {
				assert.Nil(t, p, "guest requests must reach the service with a nil profile")
				return &dto.QuizStartResponse{
					SessionID: "01HGZ8VNRYXS8QKNJV5GRWPWDR",
					Category:  category,
					Language:  string(lang),
				}, nil
			},
		}
		mockRepo := &MockProfileRepo{}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, mockRepo), "")

		req := httptest.NewRequest("GET", "/quiz/start?category=geography", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.QuizStartResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.SessionID)
	})

	t.Run("Missing Category", func(t *testing.T) {
		mockSvc := &MockQuizService{}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, &MockProfileRepo{}), "")

		req := httptest.NewRequest("GET", "/quiz/start", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Quota Exceeded Maps To 429", func(t *testing.T) {
		profile := domain.NewUserProfile("g1", "user@example.com")
		profile.ID = "user123"

		mockSvc := &MockQuizService{
			StartQuizFunc: func(ctx context.Context, p *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error) {
				return nil, domain.NewQuotaExceededError(domain.FeatureQuizAttempt)
			},
		}
		mockRepo := &MockProfileRepo{
			GetProfileByIDFunc: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
				return profile, nil
			},
		}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, mockRepo), "user123")

		req := httptest.NewRequest("GET", "/quiz/start?category=geography", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	})
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	t.Run("Authenticated User", func(t *testing.T) {
		profile := domain.NewUserProfile("g1", "user@example.com")
		profile.ID = "user123"

		submitted := dto.QuizSubmitRequest{
			QuestionIDs: []string{validQuestionID},
			Selections:  map[string]string{validQuestionID: "Kathmandu"},
			Language:    "en",
		}

		mockSvc := &MockQuizService{
			SubmitQuizFunc: func(ctx context.Context, p *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error) {
				assert.NotNil(t, p)
				assert.Equal(t, submitted.Selections, req.Selections)
				return &dto.QuizResultResponse{
					ID:             "res1",
					Score:          1,
					TotalQuestions: 1,
					Percentage:     100,
					CompletedAt:    time.Now(),
				}, nil
			},
		}
		mockRepo := &MockProfileRepo{
			GetProfileByIDFunc: func(ctx context.Context, userID string) (*domain.UserProfile, error) {
				return profile, nil
			},
		}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, mockRepo), "user123")

		bodyBytes, _ := json.Marshal(submitted)
		req := httptest.NewRequest("POST", "/quiz/submit", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.QuizResultResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "res1", body.ID)
	})

	t.Run("Guest Without Session ID", func(t *testing.T) {
		mockSvc := &MockQuizService{}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, &MockProfileRepo{}), "")

		bodyBytes, _ := json.Marshal(dto.QuizSubmitRequest{
			QuestionIDs: []string{validQuestionID},
		})
		req := httptest.NewRequest("POST", "/quiz/submit", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Guest With Session ID", func(t *testing.T) {
		mockSvc := &MockQuizService{
			SubmitQuizFunc: func(ctx context.Context, p *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error) {
				assert.Nil(t, p)
				assert.Equal(t, "01HGZ8VNRYXS8QKNJV5GRWPWDR", req.SessionID)
				return &dto.QuizResultResponse{Score: 0, TotalQuestions: 1, CompletedAt: time.Now()}, nil
			},
		}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, &MockProfileRepo{}), "")

		bodyBytes, _ := json.Marshal(dto.QuizSubmitRequest{
			SessionID:  "01HGZ8VNRYXS8QKNJV5GRWPWDR",
			Selections: map[string]string{},
		})
		req := httptest.NewRequest("POST", "/quiz/submit", bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.QuizResultResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Empty(t, body.ID, "guest results are not persisted and carry no ID")
	})
}

func TestQuizHandler_GetHistory(t *testing.T) {
	t.Run("Requires Auth", func(t *testing.T) {
		app := newQuizTestApp(handler.NewQuizHandler(&MockQuizService{}, &MockProfileRepo{}), "")

		req := httptest.NewRequest("GET", "/quiz/history", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Passes Pagination", func(t *testing.T) {
		mockSvc := &MockQuizService{
			GetHistoryFunc: func(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizHistoryResponse, error) {
				assert.Equal(t, "user123", userID)
				assert.Equal(t, 5, pagination.Limit)
				assert.Equal(t, 10, pagination.Offset)
				return &dto.QuizHistoryResponse{
					Results:        []dto.QuizResultResponse{},
					PaginationInfo: dto.PaginationInfo{TotalItems: 0, Limit: 5, Offset: 10},
				}, nil
			},
		}
		app := newQuizTestApp(handler.NewQuizHandler(mockSvc, &MockProfileRepo{}), "user123")

		req := httptest.NewRequest("GET", "/quiz/history?limit=5&offset=10", nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestQuizHandler_GetCategories(t *testing.T) {
	mockSvc := &MockQuizService{
		GetCategoriesFunc: func(ctx context.Context) (*dto.CategoryListResponse, error) {
			return &dto.CategoryListResponse{Categories: []string{"geography", "history"}}, nil
		},
	}
	app := newQuizTestApp(handler.NewQuizHandler(mockSvc, &MockProfileRepo{}), "")

	req := httptest.NewRequest("GET", "/quiz/categories", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CategoryListResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"geography", "history"}, body.Categories)
}
