package service

import (
	"context"
	"time"

	"pariksha/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockUserProfileRepository ---
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) GetProfileByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) GetProfileByGoogleID(ctx context.Context, googleID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) UpdateIdentity(ctx context.Context, profile *domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) UpdateSubscription(ctx context.Context, userID string, plan domain.Plan, validated bool, expiry *time.Time) error {
	args := m.Called(ctx, userID, plan, validated, expiry)
	return args.Error(0)
}

func (m *MockUserProfileRepository) UpdateQuizQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	args := m.Called(ctx, userID, count, lastDate)
	return args.Error(0)
}

func (m *MockUserProfileRepository) UpdateAskTeacherQuota(ctx context.Context, userID string, count int, lastDate time.Time) error {
	args := m.Called(ctx, userID, count, lastDate)
	return args.Error(0)
}

func (m *MockUserProfileRepository) IncrementUnreadNotifications(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserProfileRepository) ClearNotifications(ctx context.Context, userID string, checkedAt time.Time) error {
	args := m.Called(ctx, userID, checkedAt)
	return args.Error(0)
}

func (m *MockUserProfileRepository) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProfile), args.Error(1)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetRandomQuestions(ctx context.Context, category string, limit int) ([]domain.Question, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- MockQuizResultRepository ---
type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) GetResultByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.QuizResult, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.QuizResult), args.Get(1).(int64), args.Error(2)
}

// --- MockTeacherQuestionRepository ---
type MockTeacherQuestionRepository struct {
	mock.Mock
}

func (m *MockTeacherQuestionRepository) CreateTeacherQuestion(ctx context.Context, question *domain.TeacherQuestion) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockTeacherQuestionRepository) GetTeacherQuestionByID(ctx context.Context, id string) (*domain.TeacherQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherQuestion), args.Error(1)
}

func (m *MockTeacherQuestionRepository) GetTeacherQuestionsByUserID(ctx context.Context, userID string) ([]domain.TeacherQuestion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeacherQuestion), args.Error(1)
}

func (m *MockTeacherQuestionRepository) GetPendingTeacherQuestions(ctx context.Context) ([]domain.TeacherQuestion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeacherQuestion), args.Error(1)
}

func (m *MockTeacherQuestionRepository) MarkAnswered(ctx context.Context, id, answerText, staffID string, answeredAt time.Time) error {
	args := m.Called(ctx, id, answerText, staffID, answeredAt)
	return args.Error(0)
}

func (m *MockTeacherQuestionRepository) MarkRejected(ctx context.Context, id, staffID string, resolvedAt time.Time) error {
	args := m.Called(ctx, id, staffID, resolvedAt)
	return args.Error(0)
}

func (m *MockTeacherQuestionRepository) CountPendingByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockTranslator ---
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	args := m.Called(ctx, text, target)
	return args.String(0), args.Error(1)
}
