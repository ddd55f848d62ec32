package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pariksha/internal/cache"
	"pariksha/internal/config"
	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/util"

	"go.uber.org/zap"
)

const (
	cacheServiceQuiz    = "quiz"
	cacheObjectSession  = "session"
	cacheObjectCategory = "categories"

	defaultQuizSize  = 10
	maxHistoryLimit  = 50
	defaultHistLimit = 10
)

// guestSession is the cached state of an anonymous attempt: the drawn
// question IDs pinned to the language the quiz was served in.
type guestSession struct {
	QuestionIDs []string `json:"question_ids"`
	Category    string   `json:"category"`
	Language    string   `json:"language"`
}

// QuizService draws quizzes, scores submissions and serves result history.
type QuizService interface {
	// StartQuiz draws a random quiz for a category. A nil profile means a
	// guest attempt: the drawn question set is parked in the cache under a
	// session ID and no quota is consumed.
	StartQuiz(ctx context.Context, profile *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error)
	// SubmitQuiz scores an attempt. Logged-in attempts consume quiz quota
	// and are persisted; guest attempts are scored and discarded.
	SubmitQuiz(ctx context.Context, profile *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error)
	// GetHistory pages through a user's persisted results.
	GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizHistoryResponse, error)
	// GetCategories lists the available quiz categories.
	GetCategories(ctx context.Context) (*dto.CategoryListResponse, error)
}

type quizServiceImpl struct {
	questionRepo domain.QuestionRepository
	resultRepo   domain.QuizResultRepository
	quota        QuotaService
	cache        domain.Cache
	cacheCfg     config.CacheConfig
}

// NewQuizService creates a new instance of QuizService.
func NewQuizService(
	questionRepo domain.QuestionRepository,
	resultRepo domain.QuizResultRepository,
	quota QuotaService,
	cacheAdapter domain.Cache,
	cacheCfg config.CacheConfig,
) QuizService {
	return &quizServiceImpl{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		quota:        quota,
		cache:        cacheAdapter,
		cacheCfg:     cacheCfg,
	}
}

func (s *quizServiceImpl) StartQuiz(ctx context.Context, profile *domain.UserProfile, category string, lang domain.Language) (*dto.QuizStartResponse, error) {
	if category == "" {
		return nil, domain.NewInvalidInputError("category is required")
	}

	// Quota is checked here but only consumed on submit, so an abandoned
	// quiz costs nothing.
	var remaining *int
	if profile != nil {
		left := s.quota.Remaining(profile, domain.FeatureQuizAttempt, time.Now())
		if left == 0 {
			return nil, domain.NewQuotaExceededError(domain.FeatureQuizAttempt)
		}
		remaining = &left
	}

	questions, err := s.questionRepo.GetRandomQuestions(ctx, category, defaultQuizSize)
	if err != nil {
		return nil, domain.NewInternalError("Failed to draw questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewError(domain.CodeNoQuestionsAvailable,
			fmt.Sprintf("No questions available for category: %s", category), nil)
	}

	resp := &dto.QuizStartResponse{
		Category:  category,
		Language:  string(lang),
		Remaining: remaining,
		Questions: make([]dto.QuizQuestionItem, len(questions)),
	}
	for i, q := range questions {
		resp.Questions[i] = dto.QuizQuestionItem{
			ID:      q.ID,
			Text:    q.Text[lang],
			Options: q.Options[lang],
		}
	}

	if profile == nil {
		sessionID, err := s.storeGuestSession(ctx, questions, category, lang)
		if err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
	}

	return resp, nil
}

func (s *quizServiceImpl) storeGuestSession(ctx context.Context, questions []domain.Question, category string, lang domain.Language) (string, error) {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	session := guestSession{QuestionIDs: ids, Category: category, Language: string(lang)}
	payload, err := json.Marshal(session)
	if err != nil {
		return "", domain.NewInternalError("Failed to marshal guest session", err)
	}

	sessionID := util.NewULID()
	key := cache.GenerateCacheKey(cacheServiceQuiz, cacheObjectSession, sessionID)
	if err := s.cache.Set(ctx, key, string(payload), s.cacheCfg.SessionTTL); err != nil {
		return "", domain.NewInternalError("Failed to store guest session", err)
	}
	return sessionID, nil
}

func (s *quizServiceImpl) SubmitQuiz(ctx context.Context, profile *domain.UserProfile, req *dto.QuizSubmitRequest) (*dto.QuizResultResponse, error) {
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	questionIDs := req.QuestionIDs
	var session *guestSession
	if profile == nil {
		// Guests must present the session they were dealt
		session, err = s.loadGuestSession(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		// The session pins the language the quiz was served in
		if session.Language != string(lang) {
			return nil, domain.NewInvalidInputError(
				fmt.Sprintf("quiz session was served in language %q", session.Language))
		}
		questionIDs = session.QuestionIDs
	}
	if len(questionIDs) == 0 {
		return nil, domain.NewInvalidInputError("question_ids is required")
	}

	questions, err := s.questionRepo.GetQuestionsByIDs(ctx, questionIDs)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions for scoring", err)
	}
	if len(questions) != len(questionIDs) {
		return nil, domain.NewError(domain.CodeQuestionNotFound, "One or more submitted questions no longer exist", nil)
	}

	// Rows come back in storage order; the persisted review sheet must
	// follow the order the questions were presented in.
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]domain.Question, len(questionIDs))
	for i, id := range questionIDs {
		ordered[i] = byID[id]
	}

	now := time.Now()
	result := domain.ScoreAttempt(userIDOrEmpty(profile), ordered, req.Selections, lang, now)

	if profile != nil {
		// Quota is consumed on submit, after scoring cannot fail
		if err := s.quota.CheckAndConsume(ctx, profile, domain.FeatureQuizAttempt, now); err != nil {
			return nil, err
		}
		result.ID = util.NewULID()
		if err := s.resultRepo.CreateResult(ctx, result); err != nil {
			return nil, domain.NewInternalError("Failed to persist quiz result", err)
		}
		logger.Get().Info("Quiz submitted",
			zap.String("userID", profile.ID),
			zap.String("resultID", result.ID),
			zap.Int("score", result.Score),
			zap.Int("total", result.TotalQuestions))
	} else {
		// A session scores once
		key := cache.GenerateCacheKey(cacheServiceQuiz, cacheObjectSession, req.SessionID)
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to delete guest session", zap.Error(err), zap.String("sessionID", req.SessionID))
		}
		logger.Get().Info("Guest quiz scored",
			zap.String("sessionID", req.SessionID),
			zap.String("category", session.Category),
			zap.Int("score", result.Score),
			zap.Int("total", result.TotalQuestions))
	}

	return toResultResponse(result), nil
}

func (s *quizServiceImpl) loadGuestSession(ctx context.Context, sessionID string) (*guestSession, error) {
	if sessionID == "" {
		return nil, domain.NewInvalidInputError("session_id is required for guest submissions")
	}
	key := cache.GenerateCacheKey(cacheServiceQuiz, cacheObjectSession, sessionID)
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return nil, domain.NewError(domain.CodeSessionNotFound,
				fmt.Sprintf("Quiz session not found or expired: %s", sessionID), nil)
		}
		return nil, domain.NewInternalError("Failed to load guest session", err)
	}
	var session guestSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, domain.NewInternalError("Failed to unmarshal guest session", err)
	}
	return &session, nil
}

func (s *quizServiceImpl) GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.QuizHistoryResponse, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = defaultHistLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	results, total, err := s.resultRepo.GetResultsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz history", err)
	}

	resp := &dto.QuizHistoryResponse{
		Results: make([]dto.QuizResultResponse, len(results)),
		PaginationInfo: dto.PaginationInfo{
			TotalItems: total,
			Limit:      limit,
			Offset:     offset,
		},
	}
	for i := range results {
		resp.Results[i] = *toResultResponse(&results[i])
	}
	return resp, nil
}

func (s *quizServiceImpl) GetCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	key := cache.GenerateCacheKey(cacheServiceQuiz, cacheObjectCategory, "all")
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var resp dto.CategoryListResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		logger.Get().Warn("Failed to unmarshal cached categories, falling back to DB")
	} else if err != domain.ErrCacheMiss {
		logger.Get().Warn("Category cache read failed", zap.Error(err))
	}

	categories, err := s.questionRepo.ListCategories(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list categories", err)
	}

	resp := &dto.CategoryListResponse{Categories: categories}
	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.cacheCfg.QuestionTTL); err != nil {
			logger.Get().Warn("Category cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

func userIDOrEmpty(profile *domain.UserProfile) string {
	if profile == nil {
		return ""
	}
	return profile.ID
}

func toResultResponse(result *domain.QuizResult) *dto.QuizResultResponse {
	resp := &dto.QuizResultResponse{
		ID:             result.ID,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Answers:        make([]dto.ResultAnswerItem, len(result.Answers)),
		CompletedAt:    result.CompletedAt,
	}
	for i, a := range result.Answers {
		resp.Answers[i] = dto.ResultAnswerItem{
			QuestionID:     a.QuestionID,
			QuestionText:   a.QuestionText,
			SelectedAnswer: a.SelectedAnswer,
			CorrectAnswer:  a.CorrectAnswer,
			IsCorrect:      a.IsCorrect,
		}
	}
	return resp
}
