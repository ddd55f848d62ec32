package service

import (
	"context"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/util"

	"go.uber.org/zap"
)

// TeacherService handles the ask-the-teacher channel: paid users submit
// questions, staff answer or silently reject them, and answers feed the
// unread-notification counter.
type TeacherService interface {
	// Ask submits a question. Requires an unlocked entitlement and consumes
	// one ask-teacher quota unit immediately.
	Ask(ctx context.Context, profile *domain.UserProfile, questionText string) (*dto.TeacherQuestionResponse, error)
	// MyQuestions lists the asking user's questions with is-new flags
	// derived from their last notification check.
	MyQuestions(ctx context.Context, profile *domain.UserProfile) (*dto.TeacherQuestionListResponse, error)
	// PendingQueue lists all pending questions for staff, oldest first.
	PendingQueue(ctx context.Context) (*dto.PendingTeacherQuestionsResponse, error)
	// Answer resolves a pending question and notifies the asking user.
	Answer(ctx context.Context, questionID, answerText, staffID string) error
	// Reject resolves a pending question with no answer and no
	// notification.
	Reject(ctx context.Context, questionID, staffID string) error
}

type teacherServiceImpl struct {
	teacherRepo domain.TeacherQuestionRepository
	profileRepo domain.UserProfileRepository
	quota       QuotaService
}

// NewTeacherService creates a new instance of TeacherService.
func NewTeacherService(
	teacherRepo domain.TeacherQuestionRepository,
	profileRepo domain.UserProfileRepository,
	quota QuotaService,
) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		profileRepo: profileRepo,
		quota:       quota,
	}
}

func (s *teacherServiceImpl) Ask(ctx context.Context, profile *domain.UserProfile, questionText string) (*dto.TeacherQuestionResponse, error) {
	if !profile.FeaturesUnlocked() {
		return nil, domain.NewFeatureLockedError("Subscription is awaiting validation")
	}

	question := domain.NewTeacherQuestion(profile.ID, questionText)
	question.ID = util.NewULID()
	if err := question.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.quota.CheckAndConsume(ctx, profile, domain.FeatureAskTeacher, now); err != nil {
		return nil, err
	}

	if err := s.teacherRepo.CreateTeacherQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("Failed to create teacher question", err)
	}

	logger.Get().Info("Teacher question asked",
		zap.String("userID", profile.ID),
		zap.String("questionID", question.ID))
	return toTeacherQuestionResponse(question, profile.LastNotificationCheck), nil
}

func (s *teacherServiceImpl) MyQuestions(ctx context.Context, profile *domain.UserProfile) (*dto.TeacherQuestionListResponse, error) {
	questions, err := s.teacherRepo.GetTeacherQuestionsByUserID(ctx, profile.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list teacher questions", err)
	}

	resp := &dto.TeacherQuestionListResponse{
		Questions: make([]dto.TeacherQuestionResponse, len(questions)),
	}
	for i := range questions {
		resp.Questions[i] = *toTeacherQuestionResponse(&questions[i], profile.LastNotificationCheck)
	}
	return resp, nil
}

func (s *teacherServiceImpl) PendingQueue(ctx context.Context) (*dto.PendingTeacherQuestionsResponse, error) {
	questions, err := s.teacherRepo.GetPendingTeacherQuestions(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list pending teacher questions", err)
	}

	resp := &dto.PendingTeacherQuestionsResponse{
		Questions: make([]dto.PendingTeacherQuestionItem, len(questions)),
	}
	for i, q := range questions {
		item := dto.PendingTeacherQuestionItem{
			ID:           q.ID,
			UserID:       q.UserID,
			QuestionText: q.QuestionText,
			AskedAt:      q.AskedAt,
		}
		// Best effort: the queue is usable without emails
		if profile, err := s.profileRepo.GetProfileByID(ctx, q.UserID); err == nil && profile != nil {
			item.UserEmail = profile.Email
		}
		resp.Questions[i] = item
	}
	return resp, nil
}

func (s *teacherServiceImpl) Answer(ctx context.Context, questionID, answerText, staffID string) error {
	if answerText == "" {
		return domain.NewInvalidInputError("answer text is required")
	}

	question, err := s.getQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if question.Status != domain.TeacherQuestionPending {
		return domain.NewError(domain.CodeAlreadyResolved,
			fmt.Sprintf("Question already resolved: %s", questionID), nil)
	}

	now := time.Now()
	if err := s.teacherRepo.MarkAnswered(ctx, questionID, answerText, staffID, now); err != nil {
		// The storage guard lost a race with another staff member
		return domain.NewError(domain.CodeAlreadyResolved,
			fmt.Sprintf("Question already resolved: %s", questionID), err)
	}

	if err := s.profileRepo.IncrementUnreadNotifications(ctx, question.UserID); err != nil {
		// The answer is already recorded; surface the failure so the
		// caller can retry the notification.
		logger.Get().Error("Failed to increment unread notifications",
			zap.Error(err),
			zap.String("userID", question.UserID),
			zap.String("questionID", questionID))
		return domain.NewInternalError("Answer recorded but user notification failed", err)
	}

	logger.Get().Info("Teacher question answered",
		zap.String("questionID", questionID),
		zap.String("staffID", staffID))
	return nil
}

func (s *teacherServiceImpl) Reject(ctx context.Context, questionID, staffID string) error {
	question, err := s.getQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if question.Status != domain.TeacherQuestionPending {
		return domain.NewError(domain.CodeAlreadyResolved,
			fmt.Sprintf("Question already resolved: %s", questionID), nil)
	}

	if err := s.teacherRepo.MarkRejected(ctx, questionID, staffID, time.Now()); err != nil {
		return domain.NewError(domain.CodeAlreadyResolved,
			fmt.Sprintf("Question already resolved: %s", questionID), err)
	}

	// Rejection is silent: no notification, the user keeps seeing a
	// question that never gets an answer.
	logger.Get().Info("Teacher question rejected",
		zap.String("questionID", questionID),
		zap.String("staffID", staffID))
	return nil
}

func (s *teacherServiceImpl) getQuestion(ctx context.Context, questionID string) (*domain.TeacherQuestion, error) {
	question, err := s.teacherRepo.GetTeacherQuestionByID(ctx, questionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch teacher question", err)
	}
	if question == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Teacher question not found with ID: %s", questionID))
	}
	return question, nil
}

func toTeacherQuestionResponse(q *domain.TeacherQuestion, lastCheck *time.Time) *dto.TeacherQuestionResponse {
	resp := &dto.TeacherQuestionResponse{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Status:       string(q.Status),
		AskedAt:      q.AskedAt,
		IsNew:        q.IsNewFor(lastCheck),
	}
	switch q.Status {
	case domain.TeacherQuestionAnswered:
		resp.AnswerText = q.AnswerText
		resp.AnsweredAt = q.AnsweredAt
	case domain.TeacherQuestionRejected:
		// Rejection is invisible to the asking user: the question just
		// stays pending forever from their point of view.
		resp.Status = string(domain.TeacherQuestionPending)
	}
	return resp
}
