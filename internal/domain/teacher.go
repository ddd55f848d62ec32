package domain

import (
	"context"
	"time"
)

// TeacherQuestionStatus is the lifecycle state of a user-submitted question.
type TeacherQuestionStatus string

const (
	TeacherQuestionPending  TeacherQuestionStatus = "pending"
	TeacherQuestionAnswered TeacherQuestionStatus = "answered"
	TeacherQuestionRejected TeacherQuestionStatus = "rejected"
)

// TeacherQuestion is a free-text question a user submits to staff. It is
// created pending and transitions exactly once, to answered or rejected.
// No further mutation is allowed after leaving pending.
type TeacherQuestion struct {
	ID           string
	UserID       string
	QuestionText string
	Status       TeacherQuestionStatus
	AskedAt      time.Time
	AnswerText   string
	AnsweredAt   *time.Time
	AnsweredBy   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTeacherQuestion creates a pending question.
func NewTeacherQuestion(userID, text string) *TeacherQuestion {
	now := time.Now()
	return &TeacherQuestion{
		UserID:       userID,
		QuestionText: text,
		Status:       TeacherQuestionPending,
		AskedAt:      now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the question
func (q *TeacherQuestion) Validate() error {
	if q.UserID == "" {
		return NewInvalidInputError("user_id is required")
	}
	if q.QuestionText == "" {
		return NewInvalidInputError("question text is required")
	}
	return nil
}

// Answer transitions a pending question to answered.
func (q *TeacherQuestion) Answer(answerText, staffID string, now time.Time) error {
	if q.Status != TeacherQuestionPending {
		return NewError(CodeAlreadyResolved, "teacher question has already been resolved", nil)
	}
	if answerText == "" {
		return NewInvalidInputError("answer text is required")
	}
	q.Status = TeacherQuestionAnswered
	q.AnswerText = answerText
	q.AnsweredAt = &now
	q.AnsweredBy = staffID
	return nil
}

// Reject transitions a pending question to rejected. Terminal; no
// notification is produced for rejections.
func (q *TeacherQuestion) Reject(staffID string, now time.Time) error {
	if q.Status != TeacherQuestionPending {
		return NewError(CodeAlreadyResolved, "teacher question has already been resolved", nil)
	}
	q.Status = TeacherQuestionRejected
	q.AnsweredAt = &now
	q.AnsweredBy = staffID
	return nil
}

// IsNewFor reports whether the answer is visually "new" for the asking user,
// derived from the profile's last notification check. Display-only; never
// stored.
func (q *TeacherQuestion) IsNewFor(lastCheck *time.Time) bool {
	if q.Status != TeacherQuestionAnswered || q.AnsweredAt == nil {
		return false
	}
	if lastCheck == nil {
		return true
	}
	return q.AnsweredAt.After(*lastCheck)
}

// TeacherQuestionRepository defines the interface for teacher-question
// persistence. The status transition is guarded in storage: Mark* calls only
// succeed while the row is still pending.
type TeacherQuestionRepository interface {
	CreateTeacherQuestion(ctx context.Context, question *TeacherQuestion) error
	GetTeacherQuestionByID(ctx context.Context, id string) (*TeacherQuestion, error)
	GetTeacherQuestionsByUserID(ctx context.Context, userID string) ([]TeacherQuestion, error)
	GetPendingTeacherQuestions(ctx context.Context) ([]TeacherQuestion, error)
	MarkAnswered(ctx context.Context, id, answerText, staffID string, answeredAt time.Time) error
	MarkRejected(ctx context.Context, id, staffID string, resolvedAt time.Time) error
	CountPendingByUserID(ctx context.Context, userID string) (int, error)
}
