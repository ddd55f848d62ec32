package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/repository/models"
	"pariksha/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxTeacherQuestionRepository implements domain.TeacherQuestionRepository
// using sqlx.
type sqlxTeacherQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXTeacherQuestionRepository creates a new instance of sqlxTeacherQuestionRepository.
func NewSQLXTeacherQuestionRepository(db *sqlx.DB) domain.TeacherQuestionRepository {
	return &sqlxTeacherQuestionRepository{db: db}
}

func toDomainTeacherQuestion(m *models.TeacherQuestion) *domain.TeacherQuestion {
	if m == nil {
		return nil
	}
	return &domain.TeacherQuestion{
		ID:           m.ID,
		UserID:       m.UserID,
		QuestionText: m.QuestionText,
		Status:       domain.TeacherQuestionStatus(m.Status),
		AskedAt:      m.AskedAt,
		AnswerText:   m.AnswerText.String,
		AnsweredAt:   util.NullTimeToTimePtr(m.AnsweredAt),
		AnsweredBy:   m.AnsweredBy.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainTeacherQuestion(q *domain.TeacherQuestion) *models.TeacherQuestion {
	if q == nil {
		return nil
	}
	return &models.TeacherQuestion{
		ID:           q.ID,
		UserID:       q.UserID,
		QuestionText: q.QuestionText,
		Status:       string(q.Status),
		AskedAt:      q.AskedAt,
		AnswerText:   util.StringToNullString(q.AnswerText),
		AnsweredAt:   util.TimePtrToNullTime(q.AnsweredAt),
		AnsweredBy:   util.StringToNullString(q.AnsweredBy),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// CreateTeacherQuestion inserts a new pending question.
func (r *sqlxTeacherQuestionRepository) CreateTeacherQuestion(ctx context.Context, question *domain.TeacherQuestion) error {
	m := fromDomainTeacherQuestion(question)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO teacher_questions (id, user_id, question_text, status, asked_at,
	            answer_text, answered_at, answered_by, created_at, updated_at)
	          VALUES (:id, :user_id, :question_text, :status, :asked_at,
	            :answer_text, :answered_at, :answered_by, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create teacher question: %w", err)
	}
	return nil
}

// GetTeacherQuestionByID retrieves one question.
func (r *sqlxTeacherQuestionRepository) GetTeacherQuestionByID(ctx context.Context, id string) (*domain.TeacherQuestion, error) {
	var m models.TeacherQuestion
	query := `SELECT * FROM teacher_questions WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetTeacherQuestionByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &m, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get teacher question by id: %w", err)
	}
	return toDomainTeacherQuestion(&m), nil
}

// GetTeacherQuestionsByUserID returns a user's questions, newest first.
func (r *sqlxTeacherQuestionRepository) GetTeacherQuestionsByUserID(ctx context.Context, userID string) ([]domain.TeacherQuestion, error) {
	var rows []models.TeacherQuestion
	query := `SELECT * FROM teacher_questions WHERE user_id = $1 ORDER BY asked_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get teacher questions by user: %w", err)
	}

	questions := make([]domain.TeacherQuestion, len(rows))
	for i := range rows {
		questions[i] = *toDomainTeacherQuestion(&rows[i])
	}
	return questions, nil
}

// GetPendingTeacherQuestions returns the staff work queue, oldest first.
func (r *sqlxTeacherQuestionRepository) GetPendingTeacherQuestions(ctx context.Context) ([]domain.TeacherQuestion, error) {
	var rows []models.TeacherQuestion
	query := `SELECT * FROM teacher_questions WHERE status = $1 ORDER BY asked_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query, string(domain.TeacherQuestionPending)); err != nil {
		return nil, fmt.Errorf("failed to get pending teacher questions: %w", err)
	}

	questions := make([]domain.TeacherQuestion, len(rows))
	for i := range rows {
		questions[i] = *toDomainTeacherQuestion(&rows[i])
	}
	return questions, nil
}

// MarkAnswered transitions a pending question to answered. The status guard
// lives in the WHERE clause so two staff members cannot both resolve the
// same question.
func (r *sqlxTeacherQuestionRepository) MarkAnswered(ctx context.Context, id, answerText, staffID string, answeredAt time.Time) error {
	query := `UPDATE teacher_questions SET
	            status = :answered,
	            answer_text = :answer_text,
	            answered_at = :answered_at,
	            answered_by = :answered_by,
	            updated_at = :updated_at
	          WHERE id = :id AND status = :pending`

	args := map[string]interface{}{
		"id":          id,
		"answered":    string(domain.TeacherQuestionAnswered),
		"pending":     string(domain.TeacherQuestionPending),
		"answer_text": answerText,
		"answered_at": answeredAt,
		"answered_by": staffID,
		"updated_at":  time.Now(),
	}
	return r.execTransition(ctx, query, args)
}

// MarkRejected transitions a pending question to rejected. No answer text
// and no notification follow.
func (r *sqlxTeacherQuestionRepository) MarkRejected(ctx context.Context, id, staffID string, resolvedAt time.Time) error {
	query := `UPDATE teacher_questions SET
	            status = :rejected,
	            answered_at = :answered_at,
	            answered_by = :answered_by,
	            updated_at = :updated_at
	          WHERE id = :id AND status = :pending`

	args := map[string]interface{}{
		"id":          id,
		"rejected":    string(domain.TeacherQuestionRejected),
		"pending":     string(domain.TeacherQuestionPending),
		"answered_at": resolvedAt,
		"answered_by": staffID,
		"updated_at":  time.Now(),
	}
	return r.execTransition(ctx, query, args)
}

// CountPendingByUserID counts a user's open questions.
func (r *sqlxTeacherQuestionRepository) CountPendingByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM teacher_questions WHERE user_id = $1 AND status = $2`

	if err := r.db.GetContext(ctx, &count, query, userID, string(domain.TeacherQuestionPending)); err != nil {
		return 0, fmt.Errorf("failed to count pending teacher questions: %w", err)
	}
	return count, nil
}

// execTransition runs a guarded status update; zero rows means the question
// was missing or already resolved.
func (r *sqlxTeacherQuestionRepository) execTransition(ctx context.Context, query string, args map[string]interface{}) error {
	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to update teacher question: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
