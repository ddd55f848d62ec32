package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

// NewSQLXQuestionRepository creates a new instance of sqlxQuestionRepository.
func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:       m.ID,
		Category: m.Category,
		Text: map[domain.Language]string{
			domain.LanguageEnglish: m.TextEN,
			domain.LanguageNepali:  m.TextNE,
		},
		Options: map[domain.Language][]string{
			domain.LanguageEnglish: m.OptionsEN,
			domain.LanguageNepali:  m.OptionsNE,
		},
		CorrectAnswer: map[domain.Language]string{
			domain.LanguageEnglish: m.CorrectAnswerEN,
			domain.LanguageNepali:  m.CorrectAnswerNE,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainQuestion(q *domain.Question) *models.Question {
	if q == nil {
		return nil
	}
	return &models.Question{
		ID:              q.ID,
		Category:        q.Category,
		TextEN:          q.Text[domain.LanguageEnglish],
		TextNE:          q.Text[domain.LanguageNepali],
		OptionsEN:       models.StringSlice(q.Options[domain.LanguageEnglish]),
		OptionsNE:       models.StringSlice(q.Options[domain.LanguageNepali]),
		CorrectAnswerEN: q.CorrectAnswer[domain.LanguageEnglish],
		CorrectAnswerNE: q.CorrectAnswer[domain.LanguageNepali],
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// CreateQuestion inserts a new bilingual question.
func (r *sqlxQuestionRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO questions (id, category, text_en, text_ne, options_en, options_ne,
	            correct_answer_en, correct_answer_ne, created_at, updated_at)
	          VALUES (:id, :category, :text_en, :text_ne, :options_en, :options_ne,
	            :correct_answer_en, :correct_answer_ne, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// GetQuestionByID retrieves a single question.
func (r *sqlxQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	var m models.Question
	query := `SELECT * FROM questions WHERE id = :id AND deleted_at IS NULL`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetQuestionByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &m, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by id: %w", err)
	}
	return toDomainQuestion(&m), nil
}

// GetQuestionsByIDs fetches a batch of questions. Missing IDs are simply
// absent from the result; callers that care must compare lengths.
func (r *sqlxQuestionRepository) GetQuestionsByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	if len(ids) == 0 {
		return []domain.Question{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM questions WHERE id IN (?) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build IN query for questions: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []models.Question
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get questions by ids: %w", err)
	}

	questions := make([]domain.Question, len(rows))
	for i := range rows {
		questions[i] = *toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// GetRandomQuestions draws up to limit questions from a category. The draw
// order is the quiz order, so randomization happens here and nowhere else.
func (r *sqlxQuestionRepository) GetRandomQuestions(ctx context.Context, category string, limit int) ([]domain.Question, error) {
	var rows []models.Question
	query := `SELECT * FROM questions WHERE category = $1 AND deleted_at IS NULL ORDER BY RANDOM() LIMIT $2`

	if err := r.db.SelectContext(ctx, &rows, query, category, limit); err != nil {
		return nil, fmt.Errorf("failed to get random questions: %w", err)
	}

	questions := make([]domain.Question, len(rows))
	for i := range rows {
		questions[i] = *toDomainQuestion(&rows[i])
	}
	return questions, nil
}

// UpdateQuestion rewrites all content fields of an existing question.
func (r *sqlxQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	m := fromDomainQuestion(question)
	m.UpdatedAt = time.Now()

	query := `UPDATE questions SET
	            category = :category,
	            text_en = :text_en,
	            text_ne = :text_ne,
	            options_en = :options_en,
	            options_ne = :options_ne,
	            correct_answer_en = :correct_answer_en,
	            correct_answer_ne = :correct_answer_ne,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
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

// DeleteQuestion soft-deletes a question so past results keep resolving.
func (r *sqlxQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	query := `UPDATE questions SET deleted_at = :deleted_at, updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	now := time.Now()
	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"deleted_at": now,
		"updated_at": now,
	})
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
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

// ListCategories returns the distinct live categories in alphabetical order.
func (r *sqlxQuestionRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	query := `SELECT DISTINCT category FROM questions WHERE deleted_at IS NULL ORDER BY category`

	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
