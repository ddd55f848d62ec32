package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxResultRepository implements domain.QuizResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainResult(m *models.QuizResult) (*domain.QuizResult, error) {
	if m == nil {
		return nil, nil
	}
	var answers []domain.ResultAnswer
	if m.Answers != "" {
		if err := json.Unmarshal([]byte(m.Answers), &answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result answers: %w", err)
		}
	}
	return &domain.QuizResult{
		ID:             m.ID,
		UserID:         m.UserID,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Percentage:     m.Percentage,
		Answers:        answers,
		CompletedAt:    m.CompletedAt,
		CreatedAt:      m.CreatedAt,
	}, nil
}

func fromDomainResult(r *domain.QuizResult) (*models.QuizResult, error) {
	if r == nil {
		return nil, nil
	}
	answersJSON, err := json.Marshal(r.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result answers: %w", err)
	}
	return &models.QuizResult{
		ID:             r.ID,
		UserID:         r.UserID,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		Answers:        string(answersJSON),
		CompletedAt:    r.CompletedAt,
		CreatedAt:      r.CreatedAt,
	}, nil
}

// CreateResult persists a scored attempt with its answer snapshot.
func (r *sqlxResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	m, err := fromDomainResult(result)
	if err != nil {
		return err
	}
	m.CreatedAt = time.Now()

	query := `INSERT INTO quiz_results (id, user_id, score, total_questions, percentage, answers, completed_at, created_at)
	          VALUES (:id, :user_id, :score, :total_questions, :percentage, :answers, :completed_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// GetResultByID retrieves one result.
func (r *sqlxResultRepository) GetResultByID(ctx context.Context, id string) (*domain.QuizResult, error) {
	var m models.QuizResult
	query := `SELECT * FROM quiz_results WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetResultByID: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &m, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz result by id: %w", err)
	}
	return toDomainResult(&m)
}

// GetResultsByUserID pages through a user's history, most recent first,
// and returns the total row count for the pager.
func (r *sqlxResultRepository) GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.QuizResult, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz results: %w", err)
	}

	var rows []models.QuizResult
	query := `SELECT * FROM quiz_results WHERE user_id = $1 ORDER BY completed_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to get quiz results by user: %w", err)
	}

	results := make([]domain.QuizResult, len(rows))
	for i := range rows {
		dr, err := toDomainResult(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		results[i] = *dr
	}
	return results, total, nil
}
