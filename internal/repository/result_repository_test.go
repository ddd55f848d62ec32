package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"pariksha/internal/domain"
	"pariksha/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupResultTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

var resultColumns = []string{
	"id", "user_id", "score", "total_questions", "percentage", "answers", "completed_at", "created_at",
}

const sampleAnswersJSON = `[{"question_id":"q1","question_text":"Capital of Nepal?","selected_answer":"Kathmandu","correct_answer":"Kathmandu","is_correct":true}]`

func TestResultConverters(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	m := &models.QuizResult{
		ID:             "r1",
		UserID:         "u1",
		Score:          1,
		TotalQuestions: 1,
		Percentage:     100,
		Answers:        sampleAnswersJSON,
		CompletedAt:    now,
		CreatedAt:      now,
	}

	r, err := toDomainResult(m)
	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.Len(t, r.Answers, 1)
	assert.Equal(t, "q1", r.Answers[0].QuestionID)
	assert.True(t, r.Answers[0].IsCorrect)

	back, err := fromDomainResult(r)
	assert.NoError(t, err)
	assert.JSONEq(t, sampleAnswersJSON, back.Answers)

	// Malformed snapshot surfaces an error instead of silently dropping answers
	m.Answers = `{not json`
	_, err = toDomainResult(m)
	assert.Error(t, err)

	r2, err := toDomainResult(nil)
	assert.NoError(t, err)
	assert.Nil(t, r2)
}

func TestSQLXResultRepository_CreateResult_Success(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	result := &domain.QuizResult{
		ID:             "r1",
		UserID:         "u1",
		Score:          2,
		TotalQuestions: 3,
		Percentage:     67,
		Answers: []domain.ResultAnswer{
			{QuestionID: "q1", QuestionText: "Q?", SelectedAnswer: "a", CorrectAnswer: "a", IsCorrect: true},
		},
		CompletedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO quiz_results`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateResult(context.Background(), result)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXResultRepository_GetResultByID_Success(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(resultColumns).
		AddRow("r1", "u1", 1, 1, 100, sampleAnswersJSON, now, now)

	mock.ExpectPrepare(`SELECT \* FROM quiz_results WHERE id = :id`).
		ExpectQuery().
		WithArgs("r1").
		WillReturnRows(rows)

	r, err := repo.GetResultByID(context.Background(), "r1")

	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.Equal(t, 100, r.Percentage)
	assert.Len(t, r.Answers, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXResultRepository_GetResultByID_NotFound(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	mock.ExpectPrepare(`SELECT \* FROM quiz_results WHERE id = :id`).
		ExpectQuery().
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	r, err := repo.GetResultByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXResultRepository_GetResultsByUserID_Success(t *testing.T) {
	db, mock := setupResultTestDB(t)
	repo := NewSQLXResultRepository(db)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quiz_results WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	rows := sqlmock.NewRows(resultColumns).
		AddRow("r2", "u1", 2, 3, 67, "[]", now, now).
		AddRow("r1", "u1", 1, 1, 100, sampleAnswersJSON, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM quiz_results WHERE user_id = \$1 ORDER BY completed_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("u1", 2, 0).
		WillReturnRows(rows)

	results, total, err := repo.GetResultsByUserID(context.Background(), "u1", 2, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, results, 2)
	assert.Equal(t, "r2", results[0].ID)
	assert.Empty(t, results[0].Answers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
