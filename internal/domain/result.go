package domain

import (
	"context"
	"math"
	"time"
)

// NotAnsweredSentinel is recorded as the selected answer for questions the
// user skipped.
const NotAnsweredSentinel = "Not Answered"

// ResultAnswer is one scored question inside a QuizResult. Question and
// answer text are snapshotted so historical results stay readable after the
// question bank changes or a question is deleted.
type ResultAnswer struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// QuizResult is the immutable record persisted when an attempt is submitted.
type QuizResult struct {
	ID             string
	UserID         string
	Score          int
	TotalQuestions int
	Percentage     int
	Answers        []ResultAnswer
	CompletedAt    time.Time
	CreatedAt      time.Time
}

// ScoreAttempt scores an ordered list of questions against the user's
// selection map and produces a QuizResult. selections maps question ID to the
// literal option text the user picked; absent entries are recorded as
// unanswered and incorrect. A selection is correct iff it exactly equals the
// correct-answer text in the language active at submission time. A question
// with no correct answer stored for that language is unanswerable and scores
// as incorrect rather than failing the whole result.
func ScoreAttempt(userID string, questions []Question, selections map[string]string, lang Language, now time.Time) *QuizResult {
	answers := make([]ResultAnswer, len(questions))
	score := 0
	for i, q := range questions {
		selected, answered := selections[q.ID]
		correct := q.CorrectAnswer[lang]
		isCorrect := answered && correct != "" && selected == correct
		if isCorrect {
			score++
		}
		if !answered {
			selected = NotAnsweredSentinel
		}
		answers[i] = ResultAnswer{
			QuestionID:     q.ID,
			QuestionText:   q.Text[lang],
			SelectedAnswer: selected,
			CorrectAnswer:  correct,
			IsCorrect:      isCorrect,
		}
	}
	total := len(questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}
	return &QuizResult{
		UserID:         userID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Answers:        answers,
		CompletedAt:    now,
	}
}

// QuizResultRepository defines the interface for result persistence.
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *QuizResult) error
	GetResultByID(ctx context.Context, id string) (*QuizResult, error)
	GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]QuizResult, int64, error)
}
