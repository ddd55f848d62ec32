package dto

import "time"

// QuizQuestionItem is a single question as presented to the client.
// The correct answer is never included.
type QuizQuestionItem struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// QuizStartResponse represents a freshly drawn quiz.
// @Description A drawn quiz session with its questions
type QuizStartResponse struct {
	SessionID string             `json:"session_id,omitempty"` // Set for guest sessions only
	Category  string             `json:"category"`
	Language  string             `json:"language"`
	Remaining *int               `json:"remaining,omitempty"` // Attempts left today; absent for guests, -1 for unlimited plans
	Questions []QuizQuestionItem `json:"questions"`
}

// QuizSubmitRequest represents the answers for one attempt.
// @Description Request body for submitting quiz answers
type QuizSubmitRequest struct {
	SessionID   string            `json:"session_id,omitempty"` // Required for guest attempts
	QuestionIDs []string          `json:"question_ids"`
	Selections  map[string]string `json:"selections"` // question ID -> selected option text
	Language    string            `json:"language"`
}

// ResultAnswerItem is one reviewed answer in a scored attempt.
type ResultAnswerItem struct {
	QuestionID     string `json:"question_id"`
	QuestionText   string `json:"question_text"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// QuizResultResponse represents a scored attempt.
// @Description Scored quiz attempt with the full answer review
type QuizResultResponse struct {
	ID             string             `json:"id,omitempty"` // Empty for guest attempts, which are not persisted
	Score          int                `json:"score"`
	TotalQuestions int                `json:"total_questions"`
	Percentage     int                `json:"percentage"`
	Answers        []ResultAnswerItem `json:"answers"`
	CompletedAt    time.Time          `json:"completed_at"`
}

// QuizHistoryResponse is the response for listing a user's past results.
type QuizHistoryResponse struct {
	Results        []QuizResultResponse `json:"results"`
	PaginationInfo PaginationInfo       `json:"pagination_info"`
}

// CategoryListResponse lists the available quiz categories.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
