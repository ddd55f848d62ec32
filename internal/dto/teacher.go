package dto

import "time"

// AskTeacherRequest represents a user's question for the teaching staff.
// @Description Request body for asking the teacher a question
type AskTeacherRequest struct {
	QuestionText string `json:"question_text" validate:"required"`
}

// TeacherQuestionResponse represents one teacher question and, once
// resolved, its answer. Rejected questions simply stay unanswered from
// the asking user's point of view.
type TeacherQuestionResponse struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	Status       string     `json:"status"`
	AskedAt      time.Time  `json:"asked_at"`
	AnswerText   string     `json:"answer_text,omitempty"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
	IsNew        bool       `json:"is_new"` // Answered since the user's last notification check
}

// TeacherQuestionListResponse lists a user's questions.
type TeacherQuestionListResponse struct {
	Questions []TeacherQuestionResponse `json:"questions"`
}

// PendingTeacherQuestionItem is one entry in the staff work queue.
type PendingTeacherQuestionItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email,omitempty"`
	QuestionText string    `json:"question_text"`
	AskedAt      time.Time `json:"asked_at"`
}

// PendingTeacherQuestionsResponse is the staff queue, oldest first.
type PendingTeacherQuestionsResponse struct {
	Questions []PendingTeacherQuestionItem `json:"questions"`
}

// AnswerTeacherQuestionRequest is the staff reply to a pending question.
// @Description Request body for answering a teacher question
type AnswerTeacherQuestionRequest struct {
	AnswerText string `json:"answer_text" validate:"required"`
}
