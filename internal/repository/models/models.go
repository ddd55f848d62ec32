package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// UserProfile is the user_profiles row. Quota counters and validation fields
// are updated with field-level statements only.
type UserProfile struct {
	ID                    string         `db:"id"`
	GoogleID              string         `db:"google_id"`
	Email                 string         `db:"email"`
	Name                  sql.NullString `db:"name"`
	ProfilePictureURL     sql.NullString `db:"profile_picture_url"`
	Plan                  string         `db:"plan"`
	Validated             bool           `db:"validated"`
	ExpiryDate            sql.NullTime   `db:"expiry_date"`
	QuizCountToday        int            `db:"quiz_count_today"`
	LastQuizDate          sql.NullTime   `db:"last_quiz_date"`
	AskTeacherCount       int            `db:"ask_teacher_count"`
	LastAskTeacherDate    sql.NullTime   `db:"last_ask_teacher_date"`
	UnreadNotifications   int            `db:"unread_notifications"`
	LastNotificationCheck sql.NullTime   `db:"last_notification_check"`
	IsAdmin               bool           `db:"is_admin"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
	DeletedAt             sql.NullTime   `db:"deleted_at"`
}

// Question is the questions row. Option lists are JSON-encoded per language
// and index-aligned across the two columns.
type Question struct {
	ID              string       `db:"id"`
	Category        string       `db:"category"`
	TextEN          string       `db:"text_en"`
	TextNE          string       `db:"text_ne"`
	OptionsEN       StringSlice  `db:"options_en"`
	OptionsNE       StringSlice  `db:"options_ne"`
	CorrectAnswerEN string       `db:"correct_answer_en"`
	CorrectAnswerNE string       `db:"correct_answer_ne"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	DeletedAt       sql.NullTime `db:"deleted_at"`
}

// QuizResult is the quiz_results row. Answers are a JSON snapshot so the
// result survives later question-bank edits.
type QuizResult struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	Percentage     int       `db:"percentage"`
	Answers        string    `db:"answers"`
	CompletedAt    time.Time `db:"completed_at"`
	CreatedAt      time.Time `db:"created_at"`
}

// TeacherQuestion is the teacher_questions row.
type TeacherQuestion struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	QuestionText string         `db:"question_text"`
	Status       string         `db:"status"`
	AskedAt      time.Time      `db:"asked_at"`
	AnswerText   sql.NullString `db:"answer_text"`
	AnsweredAt   sql.NullTime   `db:"answered_at"`
	AnsweredBy   sql.NullString `db:"answered_by"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
