package dto

import "time"

// ValidateUserRequest activates a user's pending subscription.
// @Description Request body for validating a user's payment
type ValidateUserRequest struct {
	DurationWeeks int `json:"duration_weeks" validate:"required"` // Subscription length in weeks
}

// AdminUserItem is one user row in the staff listing.
type AdminUserItem struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name,omitempty"`
	Plan                string     `json:"plan"`
	SubscriptionState   string     `json:"subscription_state"`
	Validated           bool       `json:"validated"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	PendingQuestions    int        `json:"pending_questions"`
	UnreadNotifications int        `json:"unread_notifications"`
	CreatedAt           time.Time  `json:"created_at"`
}

// AdminUserListResponse is the staff user listing.
type AdminUserListResponse struct {
	Users []AdminUserItem `json:"users"`
}

// QuestionOptionSet holds one language's rendering of a question.
type QuestionOptionSet struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

// QuestionUpsertRequest creates or replaces a bilingual question. When one
// language block is omitted on create, it is machine-translated from the
// other.
// @Description Request body for creating or updating a question
type QuestionUpsertRequest struct {
	Category string             `json:"category" validate:"required"`
	English  *QuestionOptionSet `json:"english,omitempty"`
	Nepali   *QuestionOptionSet `json:"nepali,omitempty"`
}

// QuestionAdminResponse is the full bilingual question, correct answers
// included. Staff only.
type QuestionAdminResponse struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	English   QuestionOptionSet `json:"english"`
	Nepali    QuestionOptionSet `json:"nepali"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
