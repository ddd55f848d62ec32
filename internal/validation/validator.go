package validation

import (
	"pariksha/internal/domain"
	"regexp"
	"strings"
)

const (
	maxTeacherQuestionLength = 2000
	maxAnswerTextLength      = 5000
	maxCategoryLength        = 50
	maxSelectionsPerQuiz     = 50
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAskTeacherRequest validates a question submitted to the teacher channel
func (v *Validator) ValidateAskTeacherRequest(questionText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionText) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_text"))
	} else if len(questionText) > maxTeacherQuestionLength {
		errors = append(errors, domain.NewOutOfRangeError("question_text", len(questionText), 1, maxTeacherQuestionLength))
	}

	return errors
}

// ValidateAnswerRequest validates a staff answer to a teacher question
func (v *Validator) ValidateAnswerRequest(questionID, answerText string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !isValidULID(questionID) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", questionID))
	}

	if strings.TrimSpace(answerText) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer_text"))
	} else if len(answerText) > maxAnswerTextLength {
		errors = append(errors, domain.NewOutOfRangeError("answer_text", len(answerText), 1, maxAnswerTextLength))
	}

	return errors
}

// ValidateCategory validates a question category parameter
func (v *Validator) ValidateCategory(category string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
		return errors
	}

	if !isValidCategory(category) {
		errors = append(errors, domain.NewInvalidFormatError("category", category))
	}

	return errors
}

// ValidateQuizSubmitRequest validates a quiz submission payload
func (v *Validator) ValidateQuizSubmitRequest(questionIDs []string, selections map[string]string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(questionIDs) == 0 {
		errors = append(errors, domain.NewMissingFieldError("question_ids"))
	} else if len(questionIDs) > maxSelectionsPerQuiz {
		errors = append(errors, domain.NewOutOfRangeError("question_ids", len(questionIDs), 1, maxSelectionsPerQuiz))
	}

	for _, id := range questionIDs {
		if !isValidULID(id) {
			errors = append(errors, domain.NewInvalidFormatError("question_ids", id))
			break
		}
	}

	for id := range selections {
		if !contains(questionIDs, id) {
			errors = append(errors, domain.NewInvalidFormatError("selections", id))
			break
		}
	}

	return errors
}

// ValidateUpgradeRequest validates a subscription upgrade request
func (v *Validator) ValidateUpgradeRequest(plan string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(plan) == "" {
		errors = append(errors, domain.NewMissingFieldError("plan"))
		return errors
	}

	if _, err := domain.ParsePlan(plan); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("plan", plan))
	}

	return errors
}

// ValidateDurationWeeks validates the validation grant duration
func (v *Validator) ValidateDurationWeeks(weeks int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if weeks <= 0 || weeks > 104 {
		errors = append(errors, domain.NewOutOfRangeError("duration_weeks", weeks, 1, 104))
	}

	return errors
}

// ValidatePagination validates list pagination parameters
func (v *Validator) ValidatePagination(limit, offset int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if limit < 0 || limit > 100 {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, 100))
	}
	if offset < 0 {
		errors = append(errors, domain.NewOutOfRangeError("offset", offset, 0, 1<<30))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidCategory checks if the category format is valid
func isValidCategory(s string) bool {
	if len(s) == 0 || len(s) > maxCategoryLength {
		return false
	}
	validCategory := regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	return validCategory.MatchString(s)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
