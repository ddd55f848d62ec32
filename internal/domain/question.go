package domain

import (
	"context"
	"time"
)

// Language selects which side of a bilingual question is displayed.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageNepali  Language = "ne"
)

// ParseLanguage validates a raw language value, defaulting to English for an
// empty input.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish, LanguageNepali:
		return Language(s), nil
	case "":
		return LanguageEnglish, nil
	default:
		return "", NewInvalidInputError("unsupported language: " + s)
	}
}

// Question is one bilingual multiple-choice item. Options are two parallel
// ordered lists: Options[en][i] and Options[ne][i] denote the same semantic
// choice, and each correct answer must appear in its option list at the same
// index as its counterpart.
type Question struct {
	ID            string
	Category      string
	Text          map[Language]string
	Options       map[Language][]string
	CorrectAnswer map[Language]string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(category string, text map[Language]string, options map[Language][]string, correct map[Language]string) *Question {
	now := time.Now()
	return &Question{
		Category:      category,
		Text:          text,
		Options:       options,
		CorrectAnswer: correct,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the bilingual invariants: both languages present, option
// lists non-empty and index-aligned, and each correct answer present in its
// option list at the same index as its counterpart.
func (q *Question) Validate() error {
	if q.Category == "" {
		return NewInvalidInputError("category is required")
	}
	for _, lang := range []Language{LanguageEnglish, LanguageNepali} {
		if q.Text[lang] == "" {
			return NewInvalidInputError("question text is required for language " + string(lang))
		}
		if len(q.Options[lang]) == 0 {
			return NewInvalidInputError("at least one option is required for language " + string(lang))
		}
		if q.CorrectAnswer[lang] == "" {
			return NewInvalidInputError("correct answer is required for language " + string(lang))
		}
	}
	if len(q.Options[LanguageEnglish]) != len(q.Options[LanguageNepali]) {
		return NewInvalidInputError("option lists must be the same length in both languages")
	}
	enIdx := indexOf(q.Options[LanguageEnglish], q.CorrectAnswer[LanguageEnglish])
	neIdx := indexOf(q.Options[LanguageNepali], q.CorrectAnswer[LanguageNepali])
	if enIdx < 0 || neIdx < 0 {
		return NewInvalidInputError("correct answer must be one of the options")
	}
	if enIdx != neIdx {
		return NewInvalidInputError("correct answers must sit at the same option index in both languages")
	}
	return nil
}

func indexOf(options []string, answer string) int {
	for i, opt := range options {
		if opt == answer {
			return i
		}
	}
	return -1
}

// QuestionRepository defines the interface for question-bank persistence.
// Reads return (nil, nil) when no row matches.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestionByID(ctx context.Context, id string) (*Question, error)
	GetQuestionsByIDs(ctx context.Context, ids []string) ([]Question, error)
	GetRandomQuestions(ctx context.Context, category string, limit int) ([]Question, error)
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]string, error)
}
