package service

import (
	"context"
	"fmt"

	"pariksha/internal/domain"
	"pariksha/internal/dto"
	"pariksha/internal/logger"
	"pariksha/internal/util"

	"go.uber.org/zap"
)

// QuestionService is the staff-facing question bank CRUD. On create, a
// missing language block is machine-translated from the one provided; staff
// are expected to review the translation before publishing updates.
type QuestionService interface {
	Create(ctx context.Context, req *dto.QuestionUpsertRequest) (*dto.QuestionAdminResponse, error)
	Get(ctx context.Context, id string) (*dto.QuestionAdminResponse, error)
	Update(ctx context.Context, id string, req *dto.QuestionUpsertRequest) (*dto.QuestionAdminResponse, error)
	Delete(ctx context.Context, id string) error
}

type questionServiceImpl struct {
	questionRepo domain.QuestionRepository
	translator   domain.Translator
}

// NewQuestionService creates a new instance of QuestionService. translator
// may be nil; creation then requires both language blocks.
func NewQuestionService(questionRepo domain.QuestionRepository, translator domain.Translator) QuestionService {
	return &questionServiceImpl{questionRepo: questionRepo, translator: translator}
}

func (s *questionServiceImpl) Create(ctx context.Context, req *dto.QuestionUpsertRequest) (*dto.QuestionAdminResponse, error) {
	english, nepali, err := s.resolveLanguageBlocks(ctx, req)
	if err != nil {
		return nil, err
	}

	question := domain.NewQuestion(
		req.Category,
		map[domain.Language]string{
			domain.LanguageEnglish: english.Text,
			domain.LanguageNepali:  nepali.Text,
		},
		map[domain.Language][]string{
			domain.LanguageEnglish: english.Options,
			domain.LanguageNepali:  nepali.Options,
		},
		map[domain.Language]string{
			domain.LanguageEnglish: english.CorrectAnswer,
			domain.LanguageNepali:  nepali.CorrectAnswer,
		},
	)
	question.ID = util.NewULID()
	if err := question.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		return nil, domain.NewInternalError("Failed to create question", err)
	}

	logger.Get().Info("Question created",
		zap.String("questionID", question.ID),
		zap.String("category", question.Category))
	return toQuestionAdminResponse(question), nil
}

// resolveLanguageBlocks fills a missing language via the translator. Both
// missing is an input error, not a translation job.
func (s *questionServiceImpl) resolveLanguageBlocks(ctx context.Context, req *dto.QuestionUpsertRequest) (*dto.QuestionOptionSet, *dto.QuestionOptionSet, error) {
	english, nepali := req.English, req.Nepali
	if english == nil && nepali == nil {
		return nil, nil, domain.NewInvalidInputError("at least one language block is required")
	}

	var err error
	if english == nil {
		english, err = s.translateBlock(ctx, nepali, domain.LanguageEnglish)
		if err != nil {
			return nil, nil, err
		}
	}
	if nepali == nil {
		nepali, err = s.translateBlock(ctx, english, domain.LanguageNepali)
		if err != nil {
			return nil, nil, err
		}
	}
	return english, nepali, nil
}

func (s *questionServiceImpl) translateBlock(ctx context.Context, source *dto.QuestionOptionSet, target domain.Language) (*dto.QuestionOptionSet, error) {
	if s.translator == nil {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("language block %s is required (no translator configured)", target))
	}

	out := &dto.QuestionOptionSet{Options: make([]string, len(source.Options))}
	var err error
	if out.Text, err = s.translator.Translate(ctx, source.Text, target); err != nil {
		return nil, domain.NewInternalError("Failed to translate question text", err)
	}
	correctIdx := -1
	for i, opt := range source.Options {
		if out.Options[i], err = s.translator.Translate(ctx, opt, target); err != nil {
			return nil, domain.NewInternalError("Failed to translate option", err)
		}
		if opt == source.CorrectAnswer {
			correctIdx = i
		}
	}
	if correctIdx < 0 {
		return nil, domain.NewInvalidInputError("correct answer must be one of the options")
	}
	// Reuse the translated option so the index-alignment invariant holds
	out.CorrectAnswer = out.Options[correctIdx]
	return out, nil
}

func (s *questionServiceImpl) Get(ctx context.Context, id string) (*dto.QuestionAdminResponse, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch question", err)
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return toQuestionAdminResponse(question), nil
}

func (s *questionServiceImpl) Update(ctx context.Context, id string, req *dto.QuestionUpsertRequest) (*dto.QuestionAdminResponse, error) {
	existing, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch question", err)
	}
	if existing == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}

	// Updates require both blocks explicitly: machine translation is an
	// authoring shortcut, not a way to silently rewrite published content.
	if req.English == nil || req.Nepali == nil {
		return nil, domain.NewInvalidInputError("both language blocks are required on update")
	}

	existing.Category = req.Category
	existing.Text = map[domain.Language]string{
		domain.LanguageEnglish: req.English.Text,
		domain.LanguageNepali:  req.Nepali.Text,
	}
	existing.Options = map[domain.Language][]string{
		domain.LanguageEnglish: req.English.Options,
		domain.LanguageNepali:  req.Nepali.Options,
	}
	existing.CorrectAnswer = map[domain.Language]string{
		domain.LanguageEnglish: req.English.CorrectAnswer,
		domain.LanguageNepali:  req.Nepali.CorrectAnswer,
	}
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.questionRepo.UpdateQuestion(ctx, existing); err != nil {
		return nil, domain.NewInternalError("Failed to update question", err)
	}

	logger.Get().Info("Question updated", zap.String("questionID", id))
	return toQuestionAdminResponse(existing), nil
}

func (s *questionServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.questionRepo.DeleteQuestion(ctx, id); err != nil {
		return domain.NewQuestionNotFoundError(id)
	}
	logger.Get().Info("Question deleted", zap.String("questionID", id))
	return nil
}

func toQuestionAdminResponse(q *domain.Question) *dto.QuestionAdminResponse {
	return &dto.QuestionAdminResponse{
		ID:       q.ID,
		Category: q.Category,
		English: dto.QuestionOptionSet{
			Text:          q.Text[domain.LanguageEnglish],
			Options:       q.Options[domain.LanguageEnglish],
			CorrectAnswer: q.CorrectAnswer[domain.LanguageEnglish],
		},
		Nepali: dto.QuestionOptionSet{
			Text:          q.Text[domain.LanguageNepali],
			Options:       q.Options[domain.LanguageNepali],
			CorrectAnswer: q.CorrectAnswer[domain.LanguageNepali],
		},
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}
