package service

import (
	"context"
	"testing"

	"pariksha/internal/domain"
	"pariksha/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func englishBlock() *dto.QuestionOptionSet {
	return &dto.QuestionOptionSet{
		Text:          "Capital of Nepal?",
		Options:       []string{"Kathmandu", "Pokhara"},
		CorrectAnswer: "Kathmandu",
	}
}

func nepaliBlock() *dto.QuestionOptionSet {
	return &dto.QuestionOptionSet{
		Text:          "नेपालको राजधानी?",
		Options:       []string{"काठमाडौं", "पोखरा"},
		CorrectAnswer: "काठमाडौं",
	}
}

func TestQuestionService_Create_BothLanguages(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	translator := new(MockTranslator)
	svc := NewQuestionService(questionRepo, translator)

	questionRepo.On("CreateQuestion", mock.Anything, mock.AnythingOfType("*domain.Question")).Return(nil)

	resp, err := svc.Create(context.Background(), &dto.QuestionUpsertRequest{
		Category: "geography",
		English:  englishBlock(),
		Nepali:   nepaliBlock(),
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Kathmandu", resp.English.CorrectAnswer)
	assert.Equal(t, "काठमाडौं", resp.Nepali.CorrectAnswer)
	translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_Create_TranslatesMissingNepali(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	translator := new(MockTranslator)
	svc := NewQuestionService(questionRepo, translator)

	translator.On("Translate", mock.Anything, "Capital of Nepal?", domain.LanguageNepali).Return("नेपालको राजधानी?", nil)
	translator.On("Translate", mock.Anything, "Kathmandu", domain.LanguageNepali).Return("काठमाडौं", nil)
	translator.On("Translate", mock.Anything, "Pokhara", domain.LanguageNepali).Return("पोखरा", nil)
	questionRepo.On("CreateQuestion", mock.Anything, mock.AnythingOfType("*domain.Question")).Return(nil)

	resp, err := svc.Create(context.Background(), &dto.QuestionUpsertRequest{
		Category: "geography",
		English:  englishBlock(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "नेपालको राजधानी?", resp.Nepali.Text)
	// The translated correct answer is the translated option at the same index
	assert.Equal(t, "काठमाडौं", resp.Nepali.CorrectAnswer)
	translator.AssertExpectations(t)
}

func TestQuestionService_Create_NoLanguages(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, nil)

	_, err := svc.Create(context.Background(), &dto.QuestionUpsertRequest{Category: "geography"})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestQuestionService_Create_NoTranslatorConfigured(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, nil)

	_, err := svc.Create(context.Background(), &dto.QuestionUpsertRequest{
		Category: "geography",
		English:  englishBlock(),
	})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestQuestionService_Update_RequiresBothBlocks(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, nil)

	existing := bilingualQuestion("q1", "geography")
	questionRepo.On("GetQuestionByID", mock.Anything, "q1").Return(&existing, nil)

	_, err := svc.Update(context.Background(), "q1", &dto.QuestionUpsertRequest{
		Category: "geography",
		English:  englishBlock(),
	})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	questionRepo.AssertNotCalled(t, "UpdateQuestion", mock.Anything, mock.Anything)
}

func TestQuestionService_Update_Success(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, nil)

	existing := bilingualQuestion("q1", "geography")
	questionRepo.On("GetQuestionByID", mock.Anything, "q1").Return(&existing, nil)
	questionRepo.On("UpdateQuestion", mock.Anything, mock.AnythingOfType("*domain.Question")).Return(nil)

	resp, err := svc.Update(context.Background(), "q1", &dto.QuestionUpsertRequest{
		Category: "history",
		English:  englishBlock(),
		Nepali:   nepaliBlock(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "history", resp.Category)
	questionRepo.AssertExpectations(t)
}

func TestQuestionService_Get_NotFound(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, nil)

	questionRepo.On("GetQuestionByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.Get(context.Background(), "missing")

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuestionNotFound, domainErr.Code)
}
