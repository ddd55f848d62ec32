package translate

import (
	"context"
	"fmt"
	"strings"

	"pariksha/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

var languageNames = map[domain.Language]string{
	domain.LanguageEnglish: "English",
	domain.LanguageNepali:  "Nepali",
}

// OllamaTranslator implements the domain.Translator interface using a local
// Ollama model. It backs the admin question-authoring flow; user-facing
// request paths never call it.
type OllamaTranslator struct {
	llm *ollama.LLM
}

// NewOllamaTranslator creates a new OllamaTranslator.
func NewOllamaTranslator(serverURL, modelName string) (*OllamaTranslator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithModel(modelName),
		ollama.WithServerURL(serverURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client for translator: %w", err)
	}

	return &OllamaTranslator{llm: llm}, nil
}

// Translate renders text into the target language.
func (t *OllamaTranslator) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	if text == "" {
		return "", fmt.Errorf("input text cannot be empty for translation")
	}
	targetName, ok := languageNames[target]
	if !ok {
		return "", fmt.Errorf("unsupported target language: %s", target)
	}

	prompt := fmt.Sprintf(`Translate the following exam question text to %s. Respond with ONLY the translated text, no explanation.

Text: %s`, targetName, text)

	completion, err := llms.GenerateFromSinglePrompt(ctx, t.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to translate text: %w", err)
	}
	return strings.TrimSpace(completion), nil
}
