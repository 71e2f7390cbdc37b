package factory

import (
	"errors"
	"fmt"

	"airport-assistant-be/pkg/llm"
	"airport-assistant-be/pkg/llm/gemini"
	"airport-assistant-be/pkg/llm/ollama"
)

// ErrMissingAPIKey means the selected provider needs a credential that was not supplied.
var ErrMissingAPIKey = errors.New("missing API key")

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini", "":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
		}
		if modelName == "" {
			modelName = "gemini-1.5-flash"
		}
		return gemini.NewGeminiProvider(baseURL, apiKey, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
