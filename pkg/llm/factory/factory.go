package factory

import (
	"fmt"

	"frontline-citizen-be/pkg/llm"
	"frontline-citizen-be/pkg/llm/gemini"
	"frontline-citizen-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured generative backend.
func NewLLMProvider(provider, model, ollamaBaseURL, geminiAPIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
