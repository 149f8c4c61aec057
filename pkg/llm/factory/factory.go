package factory

import (
	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/llm/ollama"
	"ai-guide-assistant/pkg/llm/openai"
	"fmt"
	"time"
)

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

// Settings carries what any of the supported backends may need.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "openai":
		if s.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.Timeout), nil
	case "huggingface":
		// The router speaks the OpenAI chat completions protocol
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		return openai.NewOpenAIProvider(s.APIKey, baseURL, s.Model, s.Timeout), nil
	case "ollama":
		baseURL := s.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
