package embedding

import (
	"fmt"
	"time"
)

// Settings carries what any of the supported backends may need.
type Settings struct {
	Provider  string
	Model     string
	Dimension int
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
}

func NewEmbeddingProvider(s Settings) (EmbeddingProvider, error) {
	switch s.Provider {
	case "openai":
		if s.APIKey == "" {
			return nil, fmt.Errorf("openai embedding provider requires an API key")
		}
		return NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model, s.Dimension, s.Timeout), nil
	case "ollama":
		return NewOllamaProvider(s.BaseURL, s.Model, s.Dimension, s.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
	}
}
