package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRetrieverPresets(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		wantTopK      int
		wantThreshold float64
	}{
		{name: "strict by default", env: map[string]string{}, wantTopK: 6, wantThreshold: 0.7},
		{name: "lenient", env: map[string]string{"RETRIEVER_PRESET": "lenient"}, wantTopK: 5, wantThreshold: 0.3},
		{
			name:          "explicit values win",
			env:           map[string]string{"RETRIEVER_PRESET": "lenient", "RETRIEVER_TOP_K": "10", "RETRIEVER_SCORE_THRESHOLD": "0"},
			wantTopK:      10,
			wantThreshold: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RETRIEVER_PRESET", "strict")
			t.Setenv("RETRIEVER_TOP_K", "0")
			t.Setenv("RETRIEVER_SCORE_THRESHOLD", "-1")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantTopK, cfg.Retriever.TopK)
			assert.Equal(t, tt.wantThreshold, cfg.Retriever.ScoreThreshold)
		})
	}
}

func TestLoadUnknownPreset(t *testing.T) {
	t.Setenv("RETRIEVER_PRESET", "greedy")

	_, err := Load()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Ai: AIConfig{
				LLMProvider:        "openai",
				EmbeddingProvider:  "openai",
				OpenAIAPIKey:       "k",
				EmbeddingDimension: 3072,
			},
			Retriever: RetrieverConfig{TopK: 6, ScoreThreshold: 0.7, VectorStore: "memory"},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing api key", mutate: func(c *Config) { c.Ai.OpenAIAPIKey = "" }},
		{name: "pgvector without dsn", mutate: func(c *Config) { c.Retriever.VectorStore = "pgvector" }},
		{name: "zero top-k", mutate: func(c *Config) { c.Retriever.TopK = 0 }},
		{name: "threshold above one", mutate: func(c *Config) { c.Retriever.ScoreThreshold = 1.5 }},
		{name: "zero dimension", mutate: func(c *Config) { c.Ai.EmbeddingDimension = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
		})
	}
}

func TestValidateOllamaNeedsNoKey(t *testing.T) {
	cfg := &Config{
		Ai:        AIConfig{LLMProvider: "ollama", EmbeddingProvider: "ollama", EmbeddingDimension: 768},
		Retriever: RetrieverConfig{TopK: 5, ScoreThreshold: 0.3, VectorStore: "memory"},
	}
	assert.NoError(t, cfg.Validate())
}
