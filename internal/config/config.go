package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// ErrConfiguration marks missing credentials, indices or invalid settings.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retriever RetrieverConfig
	Eval      EvaluationConfig
}

type AppConfig struct {
	Port               string        `env:"APP_PORT" envDefault:"3000"`
	Environment        string        `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string        `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	SearchLogFilePath  string        `env:"SEARCH_LOG_FILE_PATH" envDefault:"logs/search.log"`
	CorsAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
	NatsURL            string        `env:"NATS_URL"`
	RedisURL           string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	SessionStore       string        `env:"SESSION_STORE" envDefault:"memory"` // "memory" | "redis"
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"0s"`
}

type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION_STRING"`
	LogLevel   string `env:"DB_LOG_LEVEL" envDefault:"warn"`
}

type AIConfig struct {
	LLMProvider        string        `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" | "ollama"
	LLMModel           string        `env:"LLM_MODEL" envDefault:"gpt-4o"`
	EmbeddingProvider  string        `env:"EMBEDDING_PROVIDER" envDefault:"openai"`
	EmbeddingModel     string        `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-large"`
	EmbeddingDimension int           `env:"EMBEDDING_DIMENSION" envDefault:"3072"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL"`
	OllamaBaseURL      string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	RequestTimeout     time.Duration `env:"LLM_REQUEST_TIMEOUT" envDefault:"120s"`
}

type RetrieverConfig struct {
	Preset         string  `env:"RETRIEVER_PRESET" envDefault:"strict"` // "strict" | "lenient"
	TopK           int     `env:"RETRIEVER_TOP_K"`
	ScoreThreshold float64 `env:"RETRIEVER_SCORE_THRESHOLD" envDefault:"-1"`
	VectorStore    string  `env:"VECTOR_STORE" envDefault:"pgvector"` // "pgvector" | "memory"
	GuideIndex     string  `env:"GUIDE_INDEX" envDefault:"guide-index"`
	SearchLogIndex string  `env:"SEARCH_LOG_INDEX" envDefault:"search-logs"`
	SearchLogging  bool    `env:"SEARCH_LOGGING" envDefault:"true"`
}

type EvaluationConfig struct {
	DatasetPath     string  `env:"EVAL_DATASET_PATH"`
	OutputPath      string  `env:"EVAL_OUTPUT_PATH" envDefault:"evaluation_results.json"`
	MaxContexts     int     `env:"EVAL_MAX_CONTEXTS" envDefault:"3"`
	ContextMinScore float64 `env:"EVAL_CONTEXT_MIN_SCORE" envDefault:"0.3"`
	Concurrency     int     `env:"EVAL_CONCURRENCY" envDefault:"1"`
}

// retrieval presets mirror the two configurations the assistant has shipped with
var retrieverPresets = map[string]struct {
	topK      int
	threshold float64
}{
	"strict":  {topK: 6, threshold: 0.7},
	"lenient": {topK: 5, threshold: 0.3},
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: parse environment: %v", ErrConfiguration, err)
	}
	if err := cfg.applyRetrieverPreset(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyRetrieverPreset fills top-k and threshold from the preset unless set explicitly.
func (c *Config) applyRetrieverPreset() error {
	preset, ok := retrieverPresets[strings.ToLower(c.Retriever.Preset)]
	if !ok {
		return fmt.Errorf("%w: unknown retriever preset %q", ErrConfiguration, c.Retriever.Preset)
	}
	if c.Retriever.TopK <= 0 {
		c.Retriever.TopK = preset.topK
	}
	if c.Retriever.ScoreThreshold < 0 {
		c.Retriever.ScoreThreshold = preset.threshold
	}
	return nil
}

// Validate reports settings the answer pipeline cannot start without.
func (c *Config) Validate() error {
	var problems []string

	usesOpenAI := c.Ai.LLMProvider == "openai" || c.Ai.EmbeddingProvider == "openai"
	if usesOpenAI && c.Ai.OpenAIAPIKey == "" {
		problems = append(problems, "OPENAI_API_KEY is required for the openai provider")
	}
	if c.Retriever.VectorStore == "pgvector" && c.Database.Connection == "" {
		problems = append(problems, "DB_CONNECTION_STRING is required for the pgvector store")
	}
	if c.Retriever.TopK <= 0 {
		problems = append(problems, "RETRIEVER_TOP_K must be positive")
	}
	if c.Retriever.ScoreThreshold < 0 || c.Retriever.ScoreThreshold > 1 {
		problems = append(problems, "RETRIEVER_SCORE_THRESHOLD must be within [0,1]")
	}
	if c.Ai.EmbeddingDimension <= 0 {
		problems = append(problems, "EMBEDDING_DIMENSION must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
