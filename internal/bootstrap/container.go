package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ai-guide-assistant/internal/config"
	"ai-guide-assistant/internal/controller"
	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/internal/service"
	"ai-guide-assistant/internal/websocket"
	"ai-guide-assistant/pkg/embedding"
	"ai-guide-assistant/pkg/llm"
	"ai-guide-assistant/pkg/llm/factory"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/pipeline"
	"ai-guide-assistant/pkg/rag/prompt"
	"ai-guide-assistant/pkg/rag/reformulate"
	"ai-guide-assistant/pkg/rag/response"
	"ai-guide-assistant/pkg/rag/search"
	"ai-guide-assistant/pkg/rag/searchlog"
	"ai-guide-assistant/pkg/rag/session"
	"ai-guide-assistant/pkg/vectorstore"

	pktNats "ai-guide-assistant/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	LLM            llm.LLMProvider
	Embedder       embedding.EmbeddingProvider
	GuideStore     vectorstore.Store
	SearchLogStore vectorstore.Store // nil when search logging is off
	Sessions       session.Store
	Retriever      rag.Retriever
	Orchestrator   *pipeline.Orchestrator

	SearchLogDispatcher *searchlog.Dispatcher
	WebSocketHub        *websocket.Hub

	ChatService   service.IChatService
	IngestService service.IIngestService

	ChatController controller.IChatController

	db        *gorm.DB
	pubSub    *gochannel.GoChannel
	natsPub   *pktNats.Publisher
	rdb       *redis.Client
	searchLog logger.ILogger
}

// NewContainer wires the answer pipeline and its transports. Missing
// credentials or indices on the answer path are returned as configuration
// errors; the search-log path degrades to disabled instead.
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Logging
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	searchLogger := logger.NewIsolatedLogger(cfg.App.SearchLogFilePath)

	c := &Container{Config: cfg, Logger: sysLogger, searchLog: searchLogger}

	// 2. Providers
	llmProvider, err := factory.NewLLMProvider(llmSettings(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: llm provider: %v", config.ErrConfiguration, err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	embedder, err := embedding.NewEmbeddingProvider(embeddingSettings(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: embedding provider: %v", config.ErrConfiguration, err)
	}
	c.LLM = llmProvider
	c.Embedder = embedder

	// 3. Storage
	if err := c.openVectorStores(context.Background()); err != nil {
		c.Close()
		return nil, err
	}
	c.rdb = connectRedis(cfg, sysLogger)
	if err := c.openSessionStore(); err != nil {
		c.Close()
		return nil, err
	}

	// 4. Messaging
	c.pubSub = gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
		} else {
			c.natsPub = natsPub
		}
	}

	// 5. Pipeline
	var publisher searchlog.EventPublisher
	if c.natsPub != nil {
		publisher = c.natsPub
	}
	recorder := searchlog.NewLogger(embedder, c.SearchLogStore, publisher, searchLogger)
	c.SearchLogDispatcher = searchlog.NewDispatcher(c.pubSub, recorder, searchLogger)

	baseRetriever := search.NewVectorRetriever(embedder, c.GuideStore, search.Config{
		TopK:           cfg.Retriever.TopK,
		ScoreThreshold: cfg.Retriever.ScoreThreshold,
	})
	c.Retriever = search.NewLoggingRetriever(baseRetriever, c.SearchLogDispatcher, searchLogger)

	builder := prompt.NewBuilder()
	c.Orchestrator = pipeline.NewOrchestrator(
		reformulate.NewReformulator(llmProvider, builder),
		c.Retriever,
		response.NewGenerator(llmProvider, builder),
		c.Sessions,
		sysLogger,
	)

	// 6. Services & transport
	c.ChatService = service.NewChatService(c.Orchestrator)
	c.IngestService = service.NewIngestService(embedder, c.GuideStore, sysLogger)
	c.WebSocketHub = websocket.NewHub(c.rdb, c.ChatService, sysLogger)
	c.ChatController = controller.NewChatController(c.ChatService, c.WebSocketHub, sysLogger)

	return c, nil
}

// Start launches the background workers: the search-log consumer and the
// websocket hub.
func (c *Container) Start(ctx context.Context) error {
	if err := c.SearchLogDispatcher.Consume(ctx); err != nil {
		return fmt.Errorf("start search log consumer: %w", err)
	}
	go c.WebSocketHub.Run(ctx)
	return nil
}

// StartSearchLog launches only the search-log consumer, for batch tools.
func (c *Container) StartSearchLog(ctx context.Context) error {
	return c.SearchLogDispatcher.Consume(ctx)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	if c.pubSub != nil {
		if err := c.pubSub.Close(); err != nil {
			log.Printf("[WARN] Failed to close pubsub: %v", err)
		}
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.searchLog != nil {
		_ = c.searchLog.Sync()
	}
}

func llmSettings(cfg *config.Config) factory.Settings {
	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	return factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.Ai.OpenAIAPIKey,
		BaseURL:  baseURL,
		Timeout:  cfg.Ai.RequestTimeout,
	}
}

func embeddingSettings(cfg *config.Config) embedding.Settings {
	baseURL := cfg.Ai.OpenAIBaseURL
	if cfg.Ai.EmbeddingProvider == "ollama" {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	return embedding.Settings{
		Provider:  cfg.Ai.EmbeddingProvider,
		Model:     cfg.Ai.EmbeddingModel,
		Dimension: cfg.Ai.EmbeddingDimension,
		APIKey:    cfg.Ai.OpenAIAPIKey,
		BaseURL:   baseURL,
		Timeout:   cfg.Ai.RequestTimeout,
	}
}
