package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ai-guide-assistant/internal/config"
	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/database"
	"ai-guide-assistant/pkg/rag/session"
	"ai-guide-assistant/pkg/vectorstore"

	"github.com/redis/go-redis/v9"
)

// openVectorStores opens the passage index (required) and the search-log
// index (optional).
func (c *Container) openVectorStores(ctx context.Context) error {
	cfg := c.Config
	dim := cfg.Ai.EmbeddingDimension

	switch cfg.Retriever.VectorStore {
	case "memory":
		c.GuideStore = vectorstore.NewMemoryStore(dim)
		if cfg.Retriever.SearchLogging {
			c.SearchLogStore = vectorstore.NewMemoryStore(dim)
		}
		return nil

	case "pgvector":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: connect database: %v", vectorstore.ErrVectorStore, err)
		}
		c.db = db

		guide := vectorstore.NewPgvectorStore(db, cfg.Retriever.GuideIndex, dim)
		if !guide.IndexExists(ctx) {
			return fmt.Errorf("%w: index %q does not exist, run cmd/migrate first", config.ErrConfiguration, cfg.Retriever.GuideIndex)
		}
		c.GuideStore = guide

		if !cfg.Retriever.SearchLogging {
			return nil
		}
		logs := vectorstore.NewPgvectorStore(db, cfg.Retriever.SearchLogIndex, dim)
		if !logs.IndexExists(ctx) {
			c.Logger.Warn("Bootstrap", "Search log index missing, search logging disabled", map[string]interface{}{
				"index": cfg.Retriever.SearchLogIndex,
			})
			return nil
		}
		c.SearchLogStore = logs
		return nil

	default:
		return fmt.Errorf("%w: unknown vector store %q", config.ErrConfiguration, cfg.Retriever.VectorStore)
	}
}

func (c *Container) openSessionStore() error {
	switch c.Config.App.SessionStore {
	case "memory":
		c.Sessions = session.NewMemoryStore()
		return nil
	case "redis":
		if c.rdb == nil {
			return fmt.Errorf("%w: redis session store selected but redis is unreachable", config.ErrConfiguration)
		}
		c.Sessions = session.NewRedisStore(c.rdb, c.Config.App.SessionTTL)
		return nil
	default:
		return fmt.Errorf("%w: unknown session store %q", config.ErrConfiguration, c.Config.App.SessionStore)
	}
}

// connectRedis returns nil when Redis is not configured or not reachable.
func connectRedis(cfg *config.Config, log logger.ILogger) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
