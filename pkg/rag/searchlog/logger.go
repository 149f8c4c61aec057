package searchlog

import (
	"context"
	"errors"
	"fmt"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/embedding"
	"ai-guide-assistant/pkg/events"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/vectorstore"

	"github.com/google/uuid"
)

// ErrDisabled is returned when no log index is available.
var ErrDisabled = errors.New("search logging disabled")

// EventPublisher announces stored records, e.g. on NATS.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger embeds queries and writes them to the search-log index.
type Logger struct {
	embedder  embedding.EmbeddingProvider
	store     vectorstore.Store
	publisher EventPublisher
	log       logger.ILogger
}

// NewLogger creates a Logger. A nil store disables logging; a nil publisher
// skips event publication.
func NewLogger(embedder embedding.EmbeddingProvider, store vectorstore.Store, publisher EventPublisher, log logger.ILogger) *Logger {
	return &Logger{
		embedder:  embedder,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

func (l *Logger) Enabled() bool {
	return l != nil && l.store != nil && l.embedder != nil
}

// Record stores one entry under a fresh UUID.
func (l *Logger) Record(ctx context.Context, entry Entry) (*Record, error) {
	if !l.Enabled() {
		return nil, ErrDisabled
	}

	vector, err := l.embedder.Generate(ctx, entry.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %w", rag.ErrExternalService, err)
	}

	record := Record{ID: uuid.NewString(), Entry: entry}
	err = l.store.Upsert(ctx, []vectorstore.Record{{
		ID:       record.ID,
		Vector:   vector,
		Metadata: record.Metadata(),
	}})
	if err != nil {
		return nil, fmt.Errorf("%w: upsert search log: %w", rag.ErrExternalService, err)
	}

	l.log.Info("SearchLog", "Search query logged", map[string]interface{}{
		"id":           record.ID,
		"session_id":   record.SessionID,
		"result_count": record.ResultCount,
		"top_scores":   record.TopScores,
	})

	if l.publisher != nil {
		event := events.NewSearchLoggedEvent(record.ID, record.SessionID, record.Query, record.ResultCount, record.TopScores, record.Timestamp)
		if err := l.publisher.Publish(ctx, event); err != nil {
			l.log.Warn("SearchLog", "Failed to publish search event", map[string]interface{}{
				"id":    record.ID,
				"error": err.Error(),
			})
		}
	}

	return &record, nil
}
