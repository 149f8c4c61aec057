package search

import (
	"context"
	"errors"
	"fmt"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/rag/searchlog"
)

// EntrySink accepts search-log entries without blocking on storage.
type EntrySink interface {
	Publish(ctx context.Context, entry searchlog.Entry) error
}

// LoggingRetriever delegates to another Retriever and reports every
// successful call to a search-log sink. Sink failures are logged and dropped.
type LoggingRetriever struct {
	next rag.Retriever
	sink EntrySink
	log  logger.ILogger
}

var _ rag.Retriever = (*LoggingRetriever)(nil)

func NewLoggingRetriever(next rag.Retriever, sink EntrySink, log logger.ILogger) *LoggingRetriever {
	return &LoggingRetriever{next: next, sink: sink, log: log}
}

func (r *LoggingRetriever) Retrieve(ctx context.Context, query string) ([]rag.Passage, error) {
	passages, err := r.next.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	r.emit(ctx, query, passages)
	return passages, nil
}

func (r *LoggingRetriever) emit(ctx context.Context, query string, passages []rag.Passage) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("SearchLog", "Search log emit panicked", map[string]interface{}{
				"panic": fmt.Sprint(rec),
			})
		}
	}()

	if r.sink == nil {
		return
	}

	scores := make([]float64, len(passages))
	for i, p := range passages {
		scores[i] = p.Score
	}
	entry := searchlog.NewEntry(query, scores, rag.SessionIDFrom(ctx))

	if err := r.sink.Publish(ctx, entry); err != nil {
		if errors.Is(err, searchlog.ErrDisabled) {
			r.log.Debug("SearchLog", "Search logging disabled", nil)
			return
		}
		r.log.Warn("SearchLog", "Failed to emit search log", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
	}
}
