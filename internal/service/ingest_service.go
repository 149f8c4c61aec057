package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/embedding"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/utils"
	"ai-guide-assistant/pkg/vectorstore"

	"github.com/google/uuid"
)

const (
	ChunkSize    = 800
	ChunkOverlap = 200
)

// IIngestService indexes guide documents into the passage index.
type IIngestService interface {
	IngestFile(ctx context.Context, path string) (int, error)
	IngestText(ctx context.Context, source, text string) (int, error)
}

type ingestService struct {
	embedder embedding.EmbeddingProvider
	store    vectorstore.Store
	splitter *utils.TextSplitter
	logger   logger.ILogger
}

func NewIngestService(embedder embedding.EmbeddingProvider, store vectorstore.Store, log logger.ILogger) IIngestService {
	return &ingestService{
		embedder: embedder,
		store:    store,
		splitter: utils.NewTextSplitter(ChunkSize, ChunkOverlap),
		logger:   log,
	}
}

func (s *ingestService) IngestFile(ctx context.Context, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return s.IngestText(ctx, filepath.Base(path), string(content))
}

// IngestText splits text, embeds every chunk and upserts them. Chunk ids
// derive from source and position so re-ingesting a file overwrites it.
func (s *ingestService) IngestText(ctx context.Context, source, text string) (int, error) {
	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		return 0, nil
	}

	records := make([]vectorstore.Record, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.embedder.Generate(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("%w: embed chunk %d of %s: %w", rag.ErrExternalService, i, source, err)
		}
		records = append(records, vectorstore.Record{
			ID:     ChunkID(source, i),
			Vector: vector,
			Metadata: map[string]any{
				rag.MetadataText:       chunk,
				rag.MetadataSource:     source,
				rag.MetadataChunkIndex: i,
			},
		})
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("%w: upsert %s: %w", rag.ErrExternalService, source, err)
	}

	s.logger.Info("Ingest", "Document indexed", map[string]interface{}{
		"source": source,
		"chunks": len(records),
	})
	return len(records), nil
}

// ChunkID is a stable id for the index-th chunk of source.
func ChunkID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, index))).String()
}
