package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-guide-assistant/internal/pkg/logger"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lengthEmbedder struct{ err error }

func (e lengthEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (lengthEmbedder) Dimension() int { return 2 }

func TestIngestTextStoresChunksWithMetadata(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	svc := NewIngestService(lengthEmbedder{}, store, logger.NewNopLogger())

	text := strings.Repeat("Liquidity ratios measure short-term solvency. ", 40)
	n, err := svc.IngestText(context.Background(), "liquidity.md", text)
	require.NoError(t, err)
	require.Greater(t, n, 1)
	assert.Equal(t, n, store.Len())

	matches, err := store.Query(context.Background(), []float32{1, 1}, n)
	require.NoError(t, err)
	for _, m := range matches {
		assert.Equal(t, "liquidity.md", m.Metadata[rag.MetadataSource])
		assert.NotEmpty(t, m.Metadata[rag.MetadataText])
		assert.LessOrEqual(t, len([]rune(m.Metadata[rag.MetadataText].(string))), ChunkSize)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	svc := NewIngestService(lengthEmbedder{}, store, logger.NewNopLogger())
	text := strings.Repeat("Profitability ratios relate profit to revenue. ", 30)

	first, err := svc.IngestText(context.Background(), "profit.md", text)
	require.NoError(t, err)
	second, err := svc.IngestText(context.Background(), "profit.md", text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, store.Len())
}

func TestIngestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handbook.md")
	require.NoError(t, os.WriteFile(path, []byte("Employees accrue leave monthly."), 0o644))

	store := vectorstore.NewMemoryStore(2)
	n, err := NewIngestService(lengthEmbedder{}, store, logger.NewNopLogger()).IngestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	matches, _ := store.Query(context.Background(), []float32{1, 1}, 1)
	require.Len(t, matches, 1)
	assert.Equal(t, ChunkID("handbook.md", 0), matches[0].ID)
	assert.Equal(t, "handbook.md", matches[0].Metadata[rag.MetadataSource])
}

func TestIngestEmbeddingFailure(t *testing.T) {
	store := vectorstore.NewMemoryStore(2)
	svc := NewIngestService(lengthEmbedder{err: errors.New("down")}, store, logger.NewNopLogger())

	_, err := svc.IngestText(context.Background(), "a.md", "some text")
	assert.ErrorIs(t, err, rag.ErrExternalService)
	assert.Equal(t, 0, store.Len())
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, ChunkID("a.md", 1), ChunkID("a.md", 1))
	assert.NotEqual(t, ChunkID("a.md", 1), ChunkID("a.md", 2))
	assert.NotEqual(t, ChunkID("a.md", 1), ChunkID("b.md", 1))
}
