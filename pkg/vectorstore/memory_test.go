package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreQueryOrdersByCosine(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []Record{
		{ID: "x", Vector: []float32{1, 0}, Metadata: map[string]any{"text": "x axis"}},
		{ID: "diag", Vector: []float32{1, 1}},
		{ID: "y", Vector: []float32{0, 1}},
	}))

	matches, err := store.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "x", matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "x axis", matches[0].Metadata["text"])
	assert.Equal(t, "diag", matches[1].ID)
	assert.InDelta(t, 0.7071, matches[1].Score, 1e-3)
}

func TestMemoryStoreUpsertReplaces(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []Record{{ID: "a", Vector: []float32{1, 0}, Metadata: map[string]any{"v": 1}}}))
	require.NoError(t, store.Upsert(ctx, []Record{{ID: "a", Vector: []float32{0, 1}, Metadata: map[string]any{"v": 2}}}))

	assert.Equal(t, 1, store.Len())
	matches, err := store.Query(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Metadata["v"])
}

func TestMemoryStoreDimensionMismatch(t *testing.T) {
	store := NewMemoryStore(3)
	ctx := context.Background()

	err := store.Upsert(ctx, []Record{{ID: "a", Vector: []float32{1, 0}}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = store.Query(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMemoryStoreCopiesMetadata(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	meta := map[string]any{"text": "original"}
	require.NoError(t, store.Upsert(ctx, []Record{{ID: "a", Vector: []float32{1}, Metadata: meta}}))
	meta["text"] = "mutated"

	matches, err := store.Query(ctx, []float32{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", matches[0].Metadata["text"])
}

func TestMemoryStoreNonPositiveTopK(t *testing.T) {
	store := NewMemoryStore(1)
	require.NoError(t, store.Upsert(context.Background(), []Record{{ID: "a", Vector: []float32{1}}}))

	matches, err := store.Query(context.Background(), []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "guide_index", TableName("guide-index"))
	assert.Equal(t, "search_logs", TableName("Search-Logs"))
}
