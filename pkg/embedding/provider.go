package embedding

import (
	"context"
	"errors"
)

// ErrEmbedding wraps failures returned by an embedding backend.
var ErrEmbedding = errors.New("embedding provider error")

// EmbeddingProvider defines the interface for generating text embeddings.
// The same provider must be used for indexing and for querying.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
