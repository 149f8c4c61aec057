package vectorstore

import (
	"context"
	"errors"
)

var (
	// ErrVectorStore wraps backend failures (connection, query, upsert).
	ErrVectorStore = errors.New("vector store error")
	// ErrIndexNotFound is returned when the named index has not been created.
	ErrIndexNotFound = errors.New("vector index not found")
	// ErrDimensionMismatch is returned when a vector does not match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Record is a single entry written to an index.
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
}

// Match is a query hit. Score is cosine similarity, higher is closer.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// Store is one named vector index.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
