// Package rag holds the types shared by the retrieval-augmented answer pipeline.
package rag

import (
	"context"
	"errors"
)

// ErrExternalService marks failures of the embedding, vector store or LLM
// collaborators. Callers on the answer path propagate it; the search-log path
// swallows it.
var ErrExternalService = errors.New("external service error")

// Metadata keys written at ingestion and read back at retrieval.
const (
	MetadataText       = "text"
	MetadataSource     = "source"
	MetadataChunkIndex = "chunk_index"
)

// Passage is a retrieved piece of a guide document.
type Passage struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Retriever returns passages ordered by relevance, highest first.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Passage, error)
}

// RetrieverFunc adapts a function to the Retriever interface.
type RetrieverFunc func(ctx context.Context, query string) ([]Passage, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, query string) ([]Passage, error) {
	return f(ctx, query)
}

type sessionIDKey struct{}

// WithSessionID attaches the conversation's session id to ctx.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFrom returns the session id stored by WithSessionID, or "".
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// Texts returns the passage texts in order.
func Texts(passages []Passage) []string {
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	return texts
}
