package search

import (
	"context"
	"fmt"
	"sort"

	"ai-guide-assistant/pkg/embedding"
	"ai-guide-assistant/pkg/rag"
	"ai-guide-assistant/pkg/vectorstore"
)

// Config encapsulates search parameters
type Config struct {
	TopK           int
	ScoreThreshold float64
}

// VectorRetriever embeds the query, searches one index and keeps the top-k
// passages scoring at or above the threshold.
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	store    vectorstore.Store
	config   Config
}

var _ rag.Retriever = (*VectorRetriever)(nil)

func NewVectorRetriever(embedder embedding.EmbeddingProvider, store vectorstore.Store, config Config) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		store:    store,
		config:   config,
	}
}

func (r *VectorRetriever) Config() Config { return r.config }

func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]rag.Passage, error) {
	if r.config.TopK <= 0 {
		return []rag.Passage{}, nil
	}

	vector, err := r.embedder.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding generation failed: %w", rag.ErrExternalService, err)
	}

	matches, err := r.store.Query(ctx, vector, r.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search failed: %w", rag.ErrExternalService, err)
	}

	return FilterMatches(matches, r.config), nil
}

// FilterMatches converts store matches to passages, drops those below the
// threshold, orders them by score and truncates to top-k.
func FilterMatches(matches []vectorstore.Match, config Config) []rag.Passage {
	passages := make([]rag.Passage, 0, len(matches))
	for _, m := range matches {
		p := toPassage(m)
		if p.Score < config.ScoreThreshold {
			continue
		}
		passages = append(passages, p)
	}

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})
	if len(passages) > config.TopK {
		passages = passages[:config.TopK]
	}
	return passages
}

// toPassage applies the data defaults: missing text is empty, scores are
// clamped to [0,1].
func toPassage(m vectorstore.Match) rag.Passage {
	text, _ := m.Metadata[rag.MetadataText].(string)

	metadata := make(map[string]any, len(m.Metadata))
	for k, v := range m.Metadata {
		if k == rag.MetadataText {
			continue
		}
		metadata[k] = v
	}

	return rag.Passage{
		Text:     text,
		Score:    clamp(m.Score),
		Metadata: metadata,
	}
}

func clamp(score float64) float64 {
	if score != score || score < 0 { // NaN or negative
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
