package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemoryStore is a brute-force cosine index kept in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]Record
	order     []string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty index. A dimension of 0 accepts any length.
func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		dimension: dimension,
		records:   make(map[string]Record),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, r := range records {
		if err := s.checkDimension(r.Vector); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if _, exists := s.records[r.ID]; !exists {
			s.order = append(s.order, r.ID)
		}
		s.records[r.ID] = Record{
			ID:       r.ID,
			Vector:   append([]float32(nil), r.Vector...),
			Metadata: copyMetadata(r.Metadata),
		}
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkDimension(vector); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []Match{}, nil
	}

	s.mu.RLock()
	matches := make([]Match, 0, len(s.records))
	for _, id := range s.order {
		r := s.records[id]
		if len(r.Vector) != len(vector) {
			continue
		}
		matches = append(matches, Match{
			ID:       r.ID,
			Score:    cosineSimilarity(vector, r.Vector),
			Metadata: copyMetadata(r.Metadata),
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len reports how many records the index holds.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) checkDimension(vector []float32) error {
	if s.dimension > 0 && len(vector) != s.dimension {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dimension, len(vector))
	}
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func copyMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
