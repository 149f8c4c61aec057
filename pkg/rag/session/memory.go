package session

import (
	"context"
	"sync"

	"ai-guide-assistant/pkg/llm"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps histories for the process lifetime.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	// No expiration and no janitor: sessions live as long as the process
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(sessionID)
	if !found {
		return []llm.Message{}, nil
	}
	turns := x.([]llm.Message)
	out := make([]llm.Message, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *MemoryStore) Append(ctx context.Context, sessionID string, turns ...llm.Message) error {
	if len(turns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var history []llm.Message
	if x, found := s.cache.Get(sessionID); found {
		history = x.([]llm.Message)
	}
	next := make([]llm.Message, 0, len(history)+len(turns))
	next = append(next, history...)
	next = append(next, turns...)
	s.cache.Set(sessionID, next, cache.NoExpiration)
	return nil
}

// Sessions returns the number of sessions with at least one turn.
func (s *MemoryStore) Sessions() int {
	return s.cache.ItemCount()
}
