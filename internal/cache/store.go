package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a plain key-value blob store. The freshness policy lives in the
// layer above, so any backend that can get/set/delete text blobs works.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type memoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore builds an in-process store. Used when no Redis is configured
// and as the backend in tests. TTLs are ignored here; expiry is enforced by
// the freshness layer from the envelope timestamp.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.items[key] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
