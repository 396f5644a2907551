package blob

import (
	"context"
	"sync"
)

// MemoryStore is an in-process store with a true compare-and-swap. It backs
// tests and the STORE_BACKEND=memory mode; nothing survives a restart.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	if !ok {
		return nil, NoRevision, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, revisionOf(value), nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, key string, value []byte, rev Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := NoRevision
	if existing, ok := s.data[key]; ok {
		cur = revisionOf(existing)
	}
	if cur != rev {
		return ErrRevisionMismatch
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
