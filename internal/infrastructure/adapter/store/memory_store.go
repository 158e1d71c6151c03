package store

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/persistence"
)

// MemoryStore keeps values in process. It backs the test configuration and single-node runs.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

var (
	_ persistence.KVStore    = (*MemoryStore)(nil)
	_ persistence.BatchSaver = (*MemoryStore)(nil)
)

// Load returns a copy of the value under key
func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, errs.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Save stores a copy of value under key
func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

// SaveAll stores every value under one lock
func (s *MemoryStore) SaveAll(_ context.Context, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = append([]byte(nil), value...)
	}
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
