package storage

import (
	"context"
	"fmt"
	"sync"

	"refashion/internal/refashionerrors"
)

// MemoryStore is a concurrency-safe in-memory implementation of KVStore
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string][]byte // key: namespace -> key -> raw value
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]map[string][]byte),
	}
}

// Get returns a copy of the raw value stored under namespace/key
func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.values[namespace][key]
	if !ok {
		return nil, fmt.Errorf("get %s/%s: %w", namespace, key, refashionerrors.ErrKeyNotFound)
	}
	return append([]byte(nil), raw...), nil
}

// Set stores a copy of value under namespace/key, replacing any previous value
func (s *MemoryStore) Set(_ context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.values[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.values[namespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
	return nil
}

// Remove deletes namespace/key; removing an absent key is a no-op
func (s *MemoryStore) Remove(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values[namespace], key)
	return nil
}
