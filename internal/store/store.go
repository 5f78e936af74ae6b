package store

import "sync"

// Store is the persistent key-value blob medium every collection is
// serialized into. Values are whole serialized collections, replaced
// wholesale on every write.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set persists value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemStore is an in-memory Store used in tests and ephemeral runs.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.blobs[key]
	return value, ok, nil
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
