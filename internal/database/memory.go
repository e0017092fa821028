package database

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// MemoryKVStore keeps data in a size bounded in-memory lru cache.
// It's used when the database file can't be opened, data doesn't outlive the process.
type MemoryKVStore struct {
	cache *lru.Cache
}

// NewMemoryKVStore creates new MemoryKVStore instance holding up to size keys.
func NewMemoryKVStore(size int) (*MemoryKVStore, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}

	return &MemoryKVStore{cache: cache}, nil
}

// ReadKey returns data saved for given key. Returns nil if there's no data stored.
func (s *MemoryKVStore) ReadKey(key []byte) ([]byte, error) {
	val, ok := s.cache.Get(string(key))
	if !ok {
		return nil, nil
	}

	return append([]byte(nil), val.([]byte)...), nil
}

// UpdateKey stores given data under given key.
func (s *MemoryKVStore) UpdateKey(key []byte, data []byte) error {
	s.cache.Add(string(key), append([]byte(nil), data...))
	return nil
}

// Clear removes all stored data.
func (s *MemoryKVStore) Clear() error {
	s.cache.Purge()
	return nil
}

// Close does nothing, it's here to match BoltKVStore.
func (s *MemoryKVStore) Close() error {
	return nil
}
