package mock

import (
	"sync"
)

// KVStore mocks app.KVStore.
type KVStore struct {
	data    map[string][]byte
	reads   int
	updates int
	clears  int
	m       sync.Mutex

	// Err is returned from every call when set.
	Err error
}

// NewKVStore creates new KVStore instance with given data
func NewKVStore(data map[string][]byte) *KVStore {
	return &KVStore{
		data: data,
	}
}

// ReadKey returns data saved for given key.
func (s *KVStore) ReadKey(key []byte) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.data == nil {
		return nil, nil
	}

	return s.data[string(key)], nil
}

// UpdateKey stores given data under given key.
func (s *KVStore) UpdateKey(key []byte, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()

	s.updates++
	if s.Err != nil {
		return s.Err
	}
	if s.data == nil {
		s.data = make(map[string][]byte)
	}
	s.data[string(key)] = data

	return nil
}

// Clear removes all data.
func (s *KVStore) Clear() error {
	s.m.Lock()
	defer s.m.Unlock()

	s.clears++
	if s.Err != nil {
		return s.Err
	}
	s.data = nil

	return nil
}

// Data returns copy of data stored under key.
func (s *KVStore) Data(key string) []byte {
	s.m.Lock()
	defer s.m.Unlock()

	return append([]byte(nil), s.data[key]...)
}

// Keys returns number of stored keys.
func (s *KVStore) Keys() int {
	s.m.Lock()
	defer s.m.Unlock()

	return len(s.data)
}

// Reads returns read call count.
func (s *KVStore) Reads() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.reads
}

// Updates returns update call count.
func (s *KVStore) Updates() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.updates
}

// Clears returns clear call count.
func (s *KVStore) Clears() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.clears
}
