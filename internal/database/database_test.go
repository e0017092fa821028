package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kvStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
	Clear() error
	Close() error
}

func TestKVStores(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		store func(t *testing.T) kvStore
	}{
		{
			name: "bolt",
			store: func(t *testing.T) kvStore {
				path := filepath.Join(t.TempDir(), "nested", "cache.db")
				s, err := NewBoltKVStore(path, "acknowledgements", time.Second)
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "memory",
			store: func(t *testing.T) kvStore {
				s, err := NewMemoryKVStore(16)
				require.NoError(t, err)
				return s
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := tt.store(t)
			defer s.Close()

			data, err := s.ReadKey([]byte("registry,serde"))
			require.NoError(t, err)
			assert.Nil(t, data)

			value := []byte(`"https://github.com/serde-rs/serde"`)
			require.NoError(t, s.UpdateKey([]byte("registry,serde"), value))
			value[0] = 'x'

			data, err = s.ReadKey([]byte("registry,serde"))
			require.NoError(t, err)
			assert.Equal(t, `"https://github.com/serde-rs/serde"`, string(data))

			require.NoError(t, s.Clear())
			data, err = s.ReadKey([]byte("registry,serde"))
			require.NoError(t, err)
			assert.Nil(t, data)

			require.NoError(t, s.UpdateKey([]byte("after-clear"), []byte("1")))
			data, err = s.ReadKey([]byte("after-clear"))
			require.NoError(t, err)
			assert.Equal(t, "1", string(data))
		})
	}
}

func TestBoltKVStorePersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := NewBoltKVStore(path, "acknowledgements", time.Second)
	require.NoError(t, err)
	require.NoError(t, s.UpdateKey([]byte("github_access_token"), []byte(`"token"`)))

	// Locked by the open handle.
	_, err = NewBoltKVStore(path, "acknowledgements", 10*time.Millisecond)
	assert.Error(t, err)

	require.NoError(t, s.Close())

	s, err = NewBoltKVStore(path, "acknowledgements", time.Second)
	require.NoError(t, err)
	defer s.Close()

	data, err := s.ReadKey([]byte("github_access_token"))
	require.NoError(t, err)
	assert.Equal(t, `"token"`, string(data))
}

func TestMemoryKVStoreEvicts(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryKVStore(0)
	assert.Error(t, err)

	s, err := NewMemoryKVStore(1)
	require.NoError(t, err)

	require.NoError(t, s.UpdateKey([]byte("a"), []byte("1")))
	require.NoError(t, s.UpdateKey([]byte("b"), []byte("2")))

	data, err := s.ReadKey([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, data)
}
