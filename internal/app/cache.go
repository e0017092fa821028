package app

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// KVStore provides simple kv data storage
type KVStore interface {
	ReadKey(key []byte) ([]byte, error)
	UpdateKey(key []byte, data []byte) error
	Clear() error
}

// Cache stores json serialized responses in KVStore.
// Every store failure is treated as a cache miss: the caller always falls back to a live fetch.
type Cache struct {
	store KVStore
	l     logrus.FieldLogger
}

// NewCache creates new Cache instance.
func NewCache(store KVStore, l logrus.FieldLogger) *Cache {
	return &Cache{
		store: store,
		l:     l,
	}
}

// Read unmarshals data stored under key into v. Returns false on miss.
func (c *Cache) Read(key string, v interface{}) bool {
	data, err := c.store.ReadKey([]byte(key))
	if err != nil {
		c.l.Debugf("cache read %q: %v", key, err)
		return false
	}
	if data == nil {
		return false
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, v); err != nil {
		c.l.Debugf("cache decode %q: %v", key, err)
		return false
	}

	return true
}

// Write stores v under key. Errors are logged and dropped.
func (c *Cache) Write(key string, v interface{}) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		c.l.Debugf("cache encode %q: %v", key, err)
		return
	}
	if err := c.store.UpdateKey([]byte(key), data); err != nil {
		c.l.Debugf("cache write %q: %v", key, err)
	}
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	return c.store.Clear()
}

// GithubToken returns github access token remembered by SaveGithubToken.
func (c *Cache) GithubToken() (string, bool) {
	var token string
	if !c.Read(tokenKey, &token) || token == "" {
		return "", false
	}

	return token, true
}

// SaveGithubToken remembers github access token for the next runs.
func (c *Cache) SaveGithubToken(token string) {
	c.Write(tokenKey, token)
}
