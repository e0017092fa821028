package app_test

import (
	"errors"
	"io"
	"testing"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/anvlkv/acknowledgements/internal/mock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func TestCacheRoundTrip(t *testing.T) {
	t.Parallel()

	store := mock.NewKVStore(nil)
	c := app.NewCache(store, discardLogger())

	var missing string
	assert.False(t, c.Read("registry,serde", &missing))

	c.Write("registry,serde", "https://github.com/serde-rs/serde")

	var got string
	require.True(t, c.Read("registry,serde", &got))
	assert.Equal(t, "https://github.com/serde-rs/serde", got)
	assert.JSONEq(t, `"https://github.com/serde-rs/serde"`, string(store.Data("registry,serde")))

	require.NoError(t, c.Clear())
	assert.False(t, c.Read("registry,serde", &got))
}

func TestCacheFailuresAreMisses(t *testing.T) {
	t.Parallel()

	store := mock.NewKVStore(map[string][]byte{
		"broken": []byte("{not json"),
	})
	c := app.NewCache(store, discardLogger())

	var v map[string]int
	assert.False(t, c.Read("broken", &v))

	store.Err = errors.New("disk on fire")
	assert.False(t, c.Read("broken", &v))

	// Dropped silently.
	c.Write("key", 1)
	assert.Equal(t, 1, store.Updates())
	assert.Error(t, c.Clear())
}
