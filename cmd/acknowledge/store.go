package main

import (
	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/anvlkv/acknowledgements/internal/database"
	"github.com/sirupsen/logrus"
)

type kvStore interface {
	app.KVStore
	Close() error
}

// openStore opens the cache database, falling back to memory when the file is unavailable,
// e.g. locked by another running instance.
func openStore(conf Config, l logrus.FieldLogger) (kvStore, error) {
	path, err := conf.cachePath()
	if err == nil {
		var store *database.BoltKVStore
		store, err = database.NewBoltKVStore(path, conf.CacheBucketName, conf.CacheOpenTimeout)
		if err == nil {
			l.Debugf("using cache at %s", path)
			return store, nil
		}
	}
	l.Warnf("cache unavailable, results won't be remembered: %v", err)

	store, err := database.NewMemoryKVStore(conf.CacheMemorySize)
	if err != nil {
		return nil, err
	}

	return store, nil
}
