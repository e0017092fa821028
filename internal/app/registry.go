package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// registryResolver turns package names into repository urls.
// Requests are issued one by one, pacing is up to the RegistryClient.
type registryResolver struct {
	client RegistryClient
	cache  *Cache
	rec    Recorder
	l      logrus.FieldLogger
}

// resolve sends repository url of every package to out.
// First failed request stops the resolution.
func (r *registryResolver) resolve(ctx context.Context, names []string, out chan<- string) error {
	for _, name := range names {
		key := registryKey + name

		var repo string
		if r.cache.Read(key, &repo) {
			r.rec.RecordCacheLookup(ProducerRegistry, true)
			r.l.Infof("cached registry data for: %s", name)
			if repo != "" {
				out <- repo
			}
			continue
		}
		r.rec.RecordCacheLookup(ProducerRegistry, false)

		r.l.Infof("fetching registry data for: %s", name)
		repo, err := r.client.RepositoryURL(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "resolving package %s", name)
		}
		if repo == "" {
			r.l.Warnf("package %s has no repository", name)
			continue
		}

		r.cache.Write(key, repo)
		out <- repo
	}

	return nil
}
