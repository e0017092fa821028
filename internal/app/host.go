package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// hostFetcher streams contributors of projects hosted on gitlab-like services.
// These hosts are queried without authentication and without pacing.
type hostFetcher struct {
	client HostClient
	cache  *Cache
	rec    Recorder
	l      logrus.FieldLogger
}

func (f *hostFetcher) fetchAll(ctx context.Context, sources []Source, out chan<- ContributorRecord, keepGoing bool) error {
	f.l.Infof("%d other sources...", len(sources))

	for _, src := range sources {
		err := f.fetch(ctx, src, out)
		if err == nil {
			continue
		}
		if IsNotFoundError(err) {
			f.l.Warnf("project %s not found, skipping", src.URL())
			continue
		}
		if keepGoing {
			f.l.Warnf("skipping %s: %v", src.URL(), err)
			continue
		}
		return errors.Wrapf(err, "fetching %s", src.URL())
	}

	return nil
}

func (f *hostFetcher) fetch(ctx context.Context, src Source, out chan<- ContributorRecord) error {
	key := src.URL()

	var entry projectCacheEntry
	if f.cache.Read(key, &entry) {
		f.rec.RecordCacheLookup(ProducerGeneric, true)
		f.l.Infof("cached data for: %s", key)
		emit(out, entry.Project.Name, entry.Contributors)
		f.rec.RecordContributors(ProducerGeneric, len(entry.Contributors))
		return nil
	}
	f.rec.RecordCacheLookup(ProducerGeneric, false)

	f.l.Infof("fetching %s data for: %s/%s", src.Host, src.Owner, src.Repo)
	project, err := f.client.Project(ctx, src.Host, src.Owner, src.Repo)
	if err != nil {
		return errors.Wrap(err, "getting project")
	}
	contributors, err := f.client.Contributors(ctx, src.Host, src.Owner, src.Repo)
	if err != nil {
		return errors.Wrap(err, "listing contributors")
	}

	f.cache.Write(key, projectCacheEntry{
		Project:      project,
		Contributors: contributors,
	})
	emit(out, project.Name, contributors)
	f.rec.RecordContributors(ProducerGeneric, len(contributors))

	return nil
}
