package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Clock abstracts time for rate limit waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// githubFetcher streams contributors of github projects.
type githubFetcher struct {
	client   GithubClient
	cache    *Cache
	rec      Recorder
	clock    Clock
	progress io.Writer
	l        logrus.FieldLogger
}

// projectCacheEntry is a cached pair of project metadata and its full contributors list.
type projectCacheEntry struct {
	Project      Project       `json:"project"`
	Contributors []Contributor `json:"contributors"`
}

// quotaState is the github quota as seen by a single fetch loop.
// It's fetched lazily and decremented locally for every issued request.
type quotaState struct {
	known bool
	Quota
}

func (f *githubFetcher) fetchAll(ctx context.Context, sources []Source, out chan<- ContributorRecord, keepGoing bool) error {
	f.l.Infof("%d github.com sources...", len(sources))

	var quota quotaState
	for _, src := range sources {
		err := f.fetch(ctx, src, &quota, out)
		if err == nil {
			continue
		}
		if IsNotFoundError(err) {
			f.l.Warnf("github.com project %s not found, skipping", src.URL())
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

func (f *githubFetcher) fetch(ctx context.Context, src Source, quota *quotaState, out chan<- ContributorRecord) error {
	key := src.URL()

	var entry projectCacheEntry
	if f.cache.Read(key, &entry) {
		f.rec.RecordCacheLookup(ProducerGithub, true)
		f.l.Infof("cached github.com data for: %s", key)
		emit(out, entry.Project.Name, entry.Contributors)
		f.rec.RecordContributors(ProducerGithub, len(entry.Contributors))
		return nil
	}
	f.rec.RecordCacheLookup(ProducerGithub, false)

	f.l.Infof("fetching github.com data for: %s/%s", src.Owner, src.Repo)

	if err := f.spend(ctx, quota); err != nil {
		return err
	}
	project, err := f.client.Project(ctx, src.Owner, src.Repo)
	if err != nil {
		return errors.Wrap(err, "getting project")
	}

	if err := f.spend(ctx, quota); err != nil {
		return err
	}
	first, err := f.client.Contributors(ctx, src.Owner, src.Repo, 1)
	if err != nil {
		return errors.Wrap(err, "listing contributors")
	}
	emit(out, project.Name, first.Contributors)
	contributors := first.Contributors

	for page := 2; page <= first.LastPage; page++ {
		if err := f.spend(ctx, quota); err != nil {
			return err
		}
		next, err := f.client.Contributors(ctx, src.Owner, src.Repo, page)
		if err != nil {
			return errors.Wrapf(err, "listing contributors page %d", page)
		}
		emit(out, project.Name, next.Contributors)
		contributors = append(contributors, next.Contributors...)
	}
	f.rec.RecordContributors(ProducerGithub, len(contributors))

	f.cache.Write(key, projectCacheEntry{
		Project:      project,
		Contributors: contributors,
	})

	return nil
}

// spend takes one request from the quota, waiting for the reset when it's exhausted.
func (f *githubFetcher) spend(ctx context.Context, quota *quotaState) error {
	if !quota.known {
		q, err := f.client.RateLimit(ctx)
		if err != nil {
			return errors.Wrap(err, "getting rate limit")
		}
		quota.Quota = q
		quota.known = true
	}

	for quota.Remaining <= 0 {
		if err := f.waitForReset(ctx, quota.Quota); err != nil {
			return err
		}
		q, err := f.client.RateLimit(ctx)
		if err != nil {
			return errors.Wrap(err, "refreshing rate limit")
		}
		// Requests made before the reset still count in the reported total.
		q.Limit += quota.Limit
		quota.Quota = q
	}
	quota.Remaining--

	return nil
}

// waitForReset blocks until the quota reset time passes, printing a countdown to progress.
func (f *githubFetcher) waitForReset(ctx context.Context, q Quota) error {
	start := f.clock.Now()
	reset := time.Unix(q.Reset, 0)
	if !reset.After(start) {
		// Stale reset time, give github a moment.
		reset = start.Add(time.Second)
	}

	for {
		left := reset.Sub(f.clock.Now())
		if left <= 0 {
			break
		}
		fmt.Fprintf(
			f.progress,
			"\rgithub rate limit of %d requests reached, waiting %02dm %02ds...",
			q.Limit,
			int(left/time.Minute),
			int(left%time.Minute/time.Second),
		)

		tick := time.Second
		if left < tick {
			tick = left
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.clock.After(tick):
		}
	}
	fmt.Fprintln(f.progress)
	f.rec.RecordQuotaWait(f.clock.Now().Sub(start))

	return nil
}

func emit(out chan<- ContributorRecord, project string, contributors []Contributor) {
	for _, c := range contributors {
		out <- ContributorRecord{
			Project:       project,
			Login:         c.Login,
			ProfileURL:    c.ProfileURL,
			Contributions: c.Contributions,
		}
	}
}
