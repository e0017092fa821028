package app

import (
	"context"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const recordsBuffer = 1024

// Request describes a single acknowledgements run.
type Request struct {
	// Dependencies as listed by the manifest.
	Dependencies []Dependency
	// Sources are extra repository urls analyzed next to the dependencies.
	Sources []string
	// Breadth drops optional dependencies when set to BreadthNonOpt.
	Breadth Breadth
	// Threshold is a minimal number of contributions to be credited on a project.
	Threshold uint
	Format    Format
	Mention   bool
	// KeepGoing skips sources that failed instead of failing the run.
	KeepGoing bool
}

// Service resolves dependencies into the contributors report.
type Service struct {
	registryClient RegistryClient
	githubClient   GithubClient
	hostClient     HostClient
	cache          *Cache
	rec            Recorder
	clock          Clock
	progress       io.Writer
	l              logrus.FieldLogger
}

// Option configures Service.
type Option func(*Service)

// WithRecorder sets run metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.rec = r
	}
}

// WithProgress sets writer for the rate limit countdown.
func WithProgress(w io.Writer) Option {
	return func(s *Service) {
		s.progress = w
	}
}

// WithClock sets clock used while waiting for the github rate limit reset.
func WithClock(c Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// NewService creates new Service instance.
func NewService(
	registryClient RegistryClient,
	githubClient GithubClient,
	hostClient HostClient,
	cache *Cache,
	l logrus.FieldLogger,
	opts ...Option,
) *Service {
	s := &Service{
		registryClient: registryClient,
		githubClient:   githubClient,
		hostClient:     hostClient,
		cache:          cache,
		rec:            nopRecorder{},
		clock:          realClock{},
		progress:       io.Discard,
		l:              l,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ResolveAndAggregate fetches contributors of every dependency and builds the report.
func (s *Service) ResolveAndAggregate(ctx context.Context, req Request) (*Report, error) {
	names, urls := s.partition(req)
	s.l.Infof("Analyzing %d dependencies...", len(names)+len(urls))

	resolved := make(chan string)
	resolveErr := make(chan error, 1)
	go func() {
		defer close(resolved)
		r := &registryResolver{
			client: s.registryClient,
			cache:  s.cache,
			rec:    s.rec,
			l:      s.l.WithField("producer", ProducerRegistry),
		}
		resolveErr <- r.resolve(ctx, names, resolved)
	}()
	for u := range resolved {
		urls = append(urls, u)
	}
	if err := <-resolveErr; err != nil {
		return nil, errors.Wrap(err, "registry")
	}

	githubSources, hostSources := s.classify(urls)

	records := make(chan ContributorRecord, recordsBuffer)
	agg := NewAggregator(req.Threshold)
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		agg.Consume(records)
	}()

	gh := &githubFetcher{
		client:   s.githubClient,
		cache:    s.cache,
		rec:      s.rec,
		clock:    s.clock,
		progress: s.progress,
		l:        s.l.WithField("producer", ProducerGithub),
	}
	host := &hostFetcher{
		client: s.hostClient,
		cache:  s.cache,
		rec:    s.rec,
		l:      s.l.WithField("producer", ProducerGeneric),
	}

	var g errgroup.Group
	g.Go(func() error {
		return errors.Wrap(gh.fetchAll(ctx, githubSources, records, req.KeepGoing), "github.com")
	})
	g.Go(func() error {
		return errors.Wrap(host.fetchAll(ctx, hostSources, records, req.KeepGoing), "other hosts")
	})
	err := g.Wait()
	close(records)
	<-consumed
	if err != nil {
		return nil, err
	}

	s.l.Info("Got all data")

	return agg.Report(req.Format, req.Mention), nil
}

// ClearCache removes all cached responses and the cached token.
func (s *Service) ClearCache() error {
	return errors.Wrap(s.cache.Clear(), "clearing cache")
}

// partition splits dependencies into registry names and explicit source urls.
func (s *Service) partition(req Request) (names []string, urls []string) {
	urls = append(urls, req.Sources...)

	seen := make(map[string]struct{})
	for _, dep := range req.Dependencies {
		switch {
		case dep.Optional && req.Breadth == BreadthNonOpt:
			continue
		case dep.Source != "":
			urls = append(urls, dep.Source)
		case dep.Local:
			s.l.Debugf("skipping local dependency %s", dep.Name)
		default:
			if _, ok := seen[dep.Name]; ok {
				continue
			}
			seen[dep.Name] = struct{}{}
			names = append(names, dep.Name)
		}
	}

	return names, urls
}

// classify splits urls by hosting service, dropping duplicates and unsupported ones.
func (s *Service) classify(urls []string) (github []Source, host []Source) {
	seen := make(map[string]struct{})
	for _, u := range urls {
		src := Classify(u)
		if src.Kind == SourceUnsupported {
			s.l.Warnf("unsupported source %q, skipping", u)
			continue
		}
		if _, ok := seen[src.URL()]; ok {
			continue
		}
		seen[src.URL()] = struct{}{}

		switch src.Kind {
		case SourceGitHub:
			github = append(github, src)
		case SourceGenericHost:
			host = append(host, src)
		}
	}

	byURL := func(sources []Source) func(i, j int) bool {
		return func(i, j int) bool {
			return sources[i].URL() < sources[j].URL()
		}
	}
	sort.Slice(github, byURL(github))
	sort.Slice(host, byURL(host))

	return github, host
}
