package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/anvlkv/acknowledgements/internal/adapter/crates"
	"github.com/anvlkv/acknowledgements/internal/adapter/github"
	"github.com/anvlkv/acknowledgements/internal/adapter/gitlab"
	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/anvlkv/acknowledgements/internal/database"
	"github.com/anvlkv/acknowledgements/internal/limiter"
	"github.com/anvlkv/acknowledgements/internal/manifest"
	"github.com/anvlkv/acknowledgements/internal/metrics"
	"github.com/anvlkv/acknowledgements/internal/render"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const outputFileName = "ACKNOWLEDGEMENTS.md"

type options struct {
	path          string
	ghToken       string
	output        string
	mention       bool
	format        string
	breadth       string
	threshold     uint
	sources       []string
	template      string
	keepGoing     bool
	rememberToken bool
	summary       int
	metricsFile   string
}

// reportedError is an error already logged by the command itself.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   "acknowledge",
		Short: "Thank contributors of your dependencies",
		Long: `acknowledge analyzes dependencies of a Cargo (rust) project
and produces an ACKNOWLEDGEMENTS.md file listing (major) contributors of your dependencies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.path, "path", "p", ".", "path to Cargo project for analysis")
	f.StringVarP(&opts.ghToken, "gh-token", "g", "", "github personal access token, strongly advised for projects of reasonable size")
	f.StringVarP(&opts.output, "output", "o", "", "output file path, defaults to "+outputFileName+" in the project path")
	f.BoolVarP(&opts.mention, "mention", "m", false, "prefix github user names with @")
	f.StringVarP(&opts.format, "format", "f", string(app.FormatNameAndCount), "format of the output: NameAndCount, DepAndNames or NameAndDeps")
	f.StringVarP(&opts.breadth, "breadth", "b", string(app.BreadthNonOpt), "dependencies to scan: NonOpt, All or BuildAndDev")
	f.UintVarP(&opts.threshold, "contributions-threshold", "c", 2, "min number of contributions to be included, doesn't apply to sole contributors")
	f.StringSliceVarP(&opts.sources, "sources", "s", nil, "other repository urls, not listed in Cargo.toml")
	f.StringVarP(&opts.template, "template", "t", "", "handlebars template to use instead of the default one")
	f.BoolVar(&opts.keepGoing, "keep-going", false, "skip sources that failed instead of stopping")
	f.BoolVar(&opts.rememberToken, "remember-token", false, "store --gh-token in the cache for the next runs")
	f.IntVar(&opts.summary, "summary", 0, "print top N entries as a table")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write run metrics in prometheus text format to this file")

	root.AddCommand(&cobra.Command{
		Use:   "clear-cache",
		Short: "Clears cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearCache()
		},
	})

	return root
}

func setup() (Config, *logrus.Logger, error) {
	l := logrus.New()
	l.Out = os.Stderr

	conf, err := loadConfig()
	if err != nil {
		return Config{}, nil, err
	}
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid log level: %w", err)
	}
	l.Level = level

	return conf, l, nil
}

func run(ctx context.Context, opts options) error {
	conf, l, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return reportedError{err}
	}
	if err := acknowledge(ctx, conf, opts, l); err != nil {
		l.Errorf("Error: %v", err)
		return reportedError{err}
	}
	l.Info("Done!")

	return nil
}

func acknowledge(ctx context.Context, conf Config, opts options, l *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	format, err := app.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	breadth, err := app.ParseBreadth(opts.breadth)
	if err != nil {
		return err
	}
	var template string
	if opts.template != "" {
		b, err := os.ReadFile(opts.template)
		if err != nil {
			return errors.Wrap(err, "reading template")
		}
		template = string(b)
	}

	deps, err := manifest.Load(opts.path, breadth)
	if err != nil {
		return errors.Wrap(err, "loading manifest")
	}

	store, err := openStore(conf, l.WithField("component", "store"))
	if err != nil {
		return errors.Wrap(err, "opening cache")
	}
	defer store.Close()
	cache := app.NewCache(store, l.WithField("component", "cache"))

	token := opts.ghToken
	if token == "" {
		token = conf.GithubToken
	}
	if token == "" {
		token, _ = cache.GithubToken()
	}
	if opts.rememberToken && opts.ghToken != "" {
		cache.SaveGithubToken(opts.ghToken)
	}
	if token == "" {
		l.Warn("Starting without github access token, may take longer...")
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	httpClient := func(producer string) *http.Client {
		return &http.Client{
			Timeout:   conf.HTTPTimeout,
			Transport: collector.InstrumentTransport(producer, http.DefaultTransport),
		}
	}

	cratesClient := crates.NewClient(
		limiter.NewIntervalHTTPDoer(httpClient(app.ProducerRegistry), conf.CratesRateInterval),
		conf.CratesAPIAddress,
		conf.CratesUserAgent,
	)
	githubClient, err := github.NewClient(
		httpClient(app.ProducerGithub),
		conf.GithubAPIAddress,
		token,
	)
	if err != nil {
		return errors.Wrap(err, "creating github client")
	}
	gitlabClient := gitlab.NewClient(httpClient(app.ProducerGeneric))

	service := app.NewService(
		cratesClient,
		githubClient,
		gitlabClient,
		cache,
		l.WithField("component", "service"),
		app.WithRecorder(collector),
		app.WithProgress(os.Stderr),
	)

	report, err := service.ResolveAndAggregate(ctx, app.Request{
		Dependencies: deps,
		Sources:      opts.sources,
		Breadth:      breadth,
		Threshold:    opts.threshold,
		Format:       format,
		Mention:      opts.mention,
		KeepGoing:    opts.keepGoing,
	})
	if opts.metricsFile != "" {
		if err := metrics.WriteFile(opts.metricsFile, reg); err != nil {
			l.Warnf("couldn't write metrics: %v", err)
		}
	}
	if err != nil {
		return err
	}

	l.Info("Generating...")
	out, err := render.Render(template, report)
	if err != nil {
		return err
	}
	output := outputPath(opts)
	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return errors.Wrap(err, "writing output")
	}
	l.Infof("Written %d entries to %s", report.Len(), output)

	if opts.summary > 0 {
		printSummary(os.Stdout, report, opts.summary)
	}

	return nil
}

// outputPath returns --output or the default file next to the manifest.
func outputPath(opts options) string {
	if opts.output != "" {
		return opts.output
	}

	dir := opts.path
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	return filepath.Join(dir, outputFileName)
}

func clearCache() error {
	conf, l, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return reportedError{err}
	}

	// No memory fallback here, clearing it would be a no-op.
	path, err := conf.cachePath()
	if err != nil {
		l.Errorf("Error: %v", err)
		return reportedError{err}
	}
	store, err := database.NewBoltKVStore(path, conf.CacheBucketName, conf.CacheOpenTimeout)
	if err != nil {
		l.Errorf("Error: %v", err)
		return reportedError{err}
	}
	defer store.Close()

	cache := app.NewCache(store, l.WithField("component", "cache"))
	service := app.NewService(nil, nil, nil, cache, l.WithField("component", "service"))
	if err := service.ClearCache(); err != nil {
		l.Errorf("Error: %v", err)
		return reportedError{err}
	}
	l.Info("Cache cleared")

	return nil
}
