// Package metrics collects run statistics and exports them in prometheus text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "acknowledgements"

// Collector implements app.Recorder with prometheus metrics.
type Collector struct {
	cacheLookups     *prometheus.CounterVec
	contributors     *prometheus.CounterVec
	quotaWaits       prometheus.Counter
	quotaWaitSeconds prometheus.Counter
	httpRequests     *prometheus.CounterVec
}

var _ app.Recorder = &Collector{}

// NewCollector creates new Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by producer and result.",
		}, []string{"producer", "result"}),
		contributors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contributors_total",
			Help:      "Contributor records emitted by producer.",
		}, []string{"producer"}),
		quotaWaits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "github_quota_waits_total",
			Help:      "Number of waits for the github rate limit reset.",
		}),
		quotaWaitSeconds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "github_quota_wait_seconds_total",
			Help:      "Time spent waiting for the github rate limit reset.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Outgoing http requests by producer, status code and method.",
		}, []string{"producer", "code", "method"}),
	}

	reg.MustRegister(
		c.cacheLookups,
		c.contributors,
		c.quotaWaits,
		c.quotaWaitSeconds,
		c.httpRequests,
	)

	return c
}

// RecordCacheLookup records a cache hit or miss.
func (c *Collector) RecordCacheLookup(producer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(producer, result).Inc()
}

// RecordQuotaWait records a finished wait for the rate limit reset.
func (c *Collector) RecordQuotaWait(d time.Duration) {
	c.quotaWaits.Inc()
	c.quotaWaitSeconds.Add(d.Seconds())
}

// RecordContributors records emitted contributor records.
func (c *Collector) RecordContributors(producer string, count int) {
	c.contributors.WithLabelValues(producer).Add(float64(count))
}

// InstrumentTransport wraps next counting responses of the producer's requests.
func (c *Collector) InstrumentTransport(producer string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	counter := c.httpRequests.MustCurryWith(prometheus.Labels{"producer": producer})

	return promhttp.InstrumentRoundTripperCounter(counter, next)
}

// WriteFile writes all gathered metrics to path in the text exposition format.
func WriteFile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
