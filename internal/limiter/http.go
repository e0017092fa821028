package limiter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anvlkv/acknowledgements/internal/app"
	"golang.org/x/time/rate"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// IntervalHTTPDoer wraps HTTPDoer and keeps a minimum interval between starts of Dos.
type IntervalHTTPDoer struct {
	doer    HTTPDoer
	limiter *rate.Limiter
}

// NewIntervalHTTPDoer creates IntervalHTTPDoer instance.
// The first Do is never delayed.
func NewIntervalHTTPDoer(doer HTTPDoer, interval time.Duration) *IntervalHTTPDoer {
	return &IntervalHTTPDoer{
		doer:    doer,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Do executes http request. If called too early, blocks until the interval passes.
func (d *IntervalHTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(r.Context()); err != nil {
		return nil, app.TooManyRequestsError(fmt.Sprintf("waiting for http limiter: %v", err))
	}

	return d.doer.Do(r)
}
