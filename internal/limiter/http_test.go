package limiter

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/anvlkv/acknowledgements/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalHTTPDoerSpacesRequests(t *testing.T) {
	t.Parallel()

	const interval = 50 * time.Millisecond
	doer := &mock.HTTPDoer{}
	d := NewIntervalHTTPDoer(doer, interval)

	var starts []time.Time
	doer.DoFunc = func(r *http.Request) (*http.Response, error) {
		starts = append(starts, time.Now())
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}

	for i := 0; i < 4; i++ {
		req, err := http.NewRequest(http.MethodGet, "https://crates.io/api/v1/crates/serde", nil)
		require.NoError(t, err)
		_, err = d.Do(req)
		require.NoError(t, err)
	}

	require.Len(t, starts, 4)
	for i := 1; i < len(starts); i++ {
		// rate.Limiter allows small scheduling slack.
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), interval-5*time.Millisecond)
	}
	assert.Equal(t, 4, doer.Calls())
}

func TestIntervalHTTPDoerCanceled(t *testing.T) {
	t.Parallel()

	doer := &mock.HTTPDoer{}
	d := NewIntervalHTTPDoer(doer, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://crates.io/api/v1/crates/serde", nil)
	require.NoError(t, err)

	_, err = d.Do(req)
	require.NoError(t, err)

	cancel()
	_, err = d.Do(req)
	require.Error(t, err)
	assert.True(t, app.IsTooManyRequestsError(err))
	assert.Equal(t, 1, doer.Calls())
}
