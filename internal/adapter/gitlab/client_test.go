package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/anvlkv/acknowledgements/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, string) {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	return NewClient(server.Client()), u.Host
}

func TestClientProject(t *testing.T) {
	t.Parallel()

	c, host := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/inkscape%2Finkscape", r.URL.EscapedPath())
		fmt.Fprint(w, `{"id": 3472737, "name": "inkscape", "path_with_namespace": "inkscape/inkscape"}`)
	})

	got, err := c.Project(context.Background(), host, "inkscape", "inkscape")
	require.NoError(t, err)
	assert.Equal(t, app.Project{Name: "inkscape"}, got)
}

func TestClientContributorsPaginates(t *testing.T) {
	t.Parallel()

	c, host := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/projects/inkscape%2Finkscape/repository/contributors", r.URL.EscapedPath())
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("X-Next-Page", "2")
			fmt.Fprint(w, `[{"name": "Jane", "email": "jane@example.com", "commits": 12}]`)
		case "2":
			w.Header().Set("X-Next-Page", "")
			fmt.Fprint(w, `[{"name": "Joe", "email": "joe@example.com", "commits": 1}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	got, err := c.Contributors(context.Background(), host, "inkscape", "inkscape")
	require.NoError(t, err)
	assert.Equal(t, []app.Contributor{
		{Login: "Jane", Contributions: 12},
		{Login: "Joe", Contributions: 1},
	}, got)
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		doer        *mock.HTTPDoer
		host        string
		wantInvalid bool
		notFound    bool
		rateLimited bool
	}{
		{
			name:        "empty host",
			host:        "",
			wantInvalid: true,
		},
		{
			name:     "not found",
			doer:     &mock.HTTPDoer{Statuses: []int{http.StatusNotFound}},
			host:     "gitlab.com",
			notFound: true,
		},
		{
			name:        "rate limited",
			doer:        &mock.HTTPDoer{Statuses: []int{http.StatusTooManyRequests}},
			host:        "gitlab.com",
			rateLimited: true,
		},
		{
			name: "server error",
			doer: &mock.HTTPDoer{Statuses: []int{http.StatusServiceUnavailable}},
			host: "gitlab.com",
		},
		{
			name: "invalid body",
			doer: &mock.HTTPDoer{Bodies: [][]byte{[]byte(`{"message": "oops"}`)}},
			host: "gitlab.com",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewClient(tt.doer)
			_, err := c.Contributors(context.Background(), tt.host, "inkscape", "inkscape")
			require.Error(t, err)
			assert.Equal(t, tt.wantInvalid, app.IsInvalidRequestError(err))
			assert.Equal(t, tt.notFound, app.IsNotFoundError(err))
			assert.Equal(t, tt.rateLimited, app.IsTooManyRequestsError(err))
		})
	}
}
