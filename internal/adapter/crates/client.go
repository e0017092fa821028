package crates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anvlkv/acknowledgements/internal/app"
	jsoniter "github.com/json-iterator/go"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client reads package metadata from crates.io.
// This struct is an adapter for app.RegistryClient.
type Client struct {
	doer      HTTPDoer
	address   string
	userAgent string

	responseMaxSize int64
}

var _ app.RegistryClient = &Client{}

// NewClient creates new crates.io client.
// crates.io rejects requests without a user agent, so userAgent should identify the tool.
func NewClient(doer HTTPDoer, address string, userAgent string) *Client {
	return &Client{
		doer:      doer,
		address:   address,
		userAgent: userAgent,

		responseMaxSize: 1024 * 1024 * 5,
	}
}

type crateResponse struct {
	Crate struct {
		Name       string  `json:"name"`
		Repository *string `json:"repository"`
	} `json:"crate"`
}

// RepositoryURL returns repository url of the crate, empty if it doesn't declare one.
func (c *Client) RepositoryURL(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", app.InvalidRequestError("crate name cannot be empty")
	}

	u := c.address + "/crates/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("creating http request: %w", err)
	}

	body, err := c.makeRequest(req)
	if err != nil {
		return "", fmt.Errorf("getting crate %s: %w", name, err)
	}

	var resp crateResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshalling response: %w", err)
	}
	if resp.Crate.Repository == nil {
		return "", nil
	}

	return *resp.Crate.Repository, nil
}

func (c *Client) makeRequest(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("doing http request: %w", err)
	}
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, app.NotFoundError(req.URL.Path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, app.TooManyRequestsError(req.URL.Path)
	case resp.StatusCode/100 > 3:
		return nil, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.responseMaxSize))
	if err != nil {
		return nil, fmt.Errorf("reading http response body: %w", err)
	}

	return b, nil
}
