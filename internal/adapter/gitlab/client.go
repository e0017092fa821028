package gitlab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anvlkv/acknowledgements/internal/app"
	jsoniter "github.com/json-iterator/go"
)

const (
	contributorsPerPage = 100
	// maxContributorsPages bounds pagination of huge projects.
	maxContributorsPages = 50
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client reads projects from gitlab-like hosts using the public v4 api.
// This struct is an adapter for app.HostClient.
type Client struct {
	doer HTTPDoer

	responseMaxSize int64
}

var _ app.HostClient = &Client{}

// NewClient creates new gitlab client. Requests are not authenticated.
func NewClient(doer HTTPDoer) *Client {
	return &Client{
		doer:            doer,
		responseMaxSize: 1024 * 1024 * 10,
	}
}

type projectResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type contributorResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Commits uint   `json:"commits"`
}

// Project returns project's metadata.
func (c *Client) Project(ctx context.Context, host string, owner string, repo string) (app.Project, error) {
	u, err := projectURL(host, owner, repo)
	if err != nil {
		return app.Project{}, err
	}

	body, _, err := c.get(ctx, u)
	if err != nil {
		return app.Project{}, fmt.Errorf("getting project: %w", err)
	}

	var resp projectResponse
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &resp); err != nil {
		return app.Project{}, fmt.Errorf("unmarshalling response: %w", err)
	}

	return app.Project{Name: resp.Name}, nil
}

// Contributors returns all contributors of the project.
// Gitlab doesn't link contributors to user accounts, so profile urls are empty.
func (c *Client) Contributors(ctx context.Context, host string, owner string, repo string) ([]app.Contributor, error) {
	base, err := projectURL(host, owner, repo)
	if err != nil {
		return nil, err
	}

	var contributors []app.Contributor
	page := 1
	for i := 0; i < maxContributorsPages && page > 0; i++ {
		v := make(url.Values)
		v.Set("per_page", strconv.Itoa(contributorsPerPage))
		v.Set("page", strconv.Itoa(page))

		body, header, err := c.get(ctx, base+"/repository/contributors?"+v.Encode())
		if err != nil {
			return nil, fmt.Errorf("listing contributors: %w", err)
		}

		var resp []contributorResponse
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("unmarshalling response: %w", err)
		}
		for _, r := range resp {
			contributors = append(contributors, app.Contributor{
				Login:         r.Name,
				Contributions: r.Commits,
			})
		}

		// Missing or empty header means the last page.
		page, _ = strconv.Atoi(header.Get("X-Next-Page"))
	}

	return contributors, nil
}

func projectURL(host string, owner string, repo string) (string, error) {
	if host == "" || owner == "" || repo == "" {
		return "", app.InvalidRequestError("host, owner and repo cannot be empty")
	}

	return fmt.Sprintf("https://%s/api/v4/projects/%s", host, url.PathEscape(owner+"/"+repo)), nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("doing http request: %w", err)
	}
	defer func() {
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, app.NotFoundError(req.URL.Path)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, nil, app.TooManyRequestsError(req.URL.Path)
	case resp.StatusCode/100 > 3:
		return nil, nil, fmt.Errorf("got invalid http status code: %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, c.responseMaxSize))
	if err != nil {
		return nil, nil, fmt.Errorf("reading http response body: %w", err)
	}

	return b, resp.Header, nil
}
