package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/google/go-github/v55/github"
	"golang.org/x/oauth2"
)

const contributorsPerPage = 100

// Client returns details about gihub projects and their contributors.
// This struct is an adapter for app.GithubClient.
type Client struct {
	gh *github.Client
}

var _ app.GithubClient = &Client{}

// NewClient creates new github client.
// address is the api root, e.g. https://api.github.com. authToken is optional.
func NewClient(httpClient *http.Client, address string, authToken string) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if authToken != "" {
		// oauth2 picks the base client from the context.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		authClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: authToken},
		))
		authClient.Timeout = httpClient.Timeout
		httpClient = authClient
	}

	gh := github.NewClient(httpClient)
	if address != "" {
		u, err := url.Parse(strings.TrimSuffix(address, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid api address: %w", err)
		}
		gh.BaseURL = u
	}

	return &Client{gh: gh}, nil
}

// RateLimit returns current core api quota.
func (c *Client) RateLimit(ctx context.Context) (app.Quota, error) {
	limits, resp, err := c.gh.RateLimits(ctx)
	if err != nil {
		return app.Quota{}, translateError(resp, err, "getting rate limit")
	}
	core := limits.GetCore()
	if core == nil {
		return app.Quota{}, errors.New("no core rate limit in response")
	}

	return app.Quota{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Unix(),
	}, nil
}

// Project returns project's metadata.
func (c *Client) Project(ctx context.Context, owner string, repo string) (app.Project, error) {
	if owner == "" || repo == "" {
		return app.Project{}, app.InvalidRequestError("owner and repo cannot be empty")
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return app.Project{}, translateError(resp, err, "getting repository")
	}

	return app.Project{Name: r.GetName()}, nil
}

// Contributors returns given page of the project's contributors.
func (c *Client) Contributors(ctx context.Context, owner string, repo string, page int) (app.ContributorsPage, error) {
	if owner == "" || repo == "" {
		return app.ContributorsPage{}, app.InvalidRequestError("owner and repo cannot be empty")
	}
	if page < 1 {
		return app.ContributorsPage{}, app.InvalidRequestError("page must be greater than 0")
	}

	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: contributorsPerPage,
		},
	}
	list, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return app.ContributorsPage{}, translateError(resp, err, "listing contributors")
	}

	contributors := make([]app.Contributor, 0, len(list))
	for _, item := range list {
		contributors = append(contributors, app.Contributor{
			Login:         item.GetLogin(),
			ProfileURL:    item.GetHTMLURL(),
			Contributions: uint(item.GetContributions()),
		})
	}

	return app.ContributorsPage{
		Contributors: contributors,
		LastPage:     resp.LastPage,
	}, nil
}

// translateError maps api failures to app errors.
func translateError(resp *github.Response, err error, action string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return app.TooManyRequestsError(rateErr.Message)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return app.TooManyRequestsError(abuseErr.Message)
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return app.NotFoundError(action + ": not found")
	}

	return fmt.Errorf("%s: %w", action, err)
}
