// Package github proxies the public GitHub API for profile repo listings.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const defaultBaseURL = "https://api.github.com"

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client fetches public repositories for a GitHub username.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient returns a Client. The token is optional; when set it raises the
// unauthenticated rate limit.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// ListRepos returns the user's five most recently created public repos.
// Results are cached; any upstream failure is reported as a missing profile
// so callers never leak GitHub error details.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	var repos []Repo
	err := cache.Aside(ctx, cache.GithubReposKey(username), &repos, cache.GithubReposTTL, func() error {
		return c.fetchRepos(ctx, username, &repos)
	})
	if err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string, dest *[]Repo) error {
	span, ctx := observability.NewSpan(ctx, "github.ListRepos")
	defer span.End()
	span.AddAttributes(attribute.String("github.username", username))

	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.SetError(err)
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetError(err)
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return models.NewNotFoundError("No Github profile found")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("github responded with status %d", resp.StatusCode)
		span.SetError(err)
		observability.GithubProxyRequests.WithLabelValues("not_found").Inc()
		return models.NewNotFoundError("No Github profile found")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		span.SetError(err)
		observability.GithubProxyRequests.WithLabelValues("error").Inc()
		return models.NewNotFoundError("No Github profile found")
	}

	observability.GithubProxyRequests.WithLabelValues("success").Inc()
	return nil
}
