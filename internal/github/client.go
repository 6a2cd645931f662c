// Package github proxies public repository listings from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"devbook/internal/cache"
	"devbook/internal/models"
)

// Client fetches a user's public repositories. Responses are relayed to API
// clients as GitHub returned them and cached briefly to stay inside the
// unauthenticated rate limit.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a GitHub client. An empty token means unauthenticated
// requests.
func NewClient(baseURL, token string, pageSize int) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Repos returns the user's most recent public repositories as the raw JSON
// array GitHub produced. Unknown usernames map to NOT_FOUND; any other
// upstream failure maps to UPSTREAM_UNAVAILABLE.
func (c *Client) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}

	var payload json.RawMessage
	err := cache.Aside(ctx, cache.GithubKey(username), &payload, cache.GithubTTL, func() error {
		body, err := c.fetch(ctx, username)
		if err != nil {
			return err
		}
		payload = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, username string) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created&direction=asc",
		c.baseURL, username, c.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewUpstreamUnavailableError("GitHub", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, models.NewNotFoundError("GitHub user", username)
	case resp.StatusCode != http.StatusOK:
		return nil, models.NewUpstreamUnavailableError("GitHub",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, models.NewUpstreamUnavailableError("GitHub", err)
	}
	if !json.Valid(body) {
		return nil, models.NewUpstreamUnavailableError("GitHub",
			fmt.Errorf("invalid JSON response"))
	}
	return json.RawMessage(body), nil
}
