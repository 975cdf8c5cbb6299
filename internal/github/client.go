// Package github is a minimal client for the pieces of the GitHub REST API
// the tool consumes: latest-release lookup and repository search. All calls
// are anonymous GETs unless a token is configured for higher rate limits.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// ErrNotFound indicates a repository or release that does not exist.
// It is terminal: callers must not retry it.
var ErrNotFound = errors.New("not found")

// ErrRateLimited indicates the API rejected the call for rate limiting.
// The retry layer backs off and retries it.
var ErrRateLimited = errors.New("rate limit exceeded")

// Release is a published release of a repository.
type Release struct {
	TagName   string    `json:"tag_name"`
	Name      string    `json:"name"`
	Assets    []Asset   `json:"assets"`
	Published time.Time `json:"published_at"`
}

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Repository is a search hit from the repository search endpoint.
type Repository struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
}

type searchResponse struct {
	Items []Repository `json:"items"`
}

// Client talks to the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	retry      RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (used in tests).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithToken sets an API token for authenticated (higher-limit) calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRetryPolicy overrides the rate-limit retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a Client. Metadata calls carry a bounded timeout; large
// asset downloads go through installer code with its own client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestRelease fetches the latest release of "owner/name". Rate-limit
// responses are retried with exponential backoff; a missing repository or
// a repository with no releases returns ErrNotFound.
func (c *Client) LatestRelease(ctx context.Context, repo string) (*Release, error) {
	var release Release
	u := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, repo)
	if err := c.getJSONRetry(ctx, u, &release); err != nil {
		return nil, fmt.Errorf("fetching latest release of %s: %w", repo, err)
	}
	return &release, nil
}

// SearchRepositories searches repositories matching term, sorted by stars
// descending, returning at most limit hits.
func (c *Client) SearchRepositories(ctx context.Context, term string, limit int) ([]Repository, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("q", term)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", fmt.Sprint(limit))

	var resp searchResponse
	u := fmt.Sprintf("%s/search/repositories?%s", c.baseURL, q.Encode())
	if err := c.getJSONRetry(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("searching repositories for %q: %w", term, err)
	}
	return resp.Items, nil
}

// getJSONRetry wraps getJSON with the retry policy. Rate limiting and
// timed-out calls are transient; not-found and every other failure is
// terminal.
func (c *Client) getJSONRetry(ctx context.Context, url string, v interface{}) error {
	return Retry(ctx, c.retry, func() error {
		err := c.getJSON(ctx, url, v)
		if err != nil && !transient(err) {
			return Permanent(err)
		}
		return err
	})
}

// transient reports whether a metadata call is worth retrying. Timeouts
// come from the per-call client deadline; a cancelled outer context stops
// the backoff loop itself, so it never loops on a dead context.
func transient(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "appcellar")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling GitHub API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response JSON: %w", err)
	}
	return nil
}
