package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client fetches episode listings from the source site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a listing client for the given endpoint base.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("listing base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// URL returns the request target for an identifier. Failed identifiers are
// recorded by this URL, so it must stay deterministic.
func (c *Client) URL(id int) string {
	return fmt.Sprintf("%s/%d", c.baseURL, id)
}

type listingEnvelope struct {
	HTML string `json:"html"`
}

// Fetch retrieves and parses one listing. Every failure mode maps onto one of
// the package sentinels (possibly wrapped with request detail) so callers can
// classify it; Fetch never panics and never reports partial results.
func (c *Client) Fetch(ctx context.Context, id int) (RangeResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(id), nil)
	if err != nil {
		return RangeResult{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RangeResult{}, fmt.Errorf("%w: %v", ErrHTTPStatus, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RangeResult{}, fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
	}

	var envelope listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return RangeResult{}, fmt.Errorf("decode listing response: %w", err)
	}
	if strings.TrimSpace(envelope.HTML) == "" {
		return RangeResult{}, ErrEmptyBody
	}

	items, err := ParseEpisodeItems(envelope.HTML)
	if err != nil {
		return RangeResult{}, err
	}
	if len(items) == 0 {
		return RangeResult{}, ErrNoEpisodeItems
	}

	return InferRange(items)
}
