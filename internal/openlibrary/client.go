// Package openlibrary provides a client for the Open Library search API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ronibhakta1/opds2-lenny/internal/ratelimit"
)

const (
	defaultBaseURL = "https://openlibrary.org"
	// Open Library asks unauthenticated clients to stay around 1 req/sec.
	defaultRatePerSecond = 1
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Open Library search API client.
type Client struct {
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
	cache       *SearchCache
}

// NewClient creates a new Open Library client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("OpenLibrary", defaultRatePerSecond),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Open Library API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = base
		}
	}
}

// WithRateLimit overrides the default requests-per-second limit.
func WithRateLimit(requestsPerSecond int) Option {
	return func(client *Client) {
		if requestsPerSecond > 0 {
			client.rateLimiter = ratelimit.New("OpenLibrary", requestsPerSecond)
		}
	}
}

// WithCache attaches a SQLite-backed response cache. Cache read failures
// degrade to a fetch, never to a request failure.
func WithCache(cache *SearchCache) Option {
	return func(client *Client) {
		client.cache = cache
	}
}

// Search queries search.json with the given query string and pagination
// window and decodes the matching works.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) (*SearchResponse, error) {
	key := cacheKey(query, limit, offset)
	if c.cache != nil {
		if cached, ok, err := c.cache.Get(key); err == nil && ok {
			return cached, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	searchURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Open Library search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Library search returned status: %s", resp.Status)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Put(key, &result)
	}

	return &result, nil
}

func cacheKey(query string, limit, offset int) string {
	return fmt.Sprintf("search:%s:%d:%d", query, limit, offset)
}
