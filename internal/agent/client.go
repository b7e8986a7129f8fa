// Package agent provides the HTTP client for the Retro Hunter agent backend:
// eBay price search, OCR game identification, and pricing-chart lookups.
package agent

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/retrohunt/retro-hunter/internal/metrics"
)

// Client talks to the agent backend. Outbound calls go through a retrying
// HTTP client with bounded timeouts and, when configured, a rate limiter.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *Limiter
	log     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default retrying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLimiter injects a rate limiter applied before every backend call.
func WithLimiter(l *Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a Client targeting the given agent base URL.
func New(baseURL string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc.StandardClient(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET for path (already query-encoded) and returns the body of
// a 200 response.
func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	if err := c.wait(ctx, operation); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling agent %s: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", operation, err)
	}

	c.log.Debug("agent call finished",
		"operation", operation, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent %s returned status %d: %s", operation, resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) wait(ctx context.Context, operation string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}
	metrics.AgentAPICallsTotal.WithLabelValues(operation).Inc()
	return nil
}
