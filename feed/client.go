// Package feed fetches raw payloads from upstream transit feeds.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single fetch when none is configured
const DefaultTimeout = 10 * time.Second

// APIKeyHeader carries the optional upstream API key
const APIKeyHeader = "x-api-key"

// Client performs single GET requests against feed URLs. It is safe for
// concurrent use; no retries are attempted.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	apiKey     string
}

// Option configures a Client
type Option func(*Client)

// WithAPIKey sends key in the x-api-key header of every request
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a feed client bounded by timeout (DefaultTimeout if <= 0)
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch fetches url and returns the raw body. Every failure, including a
// non-2xx status, is returned as a *Error of KindTransport.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, TransportError(url, err)
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, TransportError(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, TransportError(url, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportError(url, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// FetchJSON fetches url and decodes the body into v. Parse failures are
// returned as a *Error of KindDecode.
func (c *Client) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return DecodeError(url, err)
	}
	return nil
}
