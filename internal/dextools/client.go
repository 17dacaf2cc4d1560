// Package dextools is a thin client for the DEXTools HTTP API v2.
//
// Every method takes the canonical chain identifier first and returns the
// decoded JSON body unchanged. The client does not retry or rate limit;
// both are left to the caller.
package dextools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is a decoded API response body.
type Response = map[string]any

// ErrMissingAPIKey is returned by New when no credential is configured.
var ErrMissingAPIKey = errors.New("DEXTOOLS_API_KEY environment variable not set")

// Subscription plans accepted by the public API.
var plans = map[string]bool{
	"free":     true,
	"trial":    true,
	"standard": true,
	"advanced": true,
	"pro":      true,
	"partner":  true,
}

const (
	publicBaseURL  = "https://public-api.dextools.io/%s/v2"
	partnerBaseURL = "https://api.dextools.io/v2"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
	userAgent      = "dextools-mcp/1.0.0"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dextools api %d: %s", e.StatusCode, e.Body)
}

// Client calls the DEXTools API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	plan       string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout. The client is copied first so a
// shared *http.Client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given credential and subscription plan.
func New(apiKey, plan string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	plan = strings.ToLower(strings.TrimSpace(plan))
	if !ValidPlan(plan) {
		return nil, fmt.Errorf("unknown dextools plan: %q", plan)
	}

	c := &Client{
		baseURL:    BaseURL(plan),
		apiKey:     apiKey,
		plan:       plan,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "dextools_client")

	return c, nil
}

// BaseURL returns the API root for a plan.
func BaseURL(plan string) string {
	if plan == "partner" {
		return partnerBaseURL
	}
	return fmt.Sprintf(publicBaseURL, plan)
}

// ValidPlan reports whether plan names a known subscription tier.
func ValidPlan(plan string) bool {
	return plans[strings.ToLower(strings.TrimSpace(plan))]
}

// Plan returns the configured subscription plan.
func (c *Client) Plan() string {
	return c.plan
}

// get issues a GET for the given path segments and query and decodes the
// JSON body.
func (c *Client) get(ctx context.Context, segments []string, query url.Values) (Response, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	endpoint := c.baseURL + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "dextools_request",
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return out, nil
}
