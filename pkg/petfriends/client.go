// Package petfriends is a thin client for the PetFriends REST API.
//
// Every operation returns the status code and body of the remote service as-is:
// non-2xx statuses are data, not errors. Only transport failures are returned
// as errors.
package petfriends

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public PetFriends deployment.
const DefaultBaseURL = "https://petfriends.skillfactory.ru"

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// Client calls the PetFriends API.
type Client struct {
	baseURL      string
	http         *http.Client
	timeout      time.Duration
	logger       *zap.Logger
	endpoints    *Endpoints
	logRequests  bool
	logResponses bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout. The client supplied through
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestLogging enables per-request and per-response debug logs.
func WithRequestLogging(requests, responses bool) Option {
	return func(c *Client) {
		c.logRequests = requests
		c.logResponses = responses
	}
}

// New creates a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:      &http.Client{Timeout: DefaultTimeout},
		logger:    zap.NewNop(),
		endpoints: NewEndpoints(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one outgoing call.
type request struct {
	method      string
	path        string
	query       map[string]string
	headers     map[string]string
	body        io.Reader
	contentType string
}

func (c *Client) do(ctx context.Context, r request) (*Response, error) {
	fullURL := c.baseURL + r.path
	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, r.body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if len(r.query) > 0 {
		q := req.URL.Query()
		for k, v := range r.query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		// Header names like auth_key must reach the server untouched.
		req.Header[k] = []string{v}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("petfriends request failed",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Duration("duration", duration),
			zap.String("trace_id", extractTraceID(traceParent)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body of %s %s: %w", r.method, r.path, err)
	}

	if c.logRequests {
		c.logger.Debug("petfriends request",
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", duration),
			zap.String("trace_id", extractTraceID(traceParent)),
		)
	}
	if c.logResponses && len(raw) > 0 {
		c.logger.Debug("petfriends response body",
			zap.String("path", r.path),
			zap.ByteString("body", truncate(raw, 2048)),
		)
	}

	return newResponse(resp.StatusCode, resp.Header, raw), nil
}

// createTraceParent builds a W3C traceparent header value.
func createTraceParent() string {
	traceID := make([]byte, 16)
	spanID := make([]byte, 8)
	_, _ = rand.Read(traceID)
	_, _ = rand.Read(spanID)
	return fmt.Sprintf("00-%s-%s-01", hex.EncodeToString(traceID), hex.EncodeToString(spanID))
}

func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}
	return traceParent
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return append(bytes.Clone(b[:n]), "..."...)
}
