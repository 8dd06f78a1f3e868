package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"glitchterm/internal/metrics"
)

const (
	httpRequestTimeout = 15 * time.Second
	// errorBodyLimit caps how much of an error response is read
	errorBodyLimit = 4096
	userAgent      = "glitchterm"
)

// Client talks to the server's REST API
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client's logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger.Named("api") }
}

// WithMetrics records request latencies
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the instance at instanceURL. token may be empty for
// anonymous access to public endpoints.
func New(instanceURL, token string, opts ...Option) (*Client, error) {
	instanceURL = strings.TrimSpace(instanceURL)
	if instanceURL == "" {
		return nil, errors.New("instance url is not configured")
	}
	u, err := url.Parse(strings.TrimRight(instanceURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse instance url `%s`", instanceURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("instance url `%s` must be http or https", instanceURL)
	}

	c := &Client{
		baseURL: u,
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: httpRequestTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode  int    `json:"-"`
	Message     string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// request describes one REST call. name labels metrics and logs.
type request struct {
	name   string
	method string
	path   string
	params url.Values
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) (http.Header, error) {
	u := *c.baseURL
	u.Path = u.Path + "/api/" + strings.TrimLeft(r.path, "/")
	if len(r.params) > 0 {
		u.RawQuery = r.params.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, errors.Wrapf(err, "marshal %s body", r.name)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request to `%s`", u.Redacted())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if r.method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveRequest(r.name, time.Since(start))
	if err != nil {
		// the caller's context error is more useful than the transport wrapper
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(err, "%s request failed", r.name)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("endpoint", r.name),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		if len(raw) > 0 && json.Unmarshal(raw, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return resp.Header, apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.Header, errors.Wrapf(err, "decode %s response", r.name)
		}
	}
	return resp.Header, nil
}
