package buddyapi

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

	"go.uber.org/zap"
)

const (
	chatPath            = "/chat"
	recommendationsPath = "/recommendations"
	reportPath          = "/report"
)

// Client talks to the Learning Buddy backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client for the backend at baseURL
// (e.g. "http://localhost:5000").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server URL %q has no host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat posts a message and returns the backend's reply. A reply carrying an
// error field comes back as *BackendError.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	status, err := c.do(ctx, http.MethodPost, chatPath, req, &out)
	if err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &BackendError{Status: status, Message: out.Error}
	}
	if status >= http.StatusBadRequest {
		return nil, &BackendError{Status: status, Message: http.StatusText(status)}
	}
	if out.Response == "" {
		return nil, &BackendError{Status: status, Message: ErrEmptyResponse.Error()}
	}
	return &out, nil
}

// Recommendations fetches per-topic performance, weakest topic first.
func (c *Client) Recommendations(ctx context.Context) ([]Topic, error) {
	var out RecommendationsResponse
	status, err := c.do(ctx, http.MethodGet, recommendationsPath, nil, &out)
	if err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, &BackendError{Status: status, Message: out.Error}
	}
	if status >= http.StatusBadRequest {
		return nil, &BackendError{Status: status, Message: http.StatusText(status)}
	}
	return out.Topics, nil
}

// Report asks the backend to send a session report. An unsuccessful report
// is not an error: the caller shows Message.
func (c *Client) Report(ctx context.Context, req ReportRequest) (*ReportResponse, error) {
	var out ReportResponse
	if _, err := c.do(ctx, http.MethodPost, reportPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one request and decodes the JSON body into out regardless of
// status, since the backend reports errors in the body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return 0, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &NetworkError{Op: "read " + path, Err: err}
	}

	c.logger.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &NetworkError{
			Op:  "decode " + path,
			Err: fmt.Errorf("status %d: %w", resp.StatusCode, err),
		}
	}
	return resp.StatusCode, nil
}
