package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client wraps net/http.Client with bearer-token authentication
// for calling REST APIs. It is used for webhook delivery and for
// polling target service health endpoints. Defaults match common
// conventions so callers can use NewClient(url) with zero options.
type Client struct {
	baseURL    string
	token      string
	headers    map[string]string
	httpClient *http.Client
}

// NewClient creates an HTTP client targeting the given base URL.
// Pass ClientOption values to override defaults.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers[key] = value }
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying net/http client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func (c *Client) apply(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// Get performs an authenticated GET request and returns the
// status code and parsed JSON object response.
func (c *Client) Get(
	ctx context.Context, path string,
) (int, map[string]interface{}, error) {
	code, data, err := c.GetRaw(ctx, path)
	if err != nil {
		return code, nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return code, nil, fmt.Errorf("parse response: %w", err)
	}

	return code, result, nil
}

// GetRaw performs an authenticated GET and returns status code
// and raw body bytes. Used when the response could be either
// an object or array, or is not JSON at all.
func (c *Client) GetRaw(
	ctx context.Context, path string,
) (int, []byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	c.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

// PostJSON performs an authenticated POST request with a JSON body
// and returns the status code and raw response bytes.
func (c *Client) PostJSON(
	ctx context.Context, path string, body []byte,
) (int, []byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

// PostObject marshals v to JSON and POSTs it to path.
func (c *Client) PostObject(
	ctx context.Context, path string, v interface{},
) (int, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal body: %w", err)
	}
	return c.PostJSON(ctx, path, body)
}

// Token returns the configured bearer token.
func (c *Client) Token() string {
	return c.token
}

// SetToken sets the bearer token directly (e.g. when loaded from
// the environment after construction).
func (c *Client) SetToken(token string) {
	c.token = token
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
