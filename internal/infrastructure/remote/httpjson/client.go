// Package httpjson is the small JSON-over-HTTP client shared by the
// HTTP-reachable collection stores.
package httpjson

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

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: upstream returned %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// Unwrap maps 404 to remote.ErrNotFound
func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return remote.ErrNotFound
	}
	return nil
}

// Client issues JSON requests against one base URL
type Client struct {
	baseURL string
	client  *http.Client
	query   url.Values
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithQuery adds a query parameter to every request
func WithQuery(key, value string) Option {
	return func(c *Client) { c.query.Set(key, value) }
}

// New creates a client for baseURL
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		query:   url.Values{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends body (JSON-encoded unless nil) and returns the raw response body
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(c.query) > 0 {
		u += "?" + c.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := remote.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{Method: method, URL: c.baseURL + path, Status: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// DoJSON is Do followed by decoding the response into out
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Escape escapes one path segment
func Escape(segment string) string {
	return url.PathEscape(segment)
}
