// Package fetch performs the single outbound HTTP request made by fetchview
// and hands the result back as plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultURL is the read-only JSON endpoint loaded by the page.
const DefaultURL = "https://www.reddit.com/r/TheMotte/top.json"

// Handle identifies one issued request. A new Handle is created for every
// load; handles are compared by ID.
type Handle struct {
	ID  uuid.UUID
	URL string
}

func (h Handle) String() string {
	return h.ID.String()
}

// Result is the outcome of a request: either the raw body or the error that
// prevented it from being read.
type Result struct {
	Body string
	Err  error
}

// Ok reports whether the request succeeded.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Text returns the body on success and the error description otherwise.
func (r Result) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Body
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, status)
}

// Client issues GET requests through an http.Client. Under GOOS=js the
// default transport is the browser's fetch API.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Without it requests are not timed out.
// It applies regardless of its position relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client. With no options it uses a fresh http.Client
// with the default transport and no timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// Copy so a caller's shared http.Client is left untouched.
		cpy := *c.http
		cpy.Timeout = c.timeout
		c.http = &cpy
	}
	return c
}

// Get fetches url with an empty body and no extra headers and returns the
// response body verbatim.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return string(body), nil
}

// Start issues a Handle for a request to url and returns the function that
// performs it. The function blocks until the request completes and is meant
// to run off the event loop.
func (c *Client) Start(ctx context.Context, url string) (Handle, func() Result) {
	h := Handle{
		ID:  uuid.New(),
		URL: url,
	}
	return h, func() Result {
		body, err := c.Get(ctx, url)
		return Result{Body: body, Err: err}
	}
}
