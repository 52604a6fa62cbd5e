// Package client talks to the Helen Express GraphQL backend: paged entity lists driven by
// compiled query criteria, and vendor quotation reads and replacements.
package client

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

	"github.com/robert-malhotra/go-helen-express/pkg/auth"
	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
)

// Middleware manipulates an outgoing *http.Request before it is executed.
// The context is provided for cancellation and to support auth implementations
// that may need to perform async operations (e.g., token refresh).
type Middleware func(context.Context, *http.Request) error

// Client is a Helen Express backend client.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	middleware  []Middleware
	retryPolicy RetryPolicy
	maxAttempts int
	logger      Logger
	token       string
	pageSize    int
}

// NewClient creates a client for the backend rooted at baseURL. GraphQL operations are
// posted to <baseURL>/graphql.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() {
		return nil, ErrInvalidBaseURL
	}
	if u.Path != "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:     u,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		retryPolicy: DefaultRetryPolicy,
		maxAttempts: DefaultMaxAttempts,
		pageSize:    criteria.DefaultPageSize,
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		return nil, ErrNilHTTPClient
	}

	if c.token != "" {
		hc := *c.httpClient
		hc.Transport = &auth.BearerTokenTransport{Token: c.token, Base: hc.Transport}
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) graphQLEndpoint() string {
	return c.baseURL.JoinPath("graphql").String()
}

// -----------------------------------------------------------------------------
// doRequest: one place to build a request, run middleware, and execute it.
// -----------------------------------------------------------------------------
//
// Every operation funnels its outbound HTTP calls through this helper. Middleware runs
// once per call; retries resend the same headers with a fresh copy of the body.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, mw := range c.middleware {
		if err := mw(ctx, req); err != nil {
			return nil, fmt.Errorf("error applying middleware for %s: %w", rawURL, err)
		}
	}

	c.debugf("helen: %s %s", method, rawURL)
	resp, err := c.retry(ctx, func() (*http.Response, error) {
		attempt := req.Clone(ctx)
		if body != nil {
			attempt.Body = io.NopCloser(bytes.NewReader(body))
			attempt.ContentLength = int64(len(body))
			attempt.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(body)), nil
			}
		}
		return c.httpClient.Do(attempt)
	})
	if err != nil {
		c.errorf("helen: %s %s: %v", method, rawURL, err)
		return nil, err
	}
	return resp, nil
}

// checkResponse turns a non-2xx response into an *APIError and closes its body.
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	apiErr := &APIError{Status: resp.StatusCode, Raw: data}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	c.errorf("helen: request failed status=%d", resp.StatusCode)
	return apiErr
}

func (c *Client) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

func (c *Client) errorf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}
