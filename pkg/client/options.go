package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-call request ID set by WithRequestID.
const RequestIDHeader = "X-Request-ID"

// Logger represents the minimal logging interface used by the client.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// WithTimeout sets the HTTP timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d <= 0 || c.httpClient == nil {
			return
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithMiddleware registers one or more request-middleware functions.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *Client) { c.middleware = append(c.middleware, mw...) }
}

// WithRetryPolicy configures the retry behavior. A nil policy disables retries.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) { c.retryPolicy = policy }
}

// WithMaxAttempts bounds the number of times one call is sent, retries included.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger registers a logger used for request lifecycle events.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithBearerToken authenticates every request with the given token.
func WithBearerToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithPageSize sets the page size used by list calls whose query does not set one.
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) ClientOption {
	return WithMiddleware(func(_ context.Context, req *http.Request) error {
		if key != "" {
			req.Header.Set(key, value)
		}
		return nil
	})
}

// WithRequestID tags every call with a fresh X-Request-ID unless the request already
// carries one. Retries of a call reuse its ID.
func WithRequestID() ClientOption {
	return WithMiddleware(func(_ context.Context, req *http.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return nil
	})
}
