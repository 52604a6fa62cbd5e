package client

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

// DefaultMaxAttempts is the number of times a call is sent before giving up.
const DefaultMaxAttempts = 3

const (
	retryBackoff  = 250 * time.Millisecond
	maxRetryAfter = 10 * time.Second
)

// RetryPolicy decides whether a failed call is sent again and how long to wait first.
// The client multiplies the delay by the attempt number.
type RetryPolicy interface {
	ShouldRetry(resp *http.Response, err error) (bool, time.Duration)
}

// RetryPolicyFunc lets a plain function act as a RetryPolicy.
type RetryPolicyFunc func(resp *http.Response, err error) (bool, time.Duration)

func (f RetryPolicyFunc) ShouldRetry(resp *http.Response, err error) (bool, time.Duration) {
	return f(resp, err)
}

// DefaultRetryPolicy resends calls that failed in transport or were turned away by the
// gateway (429, 502, 503, 504). A Retry-After header in seconds overrides the backoff,
// up to ten seconds. A 500 means a resolver failed and is returned as is; the call may
// have been a mutation that already ran.
var DefaultRetryPolicy RetryPolicy = RetryPolicyFunc(func(resp *http.Response, err error) (bool, time.Duration) {
	if err != nil {
		return true, retryBackoff
	}
	if !retryableStatus(resp.StatusCode) {
		return false, 0
	}
	if secs, convErr := strconv.Atoi(resp.Header.Get("Retry-After")); convErr == nil && secs >= 0 {
		return true, min(time.Duration(secs)*time.Second, maxRetryAfter)
	}
	return true, retryBackoff
})

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func (c *Client) retry(ctx context.Context, fn func() (*http.Response, error)) (*http.Response, error) {
	policy := c.retryPolicy
	if policy == nil {
		return fn()
	}
	var attempt int
	for {
		resp, err := fn()
		attempt++
		retry, delay := policy.ShouldRetry(resp, err)
		if !retry || attempt >= c.maxAttempts || ctx.Err() != nil {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}
		c.debugf("helen: retrying after attempt %d", attempt)

		timer := time.NewTimer(delay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
