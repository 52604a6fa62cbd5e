// Package auth provides round trippers that authenticate requests to the backend.
// Tokens and keys are supplied by configuration; nothing here stores or refreshes them.
package auth

import "net/http"

// DefaultAPIKeyHeader is the header APIKeyTransport uses when none is set.
const DefaultAPIKeyHeader = "X-API-Key"

// BearerTokenTransport sets "Authorization: Bearer <token>" on requests that do not
// already carry an Authorization header.
type BearerTokenTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token == "" || req.Header.Get("Authorization") != "" {
		return base(t.Base).RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.Token)
	return base(t.Base).RoundTrip(clone)
}

// APIKeyTransport sets an API key header on every request.
type APIKeyTransport struct {
	Key    string
	Header string
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *APIKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Key == "" {
		return base(t.Base).RoundTrip(req)
	}
	header := t.Header
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(header, t.Key)
	return base(t.Base).RoundTrip(clone)
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
