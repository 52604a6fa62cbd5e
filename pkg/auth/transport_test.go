package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHeaders(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Got-Authorization", r.Header.Get("Authorization"))
		w.Header().Set("X-Got-Key", r.Header.Get(DefaultAPIKeyHeader))
		w.Header().Set("X-Got-Custom", r.Header.Get("X-Custom-Key"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBearerTokenTransport(t *testing.T) {
	srv := echoHeaders(t)

	tests := []struct {
		name     string
		token    string
		preset   string
		expected string
	}{
		{name: "sets token", token: "abc", expected: "Bearer abc"},
		{name: "empty token", token: "", expected: ""},
		{name: "keeps caller header", token: "abc", preset: "Basic xyz", expected: "Basic xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := &http.Client{Transport: &BearerTokenTransport{Token: tt.token}}
			req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
			require.NoError(t, err)
			if tt.preset != "" {
				req.Header.Set("Authorization", tt.preset)
			}

			resp, err := hc.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.expected, resp.Header.Get("X-Got-Authorization"))
			if tt.preset == "" {
				assert.Empty(t, req.Header.Get("Authorization"), "original request must not be mutated")
			}
		})
	}
}

func TestAPIKeyTransport(t *testing.T) {
	srv := echoHeaders(t)

	hc := &http.Client{Transport: &APIKeyTransport{Key: "k1"}}
	resp, err := hc.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "k1", resp.Header.Get("X-Got-Key"))

	hc = &http.Client{Transport: &APIKeyTransport{Key: "k2", Header: "X-Custom-Key", Base: http.DefaultTransport}}
	resp, err = hc.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "k2", resp.Header.Get("X-Got-Custom"))
	assert.Empty(t, resp.Header.Get("X-Got-Key"))
}
