package client

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidBaseURL is returned when the base URL is empty or not absolute.
	ErrInvalidBaseURL = errors.New("helen: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("helen: http client cannot be nil")
	// ErrNotFound is returned when the backend has no record for the requested ID.
	ErrNotFound = errors.New("helen: not found")
)

// APIError is a non-2xx HTTP response from the backend.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Raw     []byte `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("helen: api error status=%d", e.Status)
	}
	return fmt.Sprintf("helen: api error status=%d: %s", e.Status, e.Message)
}

// Temporary reports whether the gateway turned the call away and it may succeed later.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return retryableStatus(e.Status)
}

// GraphQLErrorEntry is one entry of a GraphQL "errors" array.
type GraphQLErrorEntry struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLError reports errors returned in a GraphQL response body.
type GraphQLError struct {
	Errors []GraphQLErrorEntry
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, entry := range e.Errors {
		msgs[i] = entry.Message
	}
	return "helen: graphql: " + strings.Join(msgs, "; ")
}

// Code returns the extensions.code of the first error, if any.
func (e *GraphQLError) Code() string {
	for _, entry := range e.Errors {
		if code, ok := entry.Extensions["code"].(string); ok {
			return code
		}
	}
	return ""
}
