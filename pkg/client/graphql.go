package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage     `json:"data"`
	Errors []GraphQLErrorEntry `json:"errors"`
}

// Do posts a GraphQL operation and decodes the "data" member of the response into out.
// A response carrying "errors" fails with *GraphQLError; a non-2xx status fails with
// *APIError. out may be nil when the caller needs no data.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("error encoding graphql request: %w", err)
	}

	endpoint := c.graphQLEndpoint()
	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	if err := c.checkResponse(resp); err != nil {
		return err
	}
	defer resp.Body.Close()

	var gr graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return fmt.Errorf("error decoding response from %s: %w", endpoint, err)
	}
	if len(gr.Errors) > 0 {
		return &GraphQLError{Errors: gr.Errors}
	}
	if out == nil || len(gr.Data) == 0 || string(gr.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("error decoding data from %s: %w", endpoint, err)
	}
	return nil
}
