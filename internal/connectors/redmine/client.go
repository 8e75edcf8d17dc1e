package redmine

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// APIKeyHeader is the fixed request header carrying the Redmine API key.
const APIKeyHeader = "X-Redmine-API-Key"

// Client wraps the shared REST client with Redmine's URL and pagination
// conventions.
type Client struct {
	rest    *rest.Client
	baseURL string
}

// NewClient creates a Redmine API client authenticating with the API key
// from the token provider.
func NewClient(baseURL string, tokens driven.TokenProvider) *Client {
	return &Client{
		rest:    rest.NewClient(&rest.HeaderAuth{Header: APIKeyHeader, Tokens: tokens}),
		baseURL: baseURL,
	}
}

// Rest returns the underlying REST client. Used by tests to inject a
// custom HTTP client.
func (c *Client) Rest() *rest.Client {
	return c.rest
}

// Get issues one authenticated GET against a path under the instance base
// URL and returns the decoded JSON object.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return c.rest.GetJSON(ctx, c.baseURL+path, query)
}

// ListPaginated retrieves the complete record set behind a listing
// endpoint. Redmine listing responses carry the records under rootKey plus
// total_count/offset/limit. The loop requests pages of DefaultPageSize,
// advances the offset by the server-reported page size, and stops once the
// offset reaches the total count or a page comes back empty (a miscounted
// total_count must not loop forever).
func (c *Client) ListPaginated(ctx context.Context, path, rootKey string, params url.Values) ([]map[string]any, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("limit", strconv.Itoa(DefaultPageSize))

	var records []map[string]any
	offset := 0

	for {
		query.Set("offset", strconv.Itoa(offset))

		payload, err := c.Get(ctx, path, query)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}

		batch, _ := rest.List(payload, rootKey)
		records = append(records, batch...)

		if len(batch) == 0 {
			break
		}

		total, ok := rest.Int(payload, "total_count")
		if !ok {
			total = len(records)
		}
		step, ok := rest.Int(payload, "limit")
		if !ok || step <= 0 {
			step = DefaultPageSize
		}

		offset += step
		if offset >= total {
			break
		}
	}

	return records, nil
}
