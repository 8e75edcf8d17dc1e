package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tapestry-io/tapestry/internal/connectors/rest"
	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// PATHeader is the request header carrying a personal access token.
const PATHeader = "PRIVATE-TOKEN"

// Client wraps the shared REST client with GitLab's URL and pagination
// conventions.
type Client struct {
	rest    *rest.Client
	baseURL string
}

// NewClient creates a GitLab API client. The auth scheme follows the token
// provider's method: OAuth tokens go out as a bearer Authorization header,
// anything else as a PRIVATE-TOKEN header.
func NewClient(baseURL string, tokens driven.TokenProvider) *Client {
	var auth rest.Auth
	if tokens.AuthMethod() == domain.AuthMethodOAuth {
		auth = &rest.BearerAuth{Tokens: tokens}
	} else {
		auth = &rest.HeaderAuth{Header: PATHeader, Tokens: tokens}
	}

	return &Client{
		rest:    rest.NewClient(auth),
		baseURL: baseURL,
	}
}

// Rest returns the underlying REST client. Used by tests to inject a
// custom HTTP client.
func (c *Client) Rest() *rest.Client {
	return c.rest
}

// Get issues one authenticated GET against a path under the API base URL
// and returns the decoded JSON object.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return c.rest.GetJSON(ctx, c.baseURL+path, query)
}

// ListPaginated retrieves the complete record set behind a listing
// endpoint. GitLab listing responses are top-level arrays paged with
// page/per_page; the Link header's rel="next" entry points at the
// following page and disappears on the last one.
func (c *Client) ListPaginated(ctx context.Context, path string, params url.Values) ([]map[string]any, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("per_page", strconv.Itoa(DefaultPageSize))

	var records []map[string]any

	pageURL := c.baseURL + path
	for pageURL != "" {
		batch, header, err := c.rest.GetJSONList(ctx, pageURL, query)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		records = append(records, batch...)

		// The next link already carries the full query string.
		pageURL = rest.ParseNextLink(header.Get("Link"))
		query = nil
	}

	return records, nil
}
