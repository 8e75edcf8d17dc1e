package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response body is kept for
	// diagnostics.
	maxErrorBody = 512
)

// Client is an authenticated, retrying JSON HTTP client shared by the REST
// connectors. One Client holds one HTTP session per connector run; it is
// not shared across concurrent runs.
type Client struct {
	http    *http.Client
	auth    Auth
	limiter *RateLimiter
	retry   RetryPolicy
}

// NewClient creates a client with the given auth scheme and the default
// retry policy and throttling.
func NewClient(auth Auth) *Client {
	return &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		auth:    auth,
		limiter: NewRateLimiter(),
		retry:   DefaultRetryPolicy(),
	}
}

// WithRetryPolicy overrides the retry policy. Returns the client for
// chaining during construction.
func (c *Client) WithRetryPolicy(p RetryPolicy) *Client {
	c.retry = p
	return c
}

// WithHTTPClient overrides the underlying HTTP client. Useful for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRateLimiter overrides the request throttle. Useful for tests.
func (c *Client) WithRateLimiter(l *RateLimiter) *Client {
	c.limiter = l
	return c
}

// GetJSON issues an authenticated GET and decodes the response body into a
// generic JSON object. Transient failures (429, timeout) are retried per
// the client's policy with backoff honouring any server hint; all other
// HTTP errors surface immediately as *APIError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values) (map[string]any, error) {
	payload, _, err := c.get(ctx, rawURL, query)
	return payload, err
}

// GetJSONList is GetJSON for endpoints whose top-level value is an array
// (GitLab listing endpoints). It also returns the response header so the
// caller can follow Link pagination.
func (c *Client) GetJSONList(ctx context.Context, rawURL string, query url.Values) ([]map[string]any, http.Header, error) {
	body, header, err := c.getBody(ctx, rawURL, query)
	if err != nil {
		return nil, nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, nil, fmt.Errorf("decode response: %w", err)
	}
	return records, header, nil
}

// Head issues an authenticated GET and discards the body, returning only
// the status outcome. Used by validators.
func (c *Client) Head(ctx context.Context, rawURL string) error {
	_, _, err := c.getBody(ctx, rawURL, nil)
	return err
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) (map[string]any, http.Header, error) {
	body, header, err := c.getBody(ctx, rawURL, query)
	if err != nil {
		return nil, nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode response: %w", err)
	}
	return payload, header, nil
}

// getBody runs the retry loop around a single request.
func (c *Client) getBody(ctx context.Context, rawURL string, query url.Values) ([]byte, http.Header, error) {
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.retry.Backoff(attempt-1, lastErr)); err != nil {
				return nil, nil, err
			}
		}

		body, header, err := c.doOnce(ctx, rawURL, query)
		if err == nil {
			return body, header, nil
		}
		lastErr = err

		if !c.retry.ShouldRetry(attempt, err) {
			return nil, nil, err
		}
	}

	return nil, nil, lastErr
}

// doOnce performs exactly one HTTP round trip.
func (c *Client) doOnce(ctx context.Context, rawURL string, query url.Values) ([]byte, http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	u := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		u = rawURL + sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.auth != nil {
		if err := c.auth.Apply(ctx, req); err != nil {
			return nil, nil, err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, nil, &RateLimitError{
			RetryAfter: RetryHint(resp),
			URL:        u,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(snippet)),
			URL:        u,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return body, resp.Header, nil
}
