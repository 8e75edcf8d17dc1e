package rest

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// APIError represents a non-2xx response from a source API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// RateLimitError represents a rate-limited request (HTTP 429, or 403 with an
// exhausted quota). RetryAfter carries the server's hint when present.
type RateLimitError struct {
	RetryAfter time.Duration
	ResetAt    time.Time
	URL        string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %s (URL: %s)", e.RetryAfter, e.URL)
	}
	return fmt.Sprintf("rate limit exceeded (URL: %s)", e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsTimeout checks if the error is a request timeout.
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsTransient reports whether the error is expected to resolve with retry:
// a rate limit or a timeout. Everything else is fatal for the request.
func IsTransient(err error) bool {
	return IsRateLimited(err) || IsTimeout(err)
}
