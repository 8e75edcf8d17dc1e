package rest

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultMaxAttempts is the bounded attempt count for one request.
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the initial backoff delay between attempts.
	DefaultBaseDelay = time.Second

	// DefaultMaxDelay caps a single backoff wait.
	DefaultMaxDelay = 60 * time.Second
)

// RetryPolicy decides whether and how a failed request is retried.
// It is applied uniformly at the single-request boundary: a retried page is
// re-requested as-is, never the whole fetch.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the starting backoff; it doubles per retry.
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff.
	MaxDelay time.Duration

	// Retryable reports whether the failure kind warrants another attempt.
	// Defaults to IsTransient (rate limit or timeout).
	Retryable func(error) bool
}

// DefaultRetryPolicy returns the policy used by all connectors.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Retryable:   IsTransient,
	}
}

// ShouldRetry reports whether another attempt is allowed after err on the
// given zero-based attempt number.
func (p RetryPolicy) ShouldRetry(attempt int, err error) bool {
	if attempt >= p.MaxAttempts-1 {
		return false
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	return retryable(err)
}

// Backoff returns the wait before the next attempt. A server-provided
// retry hint takes precedence over the exponential schedule.
func (p RetryPolicy) Backoff(attempt int, err error) time.Duration {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
		return rateLimitErr.RetryAfter
	}

	delay := p.BaseDelay << attempt
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
