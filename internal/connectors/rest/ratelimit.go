package rest

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the proactive throttle rate in requests per second.
	// Self-hosted trackers rarely publish hard quotas, so the client stays
	// polite by default and reacts to server headers beyond that.
	ProactiveRate = 5.0

	// HeaderRateRemaining is the remaining-requests header (both the
	// X-prefixed and the IETF draft spellings are recognised).
	HeaderRateRemaining = "RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter combines proactive throttling with reactive header tracking.
// A token bucket paces outgoing requests; remaining/reset headers from the
// server defer the next request when the quota is nearly exhausted.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	hasQuota  bool
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(ProactiveRate)
}

// NewRateLimiterWithRate creates a rate limiter pacing at the given
// requests per second. Zero or negative disables proactive pacing while
// keeping the reactive header tracking.
func NewRateLimiterWithRate(rps float64) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until it is safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	exhausted := r.hasQuota && r.remaining == 0
	resetTime := r.resetTime
	r.mu.Unlock()

	if exhausted && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headerValue(resp, HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
			r.hasQuota = true
		}
	}

	if reset := headerValue(resp, HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// RetryHint extracts the server's retry hint from a rate-limited response.
// Returns zero when the server provided none.
func RetryHint(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	if reset := headerValue(resp, HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if d := time.Until(time.Unix(val, 0)); d > 0 {
				return d
			}
		}
	}
	return 0
}

// Remaining returns the last remaining-requests count reported by the
// server, and whether one has been seen at all.
func (r *RateLimiter) Remaining() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.hasQuota
}

// headerValue reads a header under both its plain and X-prefixed names.
func headerValue(resp *http.Response, name string) string {
	if v := resp.Header.Get(name); v != "" {
		return v
	}
	return resp.Header.Get("X-" + name)
}
