package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// staticToken is a fixed-token provider for auth tests.
type staticToken string

func (s staticToken) GetToken(context.Context) (string, error) { return string(s), nil }
func (s staticToken) AuthMethod() domain.AuthMethod            { return domain.AuthMethodAPIKey }
func (s staticToken) IsAuthenticated() bool                    { return s != "" }

func newTestClient(auth Auth) *Client {
	return NewClient(auth).
		WithRateLimiter(NewRateLimiterWithRate(0)).
		WithRetryPolicy(RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   time.Millisecond,
			MaxDelay:    5 * time.Millisecond,
		})
}

func TestGetJSONDecodesObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"total_count": 3, "projects": []}`))
	}))
	defer server.Close()

	client := newTestClient(nil)
	payload, err := client.GetJSON(context.Background(), server.URL+"/projects.json",
		map[string][]string{"limit": {"100"}})
	require.NoError(t, err)

	total, ok := Int(payload, "total_count")
	assert.True(t, ok)
	assert.Equal(t, 3, total)
}

func TestGetJSONListReturnsHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Link", `<https://example.com/page2>; rel="next"`)
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer server.Close()

	client := newTestClient(nil)
	records, header, err := client.GetJSONList(context.Background(), server.URL+"/projects", nil)
	require.NoError(t, err)

	assert.Len(t, records, 2)
	assert.Equal(t, "https://example.com/page2", ParseNextLink(header.Get("Link")))
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(nil)
	payload, err := client.GetJSON(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	ok, _ := Bool(payload, "ok")
	assert.True(t, ok)
}

func TestRateLimitExhaustsAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(nil)
	_, err := client.GetJSON(context.Background(), server.URL, nil)
	require.Error(t, err)

	assert.True(t, IsRateLimited(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "broken pipe in the basement", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(nil)
	_, err := client.GetJSON(context.Background(), server.URL+"/projects.json", nil)
	require.Error(t, err)

	assert.Equal(t, int32(1), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "broken pipe")
	assert.Contains(t, apiErr.URL, "/projects.json")
}

func TestErrorClassifiers(t *testing.T) {
	notFound := &APIError{StatusCode: 404}
	forbidden := &APIError{StatusCode: 403}
	unauthorized := &APIError{StatusCode: 401}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(forbidden))
	assert.True(t, IsUnauthorized(forbidden))
	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(notFound))
	assert.True(t, IsTransient(&RateLimitError{}))
	assert.False(t, IsTransient(notFound))
}

func TestHeadAuthApplied(t *testing.T) {
	var seen atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("X-Redmine-API-Key"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(&HeaderAuth{Header: "X-Redmine-API-Key", Tokens: staticToken("secret")})
	require.NoError(t, client.Head(context.Background(), server.URL+"/users/current.json"))
	assert.Equal(t, "secret", seen.Load())
}
