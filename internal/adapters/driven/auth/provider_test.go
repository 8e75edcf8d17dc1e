package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapestry-io/tapestry/internal/adapters/driven/storage/memory"
	"github.com/tapestry-io/tapestry/internal/core/domain"
)

func TestStaticProvider(t *testing.T) {
	store := memory.NewConfigStore()
	provider := NewStaticProvider("src-1", domain.AuthMethodAPIKey, store)

	assert.False(t, provider.IsAuthenticated())
	_, err := provider.GetToken(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAuthRequired))

	require.NoError(t, SaveToken(store, "src-1", "secret"))
	assert.True(t, provider.IsAuthenticated())

	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", token)
	assert.Equal(t, domain.AuthMethodAPIKey, provider.AuthMethod())
}

func TestOAuthProviderUsesStoredAccessToken(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, SaveOAuthTokens(store, "src-1", "live-token", ""))

	provider := NewOAuthProvider("src-1", store)
	assert.True(t, provider.IsAuthenticated())

	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "live-token", token)
}

func TestOAuthProviderRefreshesAndPersists(t *testing.T) {
	var refreshed bool
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshed = true
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "new-access",
			"refresh_token": "new-refresh",
			"token_type":    "bearer",
			"expires_in":    3600,
		}))
	}))
	defer tokenServer.Close()

	store := memory.NewConfigStore()
	require.NoError(t, SaveOAuthClient(store, "src-1", "client", "hush", tokenServer.URL))
	// No access token stored, only a refresh token: first GetToken must
	// hit the token endpoint.
	require.NoError(t, SaveOAuthTokens(store, "src-1", "", "old-refresh"))

	provider := NewOAuthProvider("src-1", store)
	token, err := provider.GetToken(context.Background())
	require.NoError(t, err)

	assert.True(t, refreshed)
	assert.Equal(t, "new-access", token)
	assert.Equal(t, "new-access", store.GetString("credentials.src-1.access_token"))
	assert.Equal(t, "new-refresh", store.GetString("credentials.src-1.refresh_token"))
}

func TestOAuthProviderWithoutCredentials(t *testing.T) {
	provider := NewOAuthProvider("src-1", memory.NewConfigStore())
	assert.False(t, provider.IsAuthenticated())

	_, err := provider.GetToken(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAuthRequired))
}

func TestFactoryForSource(t *testing.T) {
	factory := NewFactory(memory.NewConfigStore())

	provider := factory.ForSource(&domain.Source{ID: "a", AuthMethod: domain.AuthMethodAPIKey})
	assert.IsType(t, &StaticProvider{}, provider)
	assert.Equal(t, domain.AuthMethodAPIKey, provider.AuthMethod())

	provider = factory.ForSource(&domain.Source{ID: "b", AuthMethod: domain.AuthMethodPAT})
	assert.IsType(t, &StaticProvider{}, provider)
	assert.Equal(t, domain.AuthMethodPAT, provider.AuthMethod())

	provider = factory.ForSource(&domain.Source{ID: "c", AuthMethod: domain.AuthMethodOAuth})
	assert.IsType(t, &OAuthProvider{}, provider)

	provider = factory.ForSource(&domain.Source{ID: "d"})
	assert.IsType(t, &NullProvider{}, provider)
}

func TestDeleteCredentials(t *testing.T) {
	store := memory.NewConfigStore()
	require.NoError(t, SaveToken(store, "src-1", "secret"))
	require.NoError(t, SaveOAuthTokens(store, "src-1", "a", "r"))

	require.NoError(t, DeleteCredentials(store, "src-1"))
	assert.Equal(t, "", store.GetString("credentials.src-1.token"))
	assert.Equal(t, "", store.GetString("credentials.src-1.access_token"))
	assert.Equal(t, "", store.GetString("credentials.src-1.refresh_token"))
}
