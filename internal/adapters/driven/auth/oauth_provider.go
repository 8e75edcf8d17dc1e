package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Ensure OAuthProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*OAuthProvider)(nil)

// OAuthProvider provides OAuth access tokens with automatic refresh. The
// stored token pair seeds an oauth2 token source; when the source mints a
// fresh access token it is written back to the config store so the next
// process starts from the newest pair.
type OAuthProvider struct {
	sourceID string
	store    driven.ConfigStore

	mu     sync.Mutex
	tokens oauth2.TokenSource
	last   *oauth2.Token
}

// NewOAuthProvider creates a token provider for an OAuth-authenticated
// source.
func NewOAuthProvider(sourceID string, store driven.ConfigStore) *OAuthProvider {
	return &OAuthProvider{
		sourceID: sourceID,
		store:    store,
	}
}

// GetToken returns a valid access token, refreshing through the token
// endpoint when the stored one has expired.
func (p *OAuthProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tokens == nil {
		source, seed, err := p.buildTokenSource(ctx)
		if err != nil {
			return "", err
		}
		p.tokens = source
		p.last = seed
	}

	token, err := p.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("oauth token: %w", err)
	}

	if p.last == nil || token.AccessToken != p.last.AccessToken {
		refresh := token.RefreshToken
		if refresh == "" && p.last != nil {
			refresh = p.last.RefreshToken
		}
		if err := SaveOAuthTokens(p.store, p.sourceID, token.AccessToken, refresh); err != nil {
			return "", fmt.Errorf("persist refreshed tokens: %w", err)
		}
		p.last = token
	}

	return token.AccessToken, nil
}

// buildTokenSource assembles the oauth2 machinery from the stored client
// settings and token pair. Caller must hold the lock.
func (p *OAuthProvider) buildTokenSource(ctx context.Context) (oauth2.TokenSource, *oauth2.Token, error) {
	accessToken := p.store.GetString(credentialKey(p.sourceID, "access_token"))
	refreshToken := p.store.GetString(credentialKey(p.sourceID, "refresh_token"))
	if accessToken == "" && refreshToken == "" {
		return nil, nil, domain.ErrAuthRequired
	}

	cfg := &oauth2.Config{
		ClientID:     p.store.GetString(credentialKey(p.sourceID, "client_id")),
		ClientSecret: p.store.GetString(credentialKey(p.sourceID, "client_secret")),
		Endpoint: oauth2.Endpoint{
			TokenURL: p.store.GetString(credentialKey(p.sourceID, "token_url")),
		},
	}

	seed := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if refreshToken != "" && cfg.Endpoint.TokenURL == "" {
		return nil, nil, fmt.Errorf("source %s: refresh token stored without a token_url", p.sourceID)
	}

	return cfg.TokenSource(ctx, seed), seed, nil
}

// AuthMethod returns AuthMethodOAuth.
func (p *OAuthProvider) AuthMethod() domain.AuthMethod {
	return domain.AuthMethodOAuth
}

// IsAuthenticated returns true if a token pair is stored.
func (p *OAuthProvider) IsAuthenticated() bool {
	return p.store.GetString(credentialKey(p.sourceID, "access_token")) != "" ||
		p.store.GetString(credentialKey(p.sourceID, "refresh_token")) != ""
}
