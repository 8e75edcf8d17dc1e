package auth

import (
	"fmt"

	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Credential material lives in the config store under a per-source key
// prefix, separate from the source definition itself.

func credentialKey(sourceID, field string) string {
	return fmt.Sprintf("credentials.%s.%s", sourceID, field)
}

// SaveToken stores a static credential (API key or PAT) for a source.
func SaveToken(store driven.ConfigStore, sourceID, token string) error {
	return store.Set(credentialKey(sourceID, "token"), token)
}

// SaveOAuthClient stores the OAuth client settings for a source. The
// refresh flow needs all three to mint new access tokens.
func SaveOAuthClient(store driven.ConfigStore, sourceID, clientID, clientSecret, tokenURL string) error {
	if err := store.Set(credentialKey(sourceID, "client_id"), clientID); err != nil {
		return err
	}
	if err := store.Set(credentialKey(sourceID, "client_secret"), clientSecret); err != nil {
		return err
	}
	return store.Set(credentialKey(sourceID, "token_url"), tokenURL)
}

// SaveOAuthTokens stores the current OAuth token pair for a source.
func SaveOAuthTokens(store driven.ConfigStore, sourceID, accessToken, refreshToken string) error {
	if err := store.Set(credentialKey(sourceID, "access_token"), accessToken); err != nil {
		return err
	}
	return store.Set(credentialKey(sourceID, "refresh_token"), refreshToken)
}

// DeleteCredentials removes every stored credential field for a source.
// Used when the source itself is removed.
func DeleteCredentials(store driven.ConfigStore, sourceID string) error {
	fields := []string{"token", "client_id", "client_secret", "token_url", "access_token", "refresh_token"}
	for _, field := range fields {
		if err := store.Delete(credentialKey(sourceID, field)); err != nil {
			return err
		}
	}
	return nil
}
