// Package storage talks to Dropbox: OAuth token refresh, file upload,
// shared-link creation, and best-effort deletion.
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTokenURL is Dropbox's OAuth2 token endpoint.
// Note the host: api.dropbox.com, not api.dropboxapi.com.
const DefaultTokenURL = "https://api.dropbox.com/oauth2/token"

// refreshLeeway is how much remaining lifetime a cached token needs before
// we reuse it. Refreshing 5 minutes early means an upload never starts with
// a token that expires mid-call.
const refreshLeeway = 5 * time.Minute

// TokenCache memoizes the short-lived Dropbox access token for the life of
// the process, refreshing it from the long-lived refresh credential when it
// is absent or within refreshLeeway of expiry.
//
// The exchange itself goes through oauth2.Config: a POST to the token
// endpoint with grant_type=refresh_token, authenticated with the app
// key/secret as HTTP basic auth (AuthStyleInHeader). oauth2 fills in the
// token's absolute Expiry from the expires_in the provider returns.
//
// CONCURRENCY:
// All requests in the process share one TokenCache. The mutex is held
// across the refresh call, so when several requests observe an expired
// token at once, exactly one performs the exchange and the rest reuse its
// result. A failed refresh fails only the calling operation — the previous
// cache entry, stale or not, is left in place.
type TokenCache struct {
	mu           sync.Mutex
	conf         *oauth2.Config
	refreshToken string
	tok          *oauth2.Token
	now          func() time.Time // injectable for tests
}

// NewTokenCache creates a token cache for the given app credentials.
// tokenURL is usually DefaultTokenURL; tests point it at a local server.
func NewTokenCache(appKey, appSecret, refreshToken, tokenURL string) *TokenCache {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &TokenCache{
		conf: &oauth2.Config{
			ClientID:     appKey,
			ClientSecret: appSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader, // basic auth with key:secret
			},
		},
		refreshToken: refreshToken,
		now:          time.Now,
	}
}

// AccessToken returns a valid access token, refreshing first if the cached
// one is absent or expires within the next 5 minutes.
func (c *TokenCache) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tok != nil && c.tok.Expiry.After(c.now().Add(refreshLeeway)) {
		return c.tok.AccessToken, nil
	}

	// A fresh TokenSource each time: oauth2's own reuse wrapper would
	// otherwise hold the previous token past our 5-minute cutoff.
	tok, err := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken}).Token()
	if err != nil {
		return "", fmt.Errorf("storage: refreshing Dropbox access token: %w", err)
	}

	c.tok = tok
	return tok.AccessToken, nil
}
