package golfapi

import (
	"context"
	"errors"
	"time"

	"github.com/harun/clawgolf/internal/golferr"
	"github.com/harun/clawgolf/internal/metrics"
)

// RefreshMargin is the minimum remaining lifetime for a cached token to be reused.
const RefreshMargin = 30 * time.Second

// SessionToken is a short-lived bearer token.
type SessionToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"` // epoch seconds
}

// Remaining returns the token lifetime left at now, in whole seconds.
func (t SessionToken) Remaining(now time.Time) time.Duration {
	return time.Duration(t.ExpiresAt-now.Unix()) * time.Second
}

// FetchFunc obtains a fresh token from the server.
type FetchFunc func(ctx context.Context) (SessionToken, error)

// TokenCache holds at most one token for the life of the process.
type TokenCache struct {
	fetch   FetchFunc
	now     func() time.Time
	metrics *metrics.Metrics
	current *SessionToken
}

// NewTokenCache creates a cache. now defaults to time.Now.
func NewTokenCache(fetch FetchFunc, now func() time.Time, m *metrics.Metrics) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{
		fetch:   fetch,
		now:     now,
		metrics: m,
	}
}

// Token returns the cached token while it has at least RefreshMargin left,
// otherwise it fetches and caches a new one. Failures are never retried.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	if c.current != nil && c.current.Remaining(c.now()) >= RefreshMargin {
		return c.current.Token, nil
	}

	tok, err := c.fetch(ctx)
	if err != nil {
		return "", golferr.Authentication(err)
	}
	if tok.Token == "" {
		return "", golferr.Authentication(errors.New("server returned an empty token"))
	}

	c.current = &tok
	c.metrics.TokenRefreshed()
	return tok.Token, nil
}

// Reset drops the cached token.
func (c *TokenCache) Reset() {
	c.current = nil
}
