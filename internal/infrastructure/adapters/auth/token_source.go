package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc exchanges a refresh credential for a fresh access token and
// its lifetime in seconds.
type RefreshFunc func(ctx context.Context) (accessToken string, expiresIn int, err error)

// expirySlack refreshes slightly early so a token never expires mid-request.
const expirySlack = 60 * time.Second

// TokenSource caches a platform access token and serializes refreshes.
// Concurrent calls that find the token expired coordinate through
// singleflight so exactly one refresh request is issued and every waiter
// reuses its result.
type TokenSource struct {
	refresh RefreshFunc

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// NewTokenSource creates a token source around a refresh function.
func NewTokenSource(refresh RefreshFunc) *TokenSource {
	return &TokenSource{refresh: refresh}
}

// Token returns a valid access token, refreshing if the cached one has
// expired or is about to.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	if ts.token != "" && time.Until(ts.expiresAt) > expirySlack {
		token := ts.token
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()

	v, err, _ := ts.group.Do("refresh", func() (interface{}, error) {
		// Another waiter may have completed the refresh first.
		ts.mu.Lock()
		if ts.token != "" && time.Until(ts.expiresAt) > expirySlack {
			token := ts.token
			ts.mu.Unlock()
			return token, nil
		}
		ts.mu.Unlock()

		token, expiresIn, err := ts.refresh(ctx)
		if err != nil {
			return "", err
		}

		ts.mu.Lock()
		ts.token = token
		ts.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
		ts.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate discards the cached token, forcing the next Token call to
// refresh. Called when the platform rejects a token that looked valid.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = ""
	ts.expiresAt = time.Time{}
	ts.mu.Unlock()
}
