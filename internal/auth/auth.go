// Package auth handles account sessions against the backend auth service:
// login, registration, token storage and client-side expiry checks.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned when an operation needs a session token
// and none is stored, or the stored token has expired.
var ErrNotAuthenticated = errors.New("auth: not authenticated")

// TokenSource provides the current session token. Implementations must be
// safe for concurrent use.
type TokenSource interface {
	// Token returns the stored token, or ErrNotAuthenticated when there is
	// none or it is expired.
	Token() (string, error)
}

// TokenStore holds a session token in memory.
type TokenStore struct {
	mu    sync.RWMutex
	token string
	now   func() time.Time
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{now: time.Now}
}

// Set replaces the stored token. An empty token clears the store.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.Set("")
}

// Token returns the stored token. Expired tokens are rejected locally so
// callers fail fast instead of round-tripping a doomed request.
func (s *TokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	if expired(s.token, s.now()) {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// expired reports whether the token carries an exp claim in the past. Tokens
// that do not parse as JWTs, or carry no exp, are passed through for the
// server to judge.
func expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
