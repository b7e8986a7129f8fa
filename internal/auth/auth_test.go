package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrohunt/retro-hunter/pkg/logger"
)

// unsignedJWT builds a syntactically valid JWT with the given claims. The
// signature is garbage, which is fine for unverified parsing.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.%s",
		enc.EncodeToString(header), enc.EncodeToString(payload), enc.EncodeToString([]byte("sig")))
}

func TestTokenStoreEmpty(t *testing.T) {
	t.Parallel()

	s := NewTokenStore()
	_, err := s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewTokenStore()
	s.Set("opaque-token")

	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", got)

	s.Clear()
	_, err = s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestTokenStoreRejectsExpiredJWT(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewTokenStore()
	s.now = func() time.Time { return now }

	s.Set(unsignedJWT(t, map[string]any{"sub": "u1", "exp": now.Add(-time.Hour).Unix()}))
	_, err := s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)

	s.Set(unsignedJWT(t, map[string]any{"sub": "u1", "exp": now.Add(time.Hour).Unix()}))
	_, err = s.Token()
	require.NoError(t, err)
}

func TestTokenStoreKeepsJWTWithoutExp(t *testing.T) {
	t.Parallel()

	s := NewTokenStore()
	s.Set(unsignedJWT(t, map[string]any{"sub": "u1"}))
	_, err := s.Token()
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana@example.com", creds["email"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ana","email":"ana@example.com"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	session, err := c.Login(context.Background(), "ana@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "u1", session.User.ID, "_id alias is accepted")
	assert.Equal(t, "Ana", session.User.Name)
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	_, err := c.Login(context.Background(), "ana@example.com", "wrong")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"tok-2","user":{"id":"u2","name":"Bo","email":"bo@example.com"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	session, err := c.Register(context.Background(), "Bo", "bo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", session.Token)
	assert.Equal(t, "u2", session.User.ID)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1","email":"ana@example.com"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	user, err := c.Verify(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestVerifyRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	_, err := c.Verify(context.Background(), "stale")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.URL, WithLogger(logger.Nop()))
	require.NoError(t, c.Logout(context.Background(), "tok-1"))
}
