package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewFileStore(filepath.Join(t.TempDir(), "session", "token"))

	_, err := s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, s.Set("tok-disk"))
	got, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-disk", got)

	require.NoError(t, s.Clear())
	_, err = s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestFileStoreClearMissingFile(t *testing.T) {
	t.Parallel()

	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, s.Clear())
}

func TestFileStoreRejectsExpiredJWT(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewFileStore(filepath.Join(t.TempDir(), "token"))
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(unsignedJWT(t, map[string]any{"sub": "u1", "exp": now.Add(-time.Minute).Unix()})))
	_, err := s.Token()
	require.ErrorIs(t, err, ErrNotAuthenticated)
}
