package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/opensource-sharing/internal/storage"
)

func setupTestRedis(t *testing.T, prefix string) (*Storage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	s, err := New(context.Background(), "redis://"+mr.Addr(), prefix)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, mr
}

func TestStorage_SetGetRemove(t *testing.T) {
	s, mr := setupTestRedis(t, "")
	ctx := context.Background()

	_, err := s.Get(ctx, "local:auth")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "local:auth", `{"token":"x"}`))
	v, err := s.Get(ctx, "local:auth")
	require.NoError(t, err)
	require.Equal(t, `{"token":"x"}`, v)

	// Ключ лежит под префиксом по умолчанию.
	raw, err := mr.Get("ossclient:local:auth")
	require.NoError(t, err)
	require.Equal(t, `{"token":"x"}`, raw)

	require.NoError(t, s.Remove(ctx, "local:auth"))
	require.False(t, mr.Exists("ossclient:local:auth"))
}

func TestStorage_CustomPrefix(t *testing.T) {
	s, mr := setupTestRedis(t, "test:")

	require.NoError(t, s.Set(context.Background(), "session:tags", "[]"))
	require.True(t, mr.Exists("test:session:tags"))
}

func TestNew_FailFast(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), "redis://"+addr, "")
	require.Error(t, err)

	_, err = New(context.Background(), "not-a-url", "")
	require.Error(t, err)
}
