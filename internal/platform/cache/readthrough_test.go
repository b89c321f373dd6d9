package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *miniredis.Miniredis
	client *redis.Client
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return fixture{server: server, client: client}
}

func TestGetLoadsOnceAndCaches(t *testing.T) {
	f := newFixture(t)

	calls := 0
	rt := NewReadThrough(f.client, "test:list", time.Minute, func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	})

	for i := 0; i < 3; i++ {
		value, err := rt.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, value)
	}
	require.Equal(t, 1, calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	f := newFixture(t)

	calls := 0
	rt := NewReadThrough(f.client, "test:list", time.Minute, func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})

	first, err := rt.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first)

	require.NoError(t, rt.Invalidate(context.Background()))

	second, err := rt.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, second)
}

func TestExpiredEntryReloads(t *testing.T) {
	f := newFixture(t)

	calls := 0
	rt := NewReadThrough(f.client, "test:list", time.Second, func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	})

	_, err := rt.Get(context.Background())
	require.NoError(t, err)

	f.server.FastForward(2 * time.Second)

	_, err = rt.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestCorruptEntryFallsBackToLoader(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.server.Set("test:list", "{not json"))

	rt := NewReadThrough(f.client, "test:list", time.Minute, func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})

	value, err := rt.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, value)
}

func TestNilClientCallsLoaderEveryTime(t *testing.T) {
	calls := 0
	rt := NewReadThrough(nil, "test:list", time.Minute, func(ctx context.Context) (string, error) {
		calls++
		return "direct", nil
	})

	for i := 0; i < 2; i++ {
		value, err := rt.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, "direct", value)
	}
	require.Equal(t, 2, calls)
	require.NoError(t, rt.Invalidate(context.Background()))
}

func TestLoaderErrorPropagates(t *testing.T) {
	f := newFixture(t)

	boom := errors.New("load failed")
	rt := NewReadThrough(f.client, "test:list", time.Minute, func(ctx context.Context) (string, error) {
		return "", boom
	})

	_, err := rt.Get(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, f.server.Exists("test:list"))
}
