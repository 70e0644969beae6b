package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard/internal/notes/adapters/cache"
	"noteboard/internal/notes/config"
	cachePorts "noteboard/internal/notes/ports/cache"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newTestCache(t *testing.T, s *miniredis.Miniredis) cachePorts.Cache {
	t.Helper()

	host, portStr, ok := strings.Cut(s.Addr(), ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		DefaultTTL:     15 * time.Minute,
	}

	redisCache, err := cache.NewRedisCache(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, redisCache.Close())
	})

	return redisCache
}

func TestNewRedisCache_ConnectionError(t *testing.T) {
	cfg := &config.RedisConfig{
		Host:           "localhost",
		Port:           1, // Порт, на котором никто не слушает.
		ConnectTimeout: 100 * time.Millisecond,
	}

	_, err := cache.NewRedisCache(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetAndGet(t *testing.T) {
	s := mockRedisServer(t)
	redisCache := newTestCache(t, s)
	ctx := context.Background()

	err := redisCache.Set(ctx, "username:user-1", "alice", time.Minute)
	require.NoError(t, err)

	value, err := redisCache.Get(ctx, "username:user-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", value)
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	s := mockRedisServer(t)
	redisCache := newTestCache(t, s)

	value, err := redisCache.Get(context.Background(), "username:absent")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_SetUsesDefaultTTL(t *testing.T) {
	s := mockRedisServer(t)
	redisCache := newTestCache(t, s)

	err := redisCache.Set(context.Background(), "username:user-2", "bob", 0)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, s.TTL("username:user-2"))
}

func TestRedisCache_Delete(t *testing.T) {
	s := mockRedisServer(t)
	redisCache := newTestCache(t, s)
	ctx := context.Background()

	require.NoError(t, redisCache.Set(ctx, "username:user-3", "carol", time.Minute))
	require.NoError(t, redisCache.Delete(ctx, "username:user-3"))

	value, err := redisCache.Get(ctx, "username:user-3")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_GetAfterExpiry(t *testing.T) {
	s := mockRedisServer(t)
	redisCache := newTestCache(t, s)
	ctx := context.Background()

	require.NoError(t, redisCache.Set(ctx, "username:user-4", "dave", time.Second))
	s.FastForward(2 * time.Second)

	value, err := redisCache.Get(ctx, "username:user-4")
	require.NoError(t, err)
	assert.Empty(t, value)
}
