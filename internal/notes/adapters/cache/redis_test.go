package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notes/adapters/cache"
	cachePorts "quicknote/internal/notes/ports/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, cachePorts.Cache) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	return s, cache.NewRedisCache(client, ttl)
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	s, c := newTestCache(t, 15*time.Minute)

	_, err := c.Get(ctx, "notes_all")
	assert.ErrorIs(t, err, cachePorts.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "notes_all", `[]`, 0))

	value, err := c.Get(ctx, "notes_all")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
	assert.Equal(t, 15*time.Minute, s.TTL("notes_all"))
}

func TestRedisCache_ExplicitTTL(t *testing.T) {
	ctx := context.Background()
	s, c := newTestCache(t, 15*time.Minute)

	require.NoError(t, c.Set(ctx, "note_1", `{}`, time.Minute))
	assert.Equal(t, time.Minute, s.TTL("note_1"))

	s.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "note_1")
	assert.ErrorIs(t, err, cachePorts.ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	s, c := newTestCache(t, time.Minute)

	require.NoError(t, c.Set(ctx, "notes_all", "a", 0))
	require.NoError(t, c.Set(ctx, "note_1", "b", 0))
	require.NoError(t, c.Set(ctx, "note_2", "c", 0))

	require.NoError(t, c.Delete(ctx, "notes_all", "note_1"))
	require.NoError(t, c.Delete(ctx))

	assert.False(t, s.Exists("notes_all"))
	assert.False(t, s.Exists("note_1"))
	assert.True(t, s.Exists("note_2"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, c := newTestCache(t, time.Minute)
	s.Close()

	_, err := c.Get(ctx, "notes_all")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cachePorts.ErrCacheMiss)

	assert.Error(t, c.Set(ctx, "notes_all", "x", 0))
	assert.Error(t, c.Delete(ctx, "notes_all"))
	assert.Error(t, c.Ping(ctx))
}

func TestRedisCache_PingClose(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t, time.Minute)

	require.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
