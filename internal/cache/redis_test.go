package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(mr.Addr())
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	in := map[uint]string{1: "Science", 2: "Art"}
	require.NoError(t, c.Set(ctx, "trivia:categories", in, time.Minute))

	var out map[uint]string
	require.NoError(t, c.Get(ctx, "trivia:categories", &out))
	assert.Equal(t, in, out)

	mr.FastForward(2 * time.Minute)
	err := c.Get(ctx, "trivia:categories", &out)
	assert.True(t, errors.Is(err, redis.Nil))
}

func TestRedisCache_Flashes(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	empty, err := c.PopFlashes(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, c.PushFlash(ctx, "s1", "Venue The Musical Hop was successfully listed!"))
	require.NoError(t, c.PushFlash(ctx, "s1", "second"))
	require.NoError(t, c.PushFlash(ctx, "s2", "other session"))
	assert.True(t, mr.Exists(MakeFlashKey("s1")))
	assert.Equal(t, FlashTTL, mr.TTL(MakeFlashKey("s1")))

	messages, err := c.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Venue The Musical Hop was successfully listed!", "second"}, messages)

	// shown once only
	messages, err = c.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, messages)

	messages, err = c.PopFlashes(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, []string{"other session"}, messages)
}

func TestRedisCache_FlashExpires(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.PushFlash(ctx, "s1", "stale"))
	mr.FastForward(FlashTTL + time.Second)

	messages, err := c.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
