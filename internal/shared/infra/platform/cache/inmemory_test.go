package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedPlace struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	key := Key("place", "abc")
	require.NoError(t, c.Set(ctx, key, cachedPlace{ID: "abc", Title: "Plaza Mayor"}, 0))

	var got cachedPlace
	hit, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Plaza Mayor", got.Title)

	require.NoError(t, c.Delete(ctx, key))
	hit, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_NonPositiveDurations(t *testing.T) {
	require.NotPanics(t, func() {
		c := NewInMemoryCache(0, -time.Second)
		defer c.Stop()

		require.NoError(t, c.Set(context.Background(), "k", "v", 0))
		var got string
		hit, err := c.Get(context.Background(), "k", &got)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, fallbackTTL, c.defaultTTL)
	})
}

func TestAsyncCacheSetAndDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Hour)
	defer c.Stop()
	log := zap.NewNop()

	AsyncCacheSet(c, "user:1", "ana", 0, log)
	assert.Eventually(t, func() bool {
		var v string
		hit, _ := c.Get(context.Background(), "user:1", &v)
		return hit && v == "ana"
	}, time.Second, 5*time.Millisecond)

	AsyncCacheDelete(c, "user:1", log)
	assert.Eventually(t, func() bool {
		var v string
		hit, _ := c.Get(context.Background(), "user:1", &v)
		return !hit
	}, time.Second, 5*time.Millisecond)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "place:42", Key("place", "42"))
}
