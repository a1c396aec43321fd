package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentCache_RoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	cache := NewContentCache(client, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "site")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "site", []byte(`{"menu":[]}`)))

	data, ok := cache.Get(ctx, "site")
	require.True(t, ok)
	assert.JSONEq(t, `{"menu":[]}`, string(data))

	require.NoError(t, cache.Invalidate(ctx, "site", "missing"))

	_, ok = cache.Get(ctx, "site")
	assert.False(t, ok)
}

func TestContentCache_TTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	// Smallest sensible TTL for the test; zero would default to a minute.
	cache := NewContentCache(client, 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "site", []byte(`{}`)))
	time.Sleep(200 * time.Millisecond)

	_, ok := cache.Get(ctx, "site")
	assert.False(t, ok)
}

func TestContentCache_EmptyKey(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	cache := NewContentCache(client, time.Minute)
	assert.Error(t, cache.Set(context.Background(), "", []byte(`{}`)))
	assert.NoError(t, cache.Invalidate(context.Background()))
}
