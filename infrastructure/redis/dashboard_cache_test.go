package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmaster/pkg/config"
)

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "taskmaster:dashboard:0:stats:u1", entryKey(0, "stats:u1"))
	assert.Equal(t, "taskmaster:dashboard:42:overview:u1", entryKey(42, "overview:u1"))
}

// Runs only against a real server: TASKMASTER_TEST_REDIS_URL=redis://localhost:6379/15
func TestDashboardCacheInvalidate(t *testing.T) {
	url := os.Getenv("TASKMASTER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TASKMASTER_TEST_REDIS_URL not set")
	}

	client, err := NewClient(&config.RedisConfig{URL: url})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	cache := NewDashboardCache(client)

	type payload struct{ Total int }
	var got payload

	gen, hit, err := cache.Get(ctx, "stats:test", &got)
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, cache.Set(ctx, gen, "stats:test", payload{Total: 3}, time.Minute))

	_, hit, err = cache.Get(ctx, "stats:test", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, got.Total)

	require.NoError(t, cache.Invalidate(ctx))

	_, hit, err = cache.Get(ctx, "stats:test", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDashboardCacheIgnoresValuesFromAnOlderGeneration(t *testing.T) {
	url := os.Getenv("TASKMASTER_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TASKMASTER_TEST_REDIS_URL not set")
	}

	client, err := NewClient(&config.RedisConfig{URL: url})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	cache := NewDashboardCache(client)

	type payload struct{ Total int }
	var got payload

	readGen, _, err := cache.Get(ctx, "stats:race", &got)
	require.NoError(t, err)

	// a write lands while the value is being computed
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, readGen, "stats:race", payload{Total: 1}, time.Minute))

	_, hit, err := cache.Get(ctx, "stats:race", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
