package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketbay/storefront/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	view := &domain.CartView{
		Items:      map[string]int{"FEED-SKU-001": 2, "FEED-SKU-002": 3},
		TotalItems: 5,
		UpdatedAt:  time.Now().UTC(),
	}

	// Manually set data in miniredis
	viewJSON, _ := json.Marshal(view)
	mr.Set(cacheKey(userID), string(viewJSON))

	result, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalItems)
	assert.Equal(t, 2, result.Items["FEED-SKU-001"])
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	userID := "user123"
	require.NoError(t, mr.Set(cacheKey(userID), `{"items":{`))

	_, err := cache.Get(context.Background(), userID)
	require.ErrorContains(t, err, "unmarshal cart view failed")
}

func TestSet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user456"

	view := &domain.CartView{
		Items:      map[string]int{"FEED-SKU-010": 5},
		TotalItems: 5,
		UpdatedAt:  time.Now().UTC(),
	}

	err := cache.Set(ctx, userID, view)
	require.NoError(t, err)

	// Verify data was stored correctly in miniredis
	stored, err := mr.Get(cacheKey(userID))
	require.NoError(t, err)
	assert.NotEmpty(t, stored)

	var storedView domain.CartView
	require.NoError(t, json.Unmarshal([]byte(stored), &storedView))
	assert.Equal(t, view.Items, storedView.Items)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	view := &domain.CartView{Items: map[string]int{}}
	err := cache.Set(context.Background(), "user789", view)
	require.NoError(t, err)

	// Check that TTL was set (miniredis tracks TTL)
	ttl := mr.TTL(cacheKey("user789"))
	assert.True(t, ttl >= 15*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl < 20*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	userID := "user999"
	mr.Set(cacheKey(userID), `{"items":{}}`)
	assert.True(t, mr.Exists(cacheKey(userID)))

	err := cache.Delete(context.Background(), userID)
	require.NoError(t, err)

	assert.False(t, mr.Exists(cacheKey(userID)))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	// Deleting non-existent key should not error
	err := cache.Delete(context.Background(), "nonexistent")
	assert.NoError(t, err)
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "cart:test123", cacheKey("test123"))
}
