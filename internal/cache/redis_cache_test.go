package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mdsweden/storefront-backend/internal/cache"
	"github.com/mdsweden/storefront-backend/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProduct struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		ProductTTL: 5 * time.Minute,
		DefaultTTL: 10 * time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock, cfg
}

func TestNewRedisCache(t *testing.T) {
	redisCache, _, _ := setup(t)
	assert.NotNil(t, redisCache)
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc-123")
	testValue := cachedProduct{Name: "Oat Milk", Price: 24.50, Stock: 42}

	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).RedisNil()

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetErr(assert.AnError)

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Corrupt Payload", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result cachedProduct

		mock.ExpectGet(testKey).SetVal("{not json")

		// Act
		found, err := redisCache.Get(ctx, testKey, &result)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc-123")
	testValue := cachedProduct{Name: "Oat Milk", Price: 24.50, Stock: 42}

	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(testKey, jsonData, cfg.ProductTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, cfg.ProductTTL)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL Falls Back To Default", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(testKey, jsonData, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, testKey, testValue, 0)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(testKey, jsonData, cfg.ProductTTL).SetErr(assert.AnError)

		// Act
		err := redisCache.Set(ctx, testKey, testValue, cfg.ProductTTL)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.ProductKeyPrefix, "abc-123")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(testKey).SetErr(assert.AnError)

		// Act
		err := redisCache.Delete(ctx, testKey)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
