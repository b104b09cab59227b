package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "storefront"), mr
}

func TestRedisStore_Get_Missing(t *testing.T) {
	store, _ := setupTestRedis(t)

	v, err := store.Get(context.Background(), "boof-cart")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, v)
}

func TestRedisStore_Set_UsesNamespaceAndNoExpiry(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "boof-cart", []byte(`[{"key":"soho-vel-soft"}]`)))

	raw, err := mr.Get("storefront:boof-cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"key":"soho-vel-soft"}]`, raw)
	assert.Zero(t, mr.TTL("storefront:boof-cart"))

	v, err := store.Get(ctx, "boof-cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"soho-vel-soft"}]`, string(v))
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Get(context.Background(), "boof-cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "redis get failed")
}
