package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/crema/pkg/adapters/redis"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunResultCacheContract(t, redis.NewFromClient(client))
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	cache := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "k", &domain.Translation{Warnings: []string{}}))
	keys, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "k")

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	cache := redis.NewFromClient(client)
	require.NoError(t, cache.Put(ctx, "abc", &domain.Translation{}))
	assert.True(t, mr.Exists("crema:result:abc"))
	assert.True(t, mr.Exists("crema:result:index"))

	custom := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	require.NoError(t, custom.Put(ctx, "abc", &domain.Translation{}))
	assert.True(t, mr.Exists("custom:app:abc"))
}
