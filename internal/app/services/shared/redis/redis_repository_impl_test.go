package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisRepository) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, &redisRepository{client: client}
}

func TestRedisRepository_SetGetDelete(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "neonatalProfile:s-1", map[string]string{"Sexo": "F"}, time.Minute))

	value, err := repo.Get(ctx, "neonatalProfile:s-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Sexo":"F"}`, value)
	assert.Equal(t, time.Minute, mr.TTL("neonatalProfile:s-1"))

	require.NoError(t, repo.Delete(ctx, "neonatalProfile:s-1"))
	value, err = repo.Get(ctx, "neonatalProfile:s-1")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestRedisRepository_TrySetNX(t *testing.T) {
	_, repo := setupTestRedis(t)
	ctx := context.Background()

	acquired, err := repo.TrySetNX(ctx, "lock:wizard:s-1", "owner-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TrySetNX(ctx, "lock:wizard:s-1", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	value, err := repo.Get(ctx, "lock:wizard:s-1")
	require.NoError(t, err)
	assert.Equal(t, `"owner-a"`, value)
}

func TestRedisRepository_IncrementWithTTL(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		count, err := repo.IncrementWithTTL(ctx, "quota:SUBMIT:s-1:1", 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
	assert.Equal(t, 30*time.Second, mr.TTL("quota:SUBMIT:s-1:1"))
}

func TestRedisRepository_Expire(t *testing.T) {
	mr, repo := setupTestRedis(t)
	ctx := context.Background()

	updated, err := repo.Expire(ctx, "missing", time.Minute)
	require.NoError(t, err)
	assert.False(t, updated)

	require.NoError(t, repo.Set(ctx, "wizard:s-1", "{}", time.Minute))
	updated, err = repo.Expire(ctx, "wizard:s-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, time.Hour, mr.TTL("wizard:s-1"))
}

func TestRedisRepository_Ping(t *testing.T) {
	mr, repo := setupTestRedis(t)

	assert.NoError(t, repo.Ping(context.Background()))

	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
