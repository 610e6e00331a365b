package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"lan_relay/pkg/logger"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimitRepository_LimitReached(t *testing.T) {
	_, rdb := newTestRedis(t)
	repo := NewRateLimitRepository(rdb, logger.NewNop())
	ctx := context.Background()

	allowed, err := repo.CheckLimit(ctx, "10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)

	count, err := repo.Increment(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	count, err = repo.Increment(ctx, "10.0.0.2", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	allowed, err = repo.CheckLimit(ctx, "10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = repo.CheckLimit(ctx, "10.0.0.3", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRateLimitRepository_WindowExpires(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewRateLimitRepository(rdb, logger.NewNop())
	ctx := context.Background()

	_, err := repo.Increment(ctx, "peer", time.Minute)
	require.NoError(t, err)

	allowed, err := repo.CheckLimit(ctx, "peer", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, err = repo.CheckLimit(ctx, "peer", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestRateLimitRepository_RedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	repo := NewRateLimitRepository(rdb, logger.NewNop())
	mr.Close()

	_, err := repo.CheckLimit(context.Background(), "peer", 1, time.Minute)
	require.Error(t, err)
}
