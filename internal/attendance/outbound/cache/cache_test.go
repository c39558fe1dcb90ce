package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestCache_Stats(t *testing.T) {
	client := newRedis(t)
	c := NewCache(client, instrument.NewNoop())
	ctx := context.Background()

	_, err := c.GetStats(ctx)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	want := entity.OTPStats{Total: 9, Pending: 1, Verified: 5, Expired: 3}
	require.NoError(t, c.SetStats(ctx, want, 5*time.Second))

	got, err := c.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	ttl, err := client.TTL(ctx, keyOfStats).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 5*time.Second)
}

func TestCache_GetStatsCorrupt(t *testing.T) {
	client := newRedis(t)
	c := NewCache(client, instrument.NewNoop())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, keyOfStats, "not-json", time.Minute).Err())

	_, err := c.GetStats(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, goerror.ErrNotFound)
}
