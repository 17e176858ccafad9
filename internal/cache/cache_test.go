package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, 7)
	assert.False(t, ok)

	block := uint64(3)
	rows := []model.PackagePrice{{ID: 1, PackageID: 7, Adults: 2, TotalPriceCents: 115200, FlightBlockID: &block}}
	require.NoError(t, c.Set(ctx, 7, 0, rows))

	got, ok := c.Get(ctx, 7)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(115200), got[0].TotalPriceCents)
	assert.Equal(t, uint64(3), *got[0].FlightBlockID)
	assert.Equal(t, time.Minute, mr.TTL("prices:pkg:7"))

	require.NoError(t, c.Invalidate(ctx, 7))
	_, ok = c.Get(ctx, 7)
	assert.False(t, ok)
}

func TestRedisCache_SetAfterInvalidateIsStale(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	ctx := context.Background()
	rows := []model.PackagePrice{{ID: 1, PackageID: 7, Adults: 2, TotalPriceCents: 115200}}

	gen, err := c.Generation(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), gen)

	require.NoError(t, c.Invalidate(ctx, 7))
	assert.ErrorIs(t, c.Set(ctx, 7, gen, rows), ErrStale)
	assert.False(t, mr.Exists("prices:pkg:7"))

	gen, err = c.Generation(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	require.NoError(t, c.Set(ctx, 7, gen, rows))
	assert.True(t, mr.Exists("prices:pkg:7"))
}

func TestRedisCache_CorruptEntryIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set("prices:pkg:9", "not json"))
	_, ok := NewRedisCache(client, time.Minute).Get(context.Background(), 9)
	assert.False(t, ok)
}

func TestNew_WithoutRedis(t *testing.T) {
	c := New(nil, time.Minute)
	assert.IsType(t, &NoOpCache{}, c)
	assert.NoError(t, c.Set(context.Background(), 1, 0, nil))
	_, ok := c.Get(context.Background(), 1)
	assert.False(t, ok)
}
