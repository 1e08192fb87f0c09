package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogger struct{}

func (stubLogger) Warn(string, ...interface{}) {}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return New(rdb, nil, stubLogger{}), mr
}

func TestCache_Load_MissThenHit(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	produceCalls := 0
	produce := func(ctx context.Context) (any, error) {
		produceCalls++
		return &payload{Name: "laser-tag", Count: 3}, nil
	}
	opts := Options{TTL: time.Hour, Tags: []string{"booking"}}

	var first payload
	require.NoError(t, cache.Load(ctx, "k1", opts, &first, produce))
	assert.Equal(t, payload{Name: "laser-tag", Count: 3}, first)
	assert.Equal(t, 1, produceCalls)

	// второй вызов обслуживается из redis
	var second payload
	require.NoError(t, cache.Load(ctx, "k1", opts, &second, produce))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, produceCalls)
}

func TestCache_Load_TTLSet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	err := cache.Load(ctx, "k1", Options{TTL: time.Hour}, &payload{}, func(ctx context.Context) (any, error) {
		return &payload{Name: "x"}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, time.Hour, mr.TTL("k1"))
}

func TestCache_Load_ProducerError(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var dest payload
	err := cache.Load(ctx, "k1", Options{TTL: time.Hour}, &dest, func(ctx context.Context) (any, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, ErrProducer)
	assert.False(t, mr.Exists("k1"), "failed computations must not be cached")
}

func TestCache_Load_CorruptedValueRecomputed(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("k1", "{not json"))

	var dest payload
	err := cache.Load(ctx, "k1", Options{TTL: time.Hour}, &dest, func(ctx context.Context) (any, error) {
		return &payload{Name: "fresh"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh", dest.Name)
}

func TestCache_Load_RedisDownFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	cache := New(rdb, nil, stubLogger{})

	mr.Close()

	var dest payload
	err := cache.Load(context.Background(), "k1", Options{TTL: time.Hour}, &dest, func(ctx context.Context) (any, error) {
		return &payload{Name: "direct"}, nil
	})

	require.NoError(t, err, "cache failures must degrade to direct computation")
	assert.Equal(t, "direct", dest.Name)
}

func TestCache_InvalidateTags(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	produce := func(name string) func(ctx context.Context) (any, error) {
		return func(ctx context.Context) (any, error) {
			return &payload{Name: name}, nil
		}
	}

	var dest payload
	require.NoError(t, cache.Load(ctx, "slots:1", Options{TTL: time.Hour, Tags: []string{"times", "times/1"}}, &dest, produce("a")))
	require.NoError(t, cache.Load(ctx, "slots:2", Options{TTL: time.Hour, Tags: []string{"times", "times/2"}}, &dest, produce("b")))
	require.NoError(t, cache.Load(ctx, "hours:1", Options{TTL: time.Hour, Tags: []string{"open_hours"}}, &dest, produce("c")))

	require.NoError(t, cache.InvalidateTags(ctx, "times"))

	assert.False(t, mr.Exists("slots:1"))
	assert.False(t, mr.Exists("slots:2"))
	assert.True(t, mr.Exists("hours:1"), "keys of other tags must survive")
	assert.False(t, mr.Exists("tag:times"), "tag set itself must be removed")
}

func TestCache_InvalidateTags_UnknownTag(t *testing.T) {
	cache, _ := newTestCache(t)
	assert.NoError(t, cache.InvalidateTags(context.Background(), "no-such-tag"))
}
