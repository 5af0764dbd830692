package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lolstats/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summoner struct {
	Puuid string `json:"puuid"`
	Level int64  `json:"level"`
}

func TestMemCacheGetAfterSet(t *testing.T) {
	mc := NewMemCache[summoner]()
	defer mc.Close()

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "summoner:p1", summoner{Puuid: "p1", Level: 30}, time.Minute))

	value, found, err := mc.Get(ctx, "summoner:p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, summoner{Puuid: "p1", Level: 30}, value)

	_, found, err = mc.Get(ctx, "summoner:p2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemCacheExpiry(t *testing.T) {
	mc := NewMemCache[string]()
	defer mc.Close()

	now := time.Now()
	mc.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Second))

	now = now.Add(9 * time.Second)
	value, found, _ := mc.Get(ctx, "k")
	assert.True(t, found)
	assert.Equal(t, "v", value)

	now = now.Add(2 * time.Second)
	_, found, _ = mc.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, mc.Len())
}

func TestMemCacheCleanup(t *testing.T) {
	mc := NewMemCache[int]()
	defer mc.Close()

	now := time.Now()
	mc.now = func() time.Time { return now }

	ctx := context.Background()
	mc.Set(ctx, "short", 1, time.Second)
	mc.Set(ctx, "long", 2, time.Hour)

	now = now.Add(time.Minute)
	mc.cleanup()

	assert.Equal(t, 1, mc.Len())
	value, found, _ := mc.Get(ctx, "long")
	assert.True(t, found)
	assert.Equal(t, 2, value)
}

func TestMemCacheLastSetWins(t *testing.T) {
	mc := NewMemCache[int]()
	defer mc.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mc.Set(ctx, "shared", i, time.Minute)
			mc.Get(ctx, "shared")
		}(i)
	}
	wg.Wait()

	value, found, _ := mc.Get(ctx, "shared")
	assert.True(t, found)
	assert.GreaterOrEqual(t, value, 0)
	assert.Less(t, value, 50)

	mc.Set(ctx, "shared", 99, time.Minute)
	value, _, _ = mc.Get(ctx, "shared")
	assert.Equal(t, 99, value)
}

func TestRedisCache(t *testing.T) {
	client := testutil.NewTestRedis(t)
	rc := NewRedisCache[summoner](client, "summoner")

	ctx := context.Background()

	_, found, err := rc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, rc.Set(ctx, "p1", summoner{Puuid: "p1", Level: 12}, time.Second))

	value, found, err := rc.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, summoner{Puuid: "p1", Level: 12}, value)

	// Keys are namespaced.
	raw, err := client.Get(ctx, fmt.Sprintf("cache:%s:%s", "summoner", "p1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"puuid":"p1","level":12}`, raw)

	assert.Eventually(t, func() bool {
		_, found, _ := rc.Get(ctx, "p1")
		return !found
	}, 5*time.Second, 100*time.Millisecond)
}
