package modules

import (
	"testing"
	"time"

	"lolstats/api/cache"
	"lolstats/pkg/champion"
	"lolstats/pkg/config"
	"lolstats/pkg/riot"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDependencies(backend string) *ModuleDependencies {
	return &ModuleDependencies{
		Config: &config.Config{
			Cache: config.CacheConfiguration{Backend: backend, TTL: time.Minute, ReadTimeout: time.Second},
			Sync:  config.SyncConfiguration{Cooldown: time.Second, CrawlBatch: 10},
		},
		RiotClient: riot.NewClient(riot.ClientOptions{ApiKey: "test"}),
		Champions:  champion.NewTable("", nil),
		Logger:     zerolog.Nop(),
	}
}

func TestNewCacheFallsBackToMemory(t *testing.T) {
	for _, backend := range []string{"memory", "redis"} {
		m := &Module{}
		c := newCache[string](m, testDependencies(backend), "test")

		_, isMemory := c.(*cache.MemCache[string])
		assert.True(t, isMemory, backend)
		assert.Len(t, m.closers, 1)
		m.Close()
	}
}

func TestNewModule(t *testing.T) {
	m := NewModule(testDependencies("memory"))
	t.Cleanup(m.Close)

	require.NotNil(t, m.SyncService)
	require.NotNil(t, m.CrawlService)
	for _, h := range m.Handlers() {
		assert.NotNil(t, h)
	}

	// One memory cache per proxied payload kind plus the champion stats list.
	assert.Len(t, m.closers, 7)
}
