package modules

import (
	"context"

	"lolstats/api/cache"
	"lolstats/api/handlers"
	crawlservice "lolstats/api/services/crawl"
	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/champion"
	"lolstats/pkg/config"
	"lolstats/pkg/events"
	"lolstats/pkg/redis"
	"lolstats/pkg/riot"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ModuleDependencies are the shared clients every handler is built from.
// Redis and Events are optional.
type ModuleDependencies struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.RedisClient
	RiotClient *riot.Client
	Champions  *champion.Table
	Events     *events.Bus
	Logger     zerolog.Logger
}

// Module containing the necessary handlers.
type Module struct {
	RiotHandler          *handlers.RiotHandler
	UserHandler          *handlers.UserHandler
	MatchHandler         *handlers.MatchHandler
	ChampionStatsHandler *handlers.ChampionStatsHandler
	CrawlHandler         *handlers.CrawlHandler
	HealthHandler        *handlers.HealthHandler

	SyncService  *syncservice.SyncService
	CrawlService *crawlservice.CrawlService

	closers []func()
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	m := &Module{}

	m.RiotHandler = initializeRiotHandler(m, deps)
	m.SyncService = initializeSyncService(deps)
	m.UserHandler = initializeUserHandler(m, deps)
	m.MatchHandler = initializeMatchHandler(deps)
	m.ChampionStatsHandler = initializeChampionStatsHandler(m, deps)
	m.CrawlService = initializeCrawlService(m, deps)
	m.CrawlHandler = handlers.NewCrawlHandler(&handlers.CrawlHandlerDependencies{Crawler: m.CrawlService})
	m.HealthHandler = initializeHealthHandler(deps)

	return m
}

// Handlers returns every handler, ready for the router.
func (m *Module) Handlers() []any {
	return []any{
		m.RiotHandler,
		m.UserHandler,
		m.MatchHandler,
		m.ChampionStatsHandler,
		m.CrawlHandler,
		m.HealthHandler,
	}
}

// Close stops the background workers of the module.
func (m *Module) Close() {
	for _, closeFn := range m.closers {
		closeFn()
	}
}

// newCache picks the configured cache backend for one payload kind.
// Redis is only used when it is configured, the memory cache otherwise.
func newCache[T any](m *Module, deps *ModuleDependencies, prefix string) cache.Cache[T] {
	if deps.Config.Cache.Backend == "redis" && deps.Redis != nil {
		return cache.NewRedisCache[T](deps.Redis, prefix)
	}

	memCache := cache.NewMemCache[T]()
	m.closers = append(m.closers, memCache.Close)
	return memCache
}

func initializeHealthHandler(deps *ModuleDependencies) *handlers.HealthHandler {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	if deps.Redis != nil {
		checks["redis"] = deps.Redis.Ping
	}

	if deps.Events.Enabled() {
		checks["nats"] = func(context.Context) error { return deps.Events.Ping() }
	}

	return handlers.NewHealthHandler(&handlers.HealthHandlerDependencies{Checks: checks})
}
