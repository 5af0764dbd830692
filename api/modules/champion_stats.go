package modules

import (
	"lolstats/api/cache"
	"lolstats/api/dto"
	"lolstats/api/handlers"
	"lolstats/api/repositories"
	championstatsservice "lolstats/api/services/championstats"
)

func initializeChampionStatsHandler(m *Module, deps *ModuleDependencies) *handlers.ChampionStatsHandler {
	// The list is small and read often, it always stays in memory.
	memCache := cache.NewMemCache[[]dto.ChampionStats]()
	m.closers = append(m.closers, memCache.Close)

	statsDeps := &championstatsservice.ChampionStatsServiceDeps{
		Repository: repositories.NewChampionStatsRepository(deps.DB),
		Champions:  deps.Champions,
		Cache:      memCache,
		Logger:     deps.Logger,
	}

	statsService := championstatsservice.NewChampionStatsService(statsDeps)

	statsHandlerDeps := &handlers.ChampionStatsHandlerDependencies{
		StatsService: statsService,
	}

	return handlers.NewChampionStatsHandler(statsHandlerDeps)
}
