package modules

import (
	"lolstats/api/handlers"
	riotservice "lolstats/api/services/riot"
	"lolstats/pkg/riot"
)

func initializeRiotHandler(m *Module, deps *ModuleDependencies) *handlers.RiotHandler {
	riotDeps := &riotservice.RiotServiceDeps{
		Client: deps.RiotClient,
		Caches: riotservice.Caches{
			Accounts:  newCache[*riot.Account](m, deps, "account"),
			Summoners: newCache[*riot.Summoner](m, deps, "summoner"),
			Leagues:   newCache[[]riot.LeagueEntry](m, deps, "league"),
			Masteries: newCache[[]riot.ChampionMastery](m, deps, "mastery"),
			MatchIds:  newCache[[]string](m, deps, "match-ids"),
			Matches:   newCache[*riot.Match](m, deps, "match"),
		},
		CacheTTL:    deps.Config.Cache.TTL,
		ReadTimeout: deps.Config.Cache.ReadTimeout,
		Logger:      deps.Logger,
	}

	riotService := riotservice.NewRiotService(riotDeps)

	riotHandlerDeps := &handlers.RiotHandlerDependencies{
		RiotService: riotService,
		MaxAge:      deps.Config.Cache.TTL,
	}

	return handlers.NewRiotHandler(riotHandlerDeps)
}
