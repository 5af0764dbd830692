package modules

import (
	"lolstats/api/handlers"
	"lolstats/api/repositories"
	badgeservice "lolstats/api/services/badges"
)

func initializeMatchHandler(deps *ModuleDependencies) *handlers.MatchHandler {
	matchRepository := repositories.NewMatchRepository(deps.DB)

	matchHandlerDeps := &handlers.MatchHandlerDependencies{
		Matches: matchRepository,
		Badges:  badgeservice.NewBadgeService(matchRepository),
	}

	return handlers.NewMatchHandler(matchHandlerDeps)
}
