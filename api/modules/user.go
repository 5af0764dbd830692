package modules

import (
	"lolstats/api/handlers"
	"lolstats/api/repositories"
	syncservice "lolstats/api/services/sync"
)

func initializeSyncService(deps *ModuleDependencies) *syncservice.SyncService {
	syncDeps := &syncservice.SyncServiceDeps{
		Client:    deps.RiotClient,
		Users:     repositories.NewUserRepository(deps.DB),
		Matches:   repositories.NewMatchRepository(deps.DB),
		Champions: deps.Champions,
		Cooldown:  deps.Config.Sync.Cooldown,
		Logger:    deps.Logger,
	}

	// Left unset when missing, a typed nil would pass the nil checks.
	if deps.Redis != nil {
		syncDeps.Redis = deps.Redis
	}
	if deps.Events.Enabled() {
		syncDeps.Events = deps.Events
	}

	return syncservice.NewSyncService(syncDeps)
}

func initializeUserHandler(m *Module, deps *ModuleDependencies) *handlers.UserHandler {
	userHandlerDeps := &handlers.UserHandlerDependencies{
		Users:  repositories.NewUserRepository(deps.DB),
		Syncer: m.SyncService,
	}

	return handlers.NewUserHandler(userHandlerDeps)
}
