package modules

import (
	"lolstats/api/repositories"
	crawlservice "lolstats/api/services/crawl"
)

func initializeCrawlService(m *Module, deps *ModuleDependencies) *crawlservice.CrawlService {
	crawlDeps := &crawlservice.CrawlServiceDeps{
		Syncer: m.SyncService,
		Source: repositories.NewMatchRepository(deps.DB),
		Batch:  deps.Config.Sync.CrawlBatch,
		Logger: deps.Logger,
	}

	if deps.Events.Enabled() {
		crawlDeps.Publisher = deps.Events
	}

	return crawlservice.NewCrawlService(crawlDeps)
}
