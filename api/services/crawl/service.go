// Package crawlservice discovers players through stored matches and syncs them.
package crawlservice

import (
	"context"
	"errors"
	"time"

	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/database/models"
	"lolstats/pkg/events"
	"lolstats/pkg/riot"

	"github.com/rs/zerolog"
)

const (
	DefaultBatch = 50

	// Deadline of a sync run for a queued request.
	requestTimeout = 2 * time.Minute
)

// Syncer runs a sync cycle.
type Syncer interface {
	Sync(ctx context.Context, identity syncservice.Identity) (*models.User, error)
}

// ParticipantSource lists players found in stored matches.
type ParticipantSource interface {
	ParticipantPuuids(ctx context.Context, limit int) ([]string, error)
}

// RequestPublisher queues sync requests for the workers.
type RequestPublisher interface {
	Enabled() bool
	PublishSyncRequest(request events.SyncRequest) error
}

// Report sums up a crawl.
type Report struct {
	Found   int `json:"found"`
	Queued  int `json:"queued"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// CrawlService crawls stored participants.
type CrawlService struct {
	syncer    Syncer
	source    ParticipantSource
	publisher RequestPublisher
	batch     int
	logger    zerolog.Logger
}

// CrawlServiceDeps is the dependency list for the crawl service. Publisher is optional.
type CrawlServiceDeps struct {
	Syncer    Syncer
	Source    ParticipantSource
	Publisher RequestPublisher
	Batch     int
	Logger    zerolog.Logger
}

// NewCrawlService creates the crawl service.
func NewCrawlService(deps *CrawlServiceDeps) *CrawlService {
	batch := deps.Batch
	if batch <= 0 {
		batch = DefaultBatch
	}

	return &CrawlService{
		syncer:    deps.Syncer,
		source:    deps.Source,
		publisher: deps.Publisher,
		batch:     batch,
		logger:    deps.Logger,
	}
}

// Crawl picks a random batch of known participants and syncs them.
// With a publisher every player is queued for the workers, otherwise they are synced in turn.
// A failing player never stops the crawl.
func (cs *CrawlService) Crawl(ctx context.Context) (*Report, error) {
	puuids, err := cs.source.ParticipantPuuids(ctx, cs.batch)
	if err != nil {
		return nil, err
	}

	report := &Report{Found: len(puuids)}
	queue := cs.publisher != nil && cs.publisher.Enabled()

	for _, puuid := range puuids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if queue {
			if err := cs.publisher.PublishSyncRequest(events.SyncRequest{Puuid: puuid}); err != nil {
				cs.logger.Warn().Err(err).Str("puuid", puuid).Msg("couldn't queue the sync request")
				report.Failed++
				continue
			}
			report.Queued++
			continue
		}

		switch err := cs.syncOne(ctx, puuid); {
		case err == nil:
			report.Synced++
		case errors.Is(err, syncservice.ErrSyncInProgress):
			report.Skipped++
		default:
			cs.logger.Warn().Err(err).Str("puuid", puuid).Msg("crawl sync failed")
			report.Failed++
		}
	}

	cs.logger.Info().
		Int("found", report.Found).
		Int("queued", report.Queued).
		Int("synced", report.Synced).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("crawl finished")

	return report, nil
}

// syncOne syncs a player at background priority.
func (cs *CrawlService) syncOne(ctx context.Context, puuid string) error {
	_, err := cs.syncer.Sync(riot.Background(ctx), syncservice.ByPuuid(puuid))
	return err
}

// HandleSyncRequest runs a queued sync request.
func (cs *CrawlService) HandleSyncRequest(request events.SyncRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	err := cs.syncOne(ctx, request.Puuid)
	switch {
	case err == nil:
		cs.logger.Debug().Str("puuid", request.Puuid).Msg("queued sync done")
	case errors.Is(err, syncservice.ErrSyncInProgress):
		cs.logger.Debug().Str("puuid", request.Puuid).Msg("queued sync skipped, player in cooldown")
	default:
		cs.logger.Warn().Err(err).Str("puuid", request.Puuid).Msg("queued sync failed")
	}
}
