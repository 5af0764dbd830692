// Package jobs holds the periodic tasks of the scheduler.
package jobs

import (
	"context"
	"time"

	crawlservice "lolstats/api/services/crawl"
	"lolstats/pkg/champion"

	"github.com/rs/zerolog"
)

// Crawler runs a participant crawl.
type Crawler interface {
	Crawl(ctx context.Context) (*crawlservice.Report, error)
}

// StatsRecalculator rebuilds the champion stats.
type StatsRecalculator interface {
	Recalculate(ctx context.Context) (int64, error)
}

// ChampionRefresher refreshes the champion snapshot.
type ChampionRefresher interface {
	Refresh(ctx context.Context) (*champion.Table, error)
}

// LogUploader ships the buffered logs.
type LogUploader interface {
	UploadToS3Bucket(ctx context.Context, objectKey string) error
}

// Jobs are the scheduler tasks with their dependencies.
// A nil dependency turns its task into a no-op.
type Jobs struct {
	crawler   Crawler
	stats     StatsRecalculator
	champions ChampionRefresher
	logs      LogUploader
	logger    zerolog.Logger
	now       func() time.Time
}

type JobsDeps struct {
	Crawler   Crawler
	Stats     StatsRecalculator
	Champions ChampionRefresher
	Logs      LogUploader
	Logger    zerolog.Logger
}

func NewJobs(deps *JobsDeps) *Jobs {
	return &Jobs{
		crawler:   deps.Crawler,
		stats:     deps.Stats,
		champions: deps.Champions,
		logs:      deps.Logs,
		logger:    deps.Logger,
		now:       time.Now,
	}
}
