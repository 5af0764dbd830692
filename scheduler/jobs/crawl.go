package jobs

import (
	"context"
	"time"
)

// Crawl syncs, or queues, a batch of players found in stored matches.
func (j *Jobs) Crawl(ctx context.Context) error {
	if j.crawler == nil {
		return nil
	}

	start := j.now()
	j.logger.Info().Msg("starting participant crawl")

	report, err := j.crawler.Crawl(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("participant crawl failed")
		return err
	}

	j.logger.Info().
		Int("found", report.Found).
		Int("queued", report.Queued).
		Int("synced", report.Synced).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Dur("duration", time.Since(start)).
		Msg("participant crawl completed")
	return nil
}
