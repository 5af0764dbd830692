package jobs

import "context"

// RecalculateChampionStats rebuilds the champion aggregate from the stored matches.
func (j *Jobs) RecalculateChampionStats(ctx context.Context) error {
	if j.stats == nil {
		return nil
	}

	j.logger.Info().Msg("starting champion stats recalculation")

	written, err := j.stats.Recalculate(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("champion stats recalculation failed")
		return err
	}

	j.logger.Info().Int64("champions", written).Msg("champion stats recalculation completed")
	return nil
}
