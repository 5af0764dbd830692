package jobs

import "context"

// RefreshChampionSnapshot stores the latest champion table for the next api start.
func (j *Jobs) RefreshChampionSnapshot(ctx context.Context) error {
	if j.champions == nil {
		return nil
	}

	j.logger.Info().Msg("starting champion snapshot refresh")

	table, err := j.champions.Refresh(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("champion snapshot refresh failed")
		return err
	}

	j.logger.Info().Str("version", table.Version()).Int("champions", table.Len()).Msg("champion snapshot refreshed")
	return nil
}
