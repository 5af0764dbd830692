package jobs

import (
	"context"
	"fmt"
)

// UploadLogs ships the logs buffered since the last upload.
func (j *Jobs) UploadLogs(ctx context.Context) error {
	if j.logs == nil {
		return nil
	}

	key := fmt.Sprintf("scheduler/%s.log", j.now().UTC().Format("2006-01-02T15-04-05"))
	if err := j.logs.UploadToS3Bucket(ctx, key); err != nil {
		j.logger.Error().Err(err).Msg("couldn't upload the logs")
		return err
	}
	return nil
}
