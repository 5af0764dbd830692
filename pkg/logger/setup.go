package logger

import (
	"fmt"

	"lolstats/pkg/config"

	"github.com/rs/zerolog"
)

// Setup creates the logger of a process.
// When the bucket is configured the logs are also written to an archive, returned so it can be uploaded.
func Setup(cfg *config.Config) (zerolog.Logger, *Archive, error) {
	if !cfg.Bucket.Enabled() {
		return New(cfg.Log), nil, nil
	}

	archive, err := NewArchive(NewS3Client(cfg.Bucket), cfg.Bucket.LogBucket)
	if err != nil {
		return New(cfg.Log), nil, fmt.Errorf("couldn't create the log archive: %w", err)
	}

	return New(cfg.Log, archive), archive, nil
}
