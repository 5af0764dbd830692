package logger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"lolstats/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectPutter is the subset of the S3 client used by the archive.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive buffers log lines in a temporary file and ships them to a bucket.
type Archive struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	bucket   string
	client   ObjectPutter
}

// NewS3Client creates the S3 client for a S3 compatible bucket.
func NewS3Client(cfg config.BucketConfiguration) *s3.Client {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.AccessSecret,
				"",
			),
		),
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// NewArchive creates the archive backed by a temporary file.
func NewArchive(client ObjectPutter, bucket string) (*Archive, error) {
	f, err := os.CreateTemp("", "lolstats-*.log")
	if err != nil {
		return nil, err
	}

	return &Archive{
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucket,
		client:   client,
	}, nil
}

// Write appends raw log lines, so the archive can be used as a zerolog writer.
func (a *Archive) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.logFile.Write(p)
}

// UploadToS3Bucket uploads the current content and truncates the file.
func (a *Archive) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	info, err := a.logFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	// Nothing was logged since the last upload.
	if info.Size() == 0 {
		return nil
	}

	if _, err := a.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
		Body:   a.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	if err := a.logFile.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate log file: %w", err)
	}
	_, err = a.logFile.Seek(0, 0)
	return err
}

// Close removes the temporary file.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.logFile.Close()
	return os.Remove(a.filePath)
}
