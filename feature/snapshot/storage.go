package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"collection-prep/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ContentType of the published document.
const ContentType = "application/json"

// StorageSink uploads the dataset JSON to object storage.
type StorageSink struct {
	client storage.Client
	bucket string
	region string
	key    string
	logger *zap.Logger
}

// NewStorageSink uploads to key in bucket, creating the bucket in region when needed.
func NewStorageSink(client storage.Client, bucket, region, key string, logger *zap.Logger) *StorageSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageSink{client: client, bucket: bucket, region: region, key: key, logger: logger}
}

func (s *StorageSink) Name() string { return "storage" }

func (s *StorageSink) Write(ctx context.Context, run Run) error {
	data, err := run.Dataset.Encode()
	if err != nil {
		return err
	}

	created, err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}

	info, err := s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType,
		UserMetadata: map[string]string{
			"run-id":   run.ID,
			"username": run.Username,
		},
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", s.bucket, s.key, err)
	}

	s.logger.Info("Snapshot uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", s.key),
		zap.String("etag", info.ETag),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return nil
}

// Load downloads the published document.
func (s *StorageSink) Load(ctx context.Context) (Dataset, error) {
	body, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return Dataset{}, s.loadError(err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return Dataset{}, s.loadError(err)
	}
	return DecodeDataset(data)
}

func (s *StorageSink) loadError(err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%s/%s: %w", s.bucket, s.key, ErrNoSnapshot)
	}
	return fmt.Errorf("download %s/%s: %w", s.bucket, s.key, err)
}
