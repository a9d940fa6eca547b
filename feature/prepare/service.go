package prepare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collection-prep/core/lock"
	"collection-prep/core/logger"
	"collection-prep/core/metrics"
	"collection-prep/core/storage"
	"collection-prep/feature/bgg"
	"collection-prep/feature/collection"
	"collection-prep/feature/snapshot"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrNoSnapshotStore is returned by OpenSnapshot when no object storage is configured.
var ErrNoSnapshotStore = errors.New("snapshot storage is not configured")

// CollectionSource returns the raw collection document of a user.
type CollectionSource interface {
	FetchCollection(ctx context.Context, username string) ([]byte, error)
}

// SnapshotStore locates the published snapshot in object storage.
type SnapshotStore struct {
	Client storage.Client
	Bucket string
	Key    string
}

// Service runs prepare and replay jobs.
type Service struct {
	cfg             Config
	defaultUsername string
	collections     CollectionSource
	details         bgg.Source
	sinks           []snapshot.Sink
	store           *SnapshotStore
	logger          *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSinks adds sinks that receive every snapshot after the local file.
func WithSinks(sinks ...snapshot.Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithSnapshotStore enables serving the published snapshot.
func WithSnapshotStore(store *SnapshotStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithDefaultUsername sets the collection owner used when none is given.
func WithDefaultUsername(username string) Option {
	return func(s *Service) {
		s.defaultUsername = strings.TrimSpace(username)
	}
}

// NewService creates a service. collections and details are only used by live runs.
func NewService(cfg Config, collections CollectionSource, details bgg.Source, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		cfg:         cfg,
		collections: collections,
		details:     details,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Username resolves the collection owner of a run.
func (s *Service) Username(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = s.defaultUsername
	}
	if username == "" {
		return "", errors.New("username is required")
	}
	return username, nil
}

// Prepare fetches the collection of username from the catalog, normalizes it and
// publishes the snapshot.
func (s *Service) Prepare(ctx context.Context, username string) (*Report, error) {
	username, err := s.Username(username)
	if err != nil {
		return nil, err
	}
	if s.collections == nil || s.details == nil {
		return nil, errors.New("catalog source is not configured")
	}

	load := func(ctx context.Context) ([]byte, error) {
		raw, err := s.collections.FetchCollection(ctx, username)
		if err != nil {
			return nil, err
		}
		if s.cfg.ArchiveRaw {
			if err := writeFile(s.cfg.RawCollectionPath(), raw); err != nil {
				return nil, fmt.Errorf("archive collection: %w", err)
			}
		}
		return raw, nil
	}

	details := s.details
	if s.cfg.ArchiveRaw {
		details = bgg.NewArchivingSource(details, s.cfg.DataDir, s.logger)
	}
	details = bgg.NewSharedSource(details)

	return s.run(ctx, ModeLive, username, load, bgg.NewDetailFetcher(details))
}

// Replay normalizes the archived responses of the last live run without network access.
func (s *Service) Replay(ctx context.Context, username string) (*Report, error) {
	if username, _ = s.Username(username); username == "" {
		username = "replay"
	}
	load := func(context.Context) ([]byte, error) {
		raw, err := os.ReadFile(s.cfg.RawCollectionPath())
		if err != nil {
			return nil, fmt.Errorf("read archived collection: %w", err)
		}
		return raw, nil
	}
	return s.run(ctx, ModeReplay, username, load, bgg.NewDetailFetcher(bgg.NewDirSource(s.cfg.DataDir)))
}

func (s *Service) run(ctx context.Context, mode, username string, load func(context.Context) ([]byte, error), fetcher collection.DetailFetcher) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	l := logger.WithRun(s.logger, runID, username).With(zap.String("mode", mode))

	report, err := s.execute(ctx, l, runID, mode, username, started, load, fetcher)
	status := StatusOf(err)
	metrics.RecordRun(status, time.Since(started))
	if err != nil {
		l.Error("Prepare run failed", zap.String("status", status), zap.Error(err))
		return nil, err
	}

	l.Info("Prepare run finished",
		zap.Int("games", report.Games),
		zap.Int("entities", report.Entities),
		zap.Int("relationships", report.Relationships),
		zap.Int64("duration_ms", report.DurationMs))
	return report, nil
}

func (s *Service) execute(ctx context.Context, l *zap.Logger, runID, mode, username string, started time.Time, load func(context.Context) ([]byte, error), fetcher collection.DetailFetcher) (*Report, error) {
	runLock := lock.New(s.cfg.LockPath())
	if err := runLock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := runLock.Release(); err != nil {
			l.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	raw, err := load(ctx)
	if err != nil {
		return nil, err
	}
	items, err := bgg.ParseCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	l.Info("Collection loaded", zap.Int("items", len(items)))

	pipeline := collection.NewPipeline(
		collection.WithConcurrency(s.cfg.Concurrency),
		collection.WithLogger(l),
		collection.WithAttemptHook(metrics.ObserveFetchAttempt),
	)
	result, err := pipeline.Run(ctx, items, fetcher)
	if err != nil {
		return nil, err
	}
	metrics.RecordItems(result.Counters.Kept, result.Counters.SkippedNotOwned, result.Counters.SkippedFetchFailed)

	run := snapshot.NewRun(username, snapshot.NewDataset(result))
	run.ID = runID

	sinks := append([]snapshot.Sink{snapshot.NewFileSink(s.cfg.OutputPath(), l)}, s.sinks...)
	if err := snapshot.Publish(ctx, l, run, sinks...); err != nil {
		return nil, err
	}
	metrics.RecordSnapshot(len(result.Games), len(result.Entities), len(result.Relationships))

	names := make([]string, 0, len(sinks))
	for _, sink := range sinks {
		names = append(names, sink.Name())
	}
	return newReport(runID, username, mode, started, result, names), nil
}

// OpenSnapshot streams the last published snapshot from object storage.
func (s *Service) OpenSnapshot(ctx context.Context) (io.ReadCloser, minio.ObjectInfo, error) {
	if s.store == nil || s.store.Client == nil {
		return nil, minio.ObjectInfo{}, ErrNoSnapshotStore
	}
	info, err := s.store.Client.StatObject(ctx, s.store.Bucket, s.store.Key, minio.StatObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	body, err := s.store.Client.GetObject(ctx, s.store.Bucket, s.store.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	return body, info, nil
}

// StatusOf classifies a run error for metrics and responses.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSucceeded
	case collection.IsConflict(err):
		return metrics.StatusConflict
	case errors.Is(err, bgg.ErrCollectionQueued):
		return metrics.StatusQueued
	default:
		return metrics.StatusFailed
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
