package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// FileSink writes the dataset JSON to a local file.
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink writes to path.
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, logger: logger}
}

func (s *FileSink) Name() string { return "file" }

// Write replaces the file atomically.
func (s *FileSink) Write(_ context.Context, run Run) error {
	data, err := run.Dataset.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	s.logger.Debug("Snapshot file written",
		zap.String("path", s.path),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return nil
}

// ReadFile loads a dataset written by FileSink.
func ReadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	return DecodeDataset(data)
}

// Load reads back the file written by the last Write.
func (s *FileSink) Load(_ context.Context) (Dataset, error) {
	ds, err := ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Dataset{}, fmt.Errorf("%s: %w", s.path, ErrNoSnapshot)
	}
	return ds, err
}
