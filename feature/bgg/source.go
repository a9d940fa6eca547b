package bgg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source returns the raw detail document of a catalog id.
type Source interface {
	FetchBoardgame(ctx context.Context, id string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, id string) ([]byte, error)

func (f SourceFunc) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	return f(ctx, id)
}

// DetailPath returns where the detail document of id is archived below dataDir.
func DetailPath(dataDir, id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid catalog id %q", id)
	}
	return filepath.Join(dataDir, "game-data", "game-"+id+".xml"), nil
}

// SharedSource collapses concurrent requests for the same id into one call.
type SharedSource struct {
	next  Source
	group singleflight.Group
}

// NewSharedSource wraps next.
func NewSharedSource(next Source) *SharedSource {
	return &SharedSource{next: next}
}

func (s *SharedSource) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	v, err, _ := s.group.Do(id, func() (any, error) {
		return s.next.FetchBoardgame(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// ArchivingSource writes every successfully fetched document to the data directory.
// Archive failures are logged and do not fail the fetch.
type ArchivingSource struct {
	next    Source
	dataDir string
	logger  *zap.Logger
}

// NewArchivingSource wraps next and archives below dataDir.
func NewArchivingSource(next Source, dataDir string, logger *zap.Logger) *ArchivingSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchivingSource{next: next, dataDir: dataDir, logger: logger}
}

func (s *ArchivingSource) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	raw, err := s.next.FetchBoardgame(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.archive(id, raw); err != nil {
		s.logger.Warn("Failed to archive detail response", zap.String("external_id", id), zap.Error(err))
	}
	return raw, nil
}

func (s *ArchivingSource) archive(id string, raw []byte) error {
	path, err := DetailPath(s.dataDir, id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// DirSource reads archived detail documents, for offline replays.
type DirSource struct {
	dataDir string
}

// NewDirSource reads from the game-data directory below dataDir.
func NewDirSource(dataDir string) *DirSource {
	return &DirSource{dataDir: dataDir}
}

func (s *DirSource) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := DetailPath(s.dataDir, id)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("boardgame %s: %w (no archive at %s)", id, ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return raw, nil
}
