package bgg

import (
	"context"
	"errors"
	"time"

	"collection-prep/core/cache"
	"collection-prep/core/metrics"

	"go.uber.org/zap"
)

// CacheKey returns the cache key of the detail document of id.
func CacheKey(id string) string {
	return "bgg:boardgame:" + id
}

// CachingSource answers from a byte cache and fills it on misses.
// Only documents accepted by the validator are stored; a cached document that no longer
// validates is evicted and fetched again. Cache failures are logged and fall through to
// the wrapped source.
type CachingSource struct {
	next     Source
	store    cache.Store
	ttl      time.Duration
	validate func([]byte) error
	logger   *zap.Logger
}

// NewCachingSource wraps next with store. Documents are validated with ParseDetail.
func NewCachingSource(next Source, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachingSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingSource{
		next:     next,
		store:    store,
		ttl:      ttl,
		validate: validDetail,
		logger:   logger,
	}
}

func validDetail(raw []byte) error {
	_, err := ParseDetail(raw)
	return err
}

func (s *CachingSource) FetchBoardgame(ctx context.Context, id string) ([]byte, error) {
	key := CacheKey(id)

	cached, err := s.store.Get(ctx, key)
	switch {
	case err == nil && len(cached) > 0:
		verr := s.validate(cached)
		if verr == nil {
			metrics.ObserveCacheLookup(true)
			return cached, nil
		}
		s.logger.Warn("Evicting undecodable cache entry", zap.String("key", key), zap.Error(verr))
		s.evict(ctx, key)
	case err != nil && !errors.Is(err, cache.ErrMiss):
		s.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	metrics.ObserveCacheLookup(false)

	raw, err := s.next.FetchBoardgame(ctx, id)
	if err != nil {
		return nil, err
	}
	if verr := s.validate(raw); verr != nil {
		s.logger.Debug("Not caching undecodable document", zap.String("key", key), zap.Error(verr))
		return raw, nil
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
	}
	return raw, nil
}

func (s *CachingSource) evict(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
