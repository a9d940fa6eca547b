// Package cache provides the redis backed response cache.
//
// Detail records of the catalog change rarely, so the raw XML of each record can be
// kept between prepare runs. The cache is optional; an empty URL disables it.
//
// # Usage
//
//	rc, err := cache.NewRedisCache(cfg.Cache.URL)
//	if err != nil {
//	    logg.Warn("Optional cache unavailable", zap.Error(err))
//	}
//	defer rc.Close()
//
//	data, err := rc.Get(ctx, "bgg:boardgame:13")
//	if errors.Is(err, cache.ErrMiss) { ... }
package cache
