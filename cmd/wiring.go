package cmd

import (
	"context"
	"fmt"
	"time"

	"collection-prep/core/cache"
	"collection-prep/core/config"
	"collection-prep/core/database"
	"collection-prep/core/storage"
	"collection-prep/feature/bgg"
	"collection-prep/feature/prepare"
	"collection-prep/feature/snapshot"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the service with the optional dependencies it was built from.
type app struct {
	service *prepare.Service
	store   storage.Client
	cache   *cache.RedisCache
	db      *gorm.DB
}

// buildApp wires the prepare service from configuration. Optional dependencies that
// fail to connect are logged and left out; storage errors are fatal only when uploads
// are enabled.
func buildApp(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*app, error) {
	a := &app{}

	client := bgg.NewClient(cfg.BGG)
	var details bgg.Source = client
	if cfg.Cache.Enabled() {
		rc, err := cache.NewRedisCache(cfg.Cache.URL)
		if err != nil {
			logg.Warn("Optional cache connection failed", zap.Error(err))
		} else {
			a.cache = rc
			details = bgg.NewCachingSource(details, rc, cfg.Cache.TTL(), logg)
			logg.Info("Caching catalog responses", zap.Duration("ttl", cfg.Cache.TTL()))
		}
	}

	opts := []prepare.Option{prepare.WithDefaultUsername(cfg.BGG.Username)}

	store, err := storage.NewClient(cfg.Storage)
	switch {
	case err != nil && cfg.Storage.Upload:
		a.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	case err != nil:
		logg.Warn("Storage client unavailable", zap.Error(err))
	default:
		a.store = store
		opts = append(opts, prepare.WithSnapshotStore(&prepare.SnapshotStore{
			Client: store,
			Bucket: cfg.Storage.Bucket,
			Key:    cfg.Storage.ObjectKey,
		}))
		if cfg.Storage.Upload {
			opts = append(opts, prepare.WithSinks(snapshot.NewStorageSink(store, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.ObjectKey, logg)))
		}
	}

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		sink := snapshot.NewDatabaseSink(db)
		if err := sink.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to migrate snapshot tables: %w", err)
		}
		opts = append(opts, prepare.WithSinks(sink))
		logg.Info("Persisting snapshots to database", zap.String("driver", cfg.Database.Driver))
	}

	a.service = prepare.NewService(cfg.Pipeline, client, details, logg, opts...)
	return a, nil
}

// healthChecks returns probes for the optional dependencies that are connected.
func (a *app) healthChecks() map[string]prepare.HealthCheck {
	checks := map[string]prepare.HealthCheck{}
	if a.cache != nil {
		checks["cache"] = a.cache.HealthCheck
	}
	if a.db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}

// Close releases connections held by the app.
func (a *app) Close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
