package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusConflict  = "conflict"
	StatusQueued    = "queued"
	StatusFailed    = "failed"
)

var (
	// RunsTotal tracks prepare runs by final status
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_prep",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of prepare runs by status",
		},
		[]string{"status"},
	)

	// RunDuration tracks prepare run duration in seconds
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "collection_prep",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Duration of prepare runs in seconds",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	// ItemsTotal tracks collection items by outcome
	ItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_prep",
			Subsystem: "pipeline",
			Name:      "items_total",
			Help:      "Total number of collection items by outcome",
		},
		[]string{"outcome"},
	)

	// DetailFetchAttempts tracks detail fetch attempts by result
	DetailFetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_prep",
			Subsystem: "catalog",
			Name:      "detail_fetch_attempts_total",
			Help:      "Total number of detail fetch attempts by result",
		},
		[]string{"result"},
	)

	// CacheLookups tracks detail cache lookups by result
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collection_prep",
			Subsystem: "catalog",
			Name:      "cache_lookups_total",
			Help:      "Total number of detail cache lookups by result",
		},
		[]string{"result"},
	)

	// SnapshotEntities tracks the size of the last published snapshot
	SnapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "collection_prep",
			Subsystem: "snapshot",
			Name:      "records",
			Help:      "Number of records in the last published snapshot by table",
		},
		[]string{"table"},
	)
)

// RecordRun records the outcome of a prepare run.
func RecordRun(status string, duration time.Duration) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(duration.Seconds())
}

// RecordItems adds the per-item counters of a finished run.
func RecordItems(kept, skippedNotOwned, skippedFetchFailed int) {
	ItemsTotal.WithLabelValues("kept").Add(float64(kept))
	ItemsTotal.WithLabelValues("skipped_not_owned").Add(float64(skippedNotOwned))
	ItemsTotal.WithLabelValues("skipped_fetch_failed").Add(float64(skippedFetchFailed))
}

// RecordSnapshot sets the record counts of the last published snapshot.
func RecordSnapshot(games, entities, relationships int) {
	SnapshotEntities.WithLabelValues("games").Set(float64(games))
	SnapshotEntities.WithLabelValues("entities").Set(float64(entities))
	SnapshotEntities.WithLabelValues("relationships").Set(float64(relationships))
}

// ObserveFetchAttempt counts a detail fetch attempt. Its signature matches the pipeline
// attempt hook.
func ObserveFetchAttempt(_ string, _ int, err error) {
	if err != nil {
		DetailFetchAttempts.WithLabelValues("error").Inc()
		return
	}
	DetailFetchAttempts.WithLabelValues("success").Inc()
}

// ObserveCacheLookup counts a cache hit or miss.
func ObserveCacheLookup(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
