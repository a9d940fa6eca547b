// Package metrics provides Prometheus metrics for prepare runs.
//
// Collectors are registered on the default registry at package init and exposed by
// Handler on the /metrics route of the HTTP server.
//
// # Collectors
//
//   - pipeline: runs by status, run duration, items by outcome.
//   - catalog: detail fetch attempts by result, cache lookups by result.
//   - snapshot: record counts of the last published snapshot.
package metrics
