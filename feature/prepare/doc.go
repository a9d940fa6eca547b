// Package prepare runs collection preparation jobs and exposes them over HTTP.
//
// A run loads a user's collection, resolves every retained item through the detail
// source chain, normalizes the result with the collection pipeline and hands the
// snapshot to its sinks. The local JSON file is always written first; object storage
// and the database follow when configured.
//
// # Modes
//
//   - live: fetches from the catalog and archives every raw response under DataDir.
//   - replay: re-normalizes the archived responses without network access.
//
// Only one run may be active per data directory. The run lock is a file lock, so a CLI
// run and a server run against the same directory exclude each other.
//
// # Components
//
//   - Service: Orchestrates a run and records its metrics.
//   - Handler: Exposes runs and the published snapshot over HTTP.
//   - HealthHandler: Reports the state of optional dependencies.
//   - Feature: Registers the routes with the application.
//
// # HTTP Endpoints
//
//   - POST /collection/prepare : Live run for the configured default user.
//   - POST /collection/:username/prepare : Live run for a user.
//   - POST /collection/replay : Replay the archived responses.
//   - GET /collection/snapshot : Stream the snapshot published to object storage.
//   - GET /health : Liveness and dependency state.
package prepare
