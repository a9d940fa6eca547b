// Package snapshot publishes normalized collections.
//
// A pipeline result is converted into a Dataset, the JSON document the collection site
// reads, and written to one or more sinks.
//
// # Document
//
//	{
//	  "entitydata":       [{"id", "bggid", "name"}],
//	  "gamedata":         [{"id", "bggid", "title", "yearpublished", "thumbnail",
//	                        "description", "gameown", "gamewanttobuy",
//	                        "gameprevowned", "gamefortrade"}],
//	  "relationshipdata": [{"gameid", "entityid", "relationshiptype"}]
//	}
//
// # Sinks
//
//   - FileSink: local JSON file, replaced atomically.
//   - StorageSink: object storage upload, creating the bucket on first use.
//   - DatabaseSink: relational tables keyed by run id, one transaction per run.
//
// Publish writes to the sinks in order and stops at the first failure.
//
// # Verification
//
// Every sink can read its last snapshot back. Verify compares those snapshots game by
// game through the reconcile engine, keyed by catalog id so that internal ids may
// differ between runs. Repair rewrites the sinks a plan marks as out of date.
package snapshot
