// Package collection normalizes a raw board game collection into three related tables:
// games, shared entities (designers and publishers) and the relationships between them.
//
// The package is pure: it never performs I/O itself. Callers supply the decoded collection
// items and a DetailFetcher capability, and receive an in-memory Result.
//
// # Components
//
//   - Sequencer: the single run-wide id sequence shared by games and entities.
//   - EntityIndex: deduplicates entities by external id and detects name conflicts.
//   - RelationshipBuilder: resolves references through the index and emits edges.
//   - Normalizer: retention filter, bounded retry of the detail fetch, field extraction.
//   - Pipeline: drives the normalizer over the collection and accumulates the Result.
//
// # Identifier Ordering
//
// A game's internal id is drawn after its detail fetch succeeds and before any of its
// entities are resolved. Entities first seen on that game therefore receive larger ids
// than the game. Publishers are resolved before designers, each in reference order.
//
// # Failure Policy
//
// A detail fetch is retried exactly once. A second failure skips the item and is counted
// in Counters.SkippedFetchFailed. A *ConflictError or ErrMissingExternalID aborts the run
// and no partial Result is returned.
//
// # Usage
//
//	p := collection.NewPipeline(collection.WithConcurrency(4), collection.WithLogger(log))
//	result, err := p.Run(ctx, items, fetcher)
//	if err != nil {
//	    var conflict *collection.ConflictError
//	    if errors.As(err, &conflict) { ... }
//	}
package collection
