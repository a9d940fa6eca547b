package reconcile

import "context"

// Source loads one side of a reconciliation as an index keyed by entity key.
type Source[T any] interface {
	// Name identifies the source in results (e.g., "file", "storage").
	Name() string

	// LoadIndex loads every item of the source. A source that holds nothing returns an
	// empty index, not an error.
	LoadIndex(ctx context.Context) (map[string]T, error)
}

// Adapter defines model-specific comparison logic.
type Adapter[T any] interface {
	// ResolveName returns the display name for an item.
	ResolveName(item T) string

	// CompareFields returns the fields that differ between two items of the same key.
	CompareFields(left, right T) []Diff
}
