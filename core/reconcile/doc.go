// Package reconcile compares several sources of the same entities.
//
// Each source loads an index keyed by entity key. The engine builds the indices
// concurrently, computes the union of keys and reports, per key, which sources hold
// the entity and which fields differ.
//
// # Architecture
//
// 1. Engine: Loads the indices, detects presence/absence and identifies field
// mismatches against a reference item.
//
// 2. Source: Loads one index. Sources are generic over the item type.
//
// 3. Adapter: Model-specific naming and field comparison.
//
// # Reference Source
//
// The first source is the reference. For every key the first source holding it
// provides the reference item; later sources are compared against it. Any source
// that is missing keys, holds extra keys or disagrees with the reference gets a
// republish action in the plan.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileAll(ctx, adapter, fileSource, storageSource, dbSource)
//	if err != nil {
//	    return err
//	}
//	for _, action := range plan.Actions {
//	    fmt.Println(action.Source, action.Reason)
//	}
package reconcile
