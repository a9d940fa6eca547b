package reconcile

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ReconcileAll loads every source concurrently, computes the union of keys and
// returns a plan comparing each source against the first one.
func ReconcileAll[T any](ctx context.Context, adapter Adapter[T], sources ...Source[T]) (*ReconcilePlan, error) {
	if len(sources) < 2 {
		return nil, fmt.Errorf("reconcile needs at least two sources, got %d", len(sources))
	}

	indices, err := loadIndices(ctx, sources)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}

	union := buildUnion(indices)
	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, names, indices, adapter))
	}

	// Sort results by key for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	plan := &ReconcilePlan{
		Reference: names[0],
		Sources:   names,
		Results:   results,
	}
	plan.Summary, plan.Actions = buildPlan(results, names)
	return plan, nil
}

// loadIndices builds every index concurrently and fails on the first error.
func loadIndices[T any](ctx context.Context, sources []Source[T]) ([]map[string]T, error) {
	indices := make([]map[string]T, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		g.Go(func() error {
			index, err := s.LoadIndex(gctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", s.Name(), err)
			}
			indices[i] = index
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return indices, nil
}

// buildUnion creates a union of all keys from every index.
func buildUnion[T any](indices []map[string]T) map[string]struct{} {
	union := make(map[string]struct{})
	for _, index := range indices {
		for key := range index {
			union[key] = struct{}{}
		}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key. Items are compared against
// the first source holding the key.
func buildResult[T any](key string, names []string, indices []map[string]T, adapter Adapter[T]) ReconcileResult {
	result := ReconcileResult{
		ID:       key,
		Present:  make(map[string]bool, len(names)),
		Mismatch: []string{},
	}

	ref := -1
	for i, index := range indices {
		item, ok := index[key]
		result.Present[names[i]] = ok
		if !ok {
			continue
		}
		if ref < 0 {
			ref = i
			result.Name = adapter.ResolveName(item)
			continue
		}
		diffs := adapter.CompareFields(indices[ref][key], item)
		if len(diffs) > 0 {
			result.Differs = append(result.Differs, names[i])
		}
		for _, d := range diffs {
			result.Mismatch = append(result.Mismatch,
				fmt.Sprintf("%s: %s=%q %s=%q", d.Field, names[ref], d.Left, names[i], d.Right))
		}
	}
	return result
}

// buildPlan counts issues and plans a republish for every source that differs from
// the reference.
func buildPlan(results []ReconcileResult, names []string) (PlanSummary, []Action) {
	summary := PlanSummary{
		TotalItems: len(results),
		Missing:    make(map[string]int, len(names)),
	}
	mismatched := make(map[string]int, len(names))

	for _, r := range results {
		for _, name := range r.Missing(names) {
			summary.Missing[name]++
		}
		if len(r.Mismatch) == 0 {
			continue
		}
		summary.Mismatches++
		if !r.Present[names[0]] {
			continue
		}
		for _, name := range r.Differs {
			mismatched[name]++
		}
	}

	var actions []Action
	for _, name := range names[1:] {
		missing := summary.Missing[name]
		extra := 0
		for _, r := range results {
			if r.Present[name] && !r.Present[names[0]] {
				extra++
			}
		}
		if missing == 0 && extra == 0 && mismatched[name] == 0 {
			continue
		}
		actions = append(actions, Action{
			Type:   ActionRepublish,
			Source: name,
			Reason: fmt.Sprintf("%d missing, %d extra, %d mismatched against %s", missing, extra, mismatched[name], names[0]),
		})
	}
	return summary, actions
}
