package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"collection-prep/core/reconcile"
	"collection-prep/feature/collection"
)

// ErrNoSnapshot is returned by a Loader that holds no published snapshot yet.
var ErrNoSnapshot = errors.New("no snapshot published")

// Loader reads back the last snapshot a sink published.
type Loader interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

// GameView is a game with its resolved entity names, the unit compared across sinks.
// Internal ids are left out because they differ legitimately between runs.
type GameView struct {
	Row        GameRow
	Publishers []string
	Designers  []string
}

// IndexDataset keys every game of ds by its catalog id.
func IndexDataset(ds Dataset) map[string]GameView {
	names := make(map[int]string, len(ds.EntityData))
	for _, e := range ds.EntityData {
		names[e.ID] = e.Name
	}

	index := make(map[string]GameView, len(ds.GameData))
	byID := make(map[int]string, len(ds.GameData))
	for _, g := range ds.GameData {
		index[g.BggID] = GameView{Row: g}
		byID[g.ID] = g.BggID
	}
	for _, r := range ds.RelationshipData {
		key, ok := byID[r.GameID]
		if !ok {
			continue
		}
		view := index[key]
		switch collection.Kind(r.RelationshipType) {
		case collection.KindPublisher:
			view.Publishers = append(view.Publishers, names[r.EntityID])
		case collection.KindDesigner:
			view.Designers = append(view.Designers, names[r.EntityID])
		}
		index[key] = view
	}
	for key, view := range index {
		sort.Strings(view.Publishers)
		sort.Strings(view.Designers)
		index[key] = view
	}
	return index
}

// loaderSource adapts a Loader to a reconcile source.
type loaderSource struct {
	loader Loader
}

func (s loaderSource) Name() string { return s.loader.Name() }

func (s loaderSource) LoadIndex(ctx context.Context) (map[string]GameView, error) {
	ds, err := s.loader.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return map[string]GameView{}, nil
	}
	if err != nil {
		return nil, err
	}
	return IndexDataset(ds), nil
}

type gameAdapter struct{}

func (gameAdapter) ResolveName(v GameView) string { return v.Row.Title }

func (gameAdapter) CompareFields(l, r GameView) []reconcile.Diff {
	var diffs []reconcile.Diff
	add := func(field, left, right string) {
		if left != right {
			diffs = append(diffs, reconcile.Diff{Field: field, Left: left, Right: right})
		}
	}
	add("title", l.Row.Title, r.Row.Title)
	add("yearpublished", l.Row.YearPublished, r.Row.YearPublished)
	add("thumbnail", l.Row.Thumbnail, r.Row.Thumbnail)
	add("description", l.Row.Description, r.Row.Description)
	add("gameown", strconv.FormatBool(l.Row.GameOwn), strconv.FormatBool(r.Row.GameOwn))
	add("gamewanttobuy", strconv.FormatBool(l.Row.GameWantToBuy), strconv.FormatBool(r.Row.GameWantToBuy))
	add("gameprevowned", strconv.FormatBool(l.Row.GamePrevOwned), strconv.FormatBool(r.Row.GamePrevOwned))
	add("gamefortrade", strconv.FormatBool(l.Row.GameForTrade), strconv.FormatBool(r.Row.GameForTrade))
	add("publishers", strings.Join(l.Publishers, ", "), strings.Join(r.Publishers, ", "))
	add("designers", strings.Join(l.Designers, ", "), strings.Join(r.Designers, ", "))
	return diffs
}

// Verify compares the snapshots held by loaders game by game. The first loader is
// the reference.
func Verify(ctx context.Context, loaders ...Loader) (*reconcile.ReconcilePlan, error) {
	sources := make([]reconcile.Source[GameView], 0, len(loaders))
	for _, l := range loaders {
		sources = append(sources, loaderSource{loader: l})
	}
	plan, err := reconcile.ReconcileAll(ctx, gameAdapter{}, sources...)
	if err != nil {
		return nil, fmt.Errorf("verify snapshots: %w", err)
	}
	return plan, nil
}

// Repair republishes run to every sink the plan marks as out of date.
func Repair(ctx context.Context, plan *reconcile.ReconcilePlan, run Run, sinks ...Sink) ([]string, error) {
	byName := make(map[string]Sink, len(sinks))
	for _, s := range sinks {
		byName[s.Name()] = s
	}

	var repaired []string
	for _, action := range plan.Actions {
		if action.Type != reconcile.ActionRepublish {
			continue
		}
		sink, ok := byName[action.Source]
		if !ok {
			return repaired, fmt.Errorf("no sink named %s", action.Source)
		}
		if err := sink.Write(ctx, run); err != nil {
			return repaired, fmt.Errorf("republish %s: %w", action.Source, err)
		}
		repaired = append(repaired, action.Source)
	}
	return repaired, nil
}
