package collection_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"collection-prep/feature/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves detail records from a map and can fail the first N calls per id.
type fakeFetcher struct {
	mu       sync.Mutex
	details  map[string]*collection.DetailRecord
	failures map[string]int
	calls    map[string]int
}

func newFakeFetcher(details map[string]*collection.DetailRecord) *fakeFetcher {
	return &fakeFetcher{
		details:  details,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (f *fakeFetcher) failFirst(id string, n int) *fakeFetcher {
	f.failures[id] = n
	return f
}

func (f *fakeFetcher) FetchDetail(_ context.Context, id string) (*collection.DetailRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[id]++
	if f.calls[id] <= f.failures[id] {
		return nil, fmt.Errorf("fetch %s: temporary failure", id)
	}
	detail, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("fetch %s: not found", id)
	}
	return detail, nil
}

func (f *fakeFetcher) callsFor(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func owned(id, title string) collection.RawCollectionItem {
	return collection.RawCollectionItem{ExternalID: id, Title: title, Own: true}
}

func TestPipeline_ExampleScenario(t *testing.T) {
	items := []collection.RawCollectionItem{
		owned("10", "A"),
		{ExternalID: "20", Title: "B"},
	}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"10": {Publishers: collection.References{{ExternalID: "P1", Name: "Acme"}}},
	})

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	require.NoError(t, err)

	require.Len(t, result.Games, 1)
	assert.Equal(t, 1, result.Games[0].InternalID)
	assert.Equal(t, "10", result.Games[0].ExternalID)
	assert.Equal(t, []collection.EntityRecord{{InternalID: 2, ExternalID: "P1", Name: "Acme"}}, result.Entities)
	assert.Equal(t, []collection.RelationshipRecord{{GameInternalID: 1, EntityInternalID: 2, Kind: collection.KindPublisher}}, result.Relationships)
	assert.Equal(t, collection.Counters{Kept: 1, SkippedNotOwned: 1, SkippedFetchFailed: 0}, result.Counters)
	assert.Equal(t, 0, fetcher.callsFor("20"), "items that are not retained are never fetched")
}

func TestPipeline_IdentifierOrdering(t *testing.T) {
	items := []collection.RawCollectionItem{owned("1", "First"), owned("2", "Second")}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"1": {
			Publishers: collection.References{{ExternalID: "P1", Name: "Acme"}},
			Designers:  collection.References{{ExternalID: "D1", Name: "Ann"}},
		},
		"2": {
			Publishers: collection.References{{ExternalID: "P2", Name: "Bolt"}, {ExternalID: "P1", Name: "Acme"}},
			Designers:  collection.References{{ExternalID: "D1", Name: "Ann"}},
		},
	})

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	require.NoError(t, err)

	// game 1, P1=2, D1=3, game 4, P2=5
	assert.Equal(t, []int{1, 4}, []int{result.Games[0].InternalID, result.Games[1].InternalID})
	assert.Equal(t, []collection.EntityRecord{
		{InternalID: 2, ExternalID: "P1", Name: "Acme"},
		{InternalID: 3, ExternalID: "D1", Name: "Ann"},
		{InternalID: 5, ExternalID: "P2", Name: "Bolt"},
	}, result.Entities)
	assert.Equal(t, []collection.RelationshipRecord{
		{GameInternalID: 1, EntityInternalID: 2, Kind: collection.KindPublisher},
		{GameInternalID: 1, EntityInternalID: 3, Kind: collection.KindDesigner},
		{GameInternalID: 4, EntityInternalID: 5, Kind: collection.KindPublisher},
		{GameInternalID: 4, EntityInternalID: 2, Kind: collection.KindPublisher},
		{GameInternalID: 4, EntityInternalID: 3, Kind: collection.KindDesigner},
	}, result.Relationships)
}

func TestPipeline_IdentifierUniqueness(t *testing.T) {
	var items []collection.RawCollectionItem
	details := make(map[string]*collection.DetailRecord)
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("%d", 100+i)
		item := collection.RawCollectionItem{ExternalID: id, Title: "Game " + id, Own: i%3 != 0, ForTrade: i%5 == 0}
		items = append(items, item)
		details[id] = &collection.DetailRecord{
			Publishers: collection.References{{ExternalID: fmt.Sprintf("P%d", i%4), Name: fmt.Sprintf("Publisher %d", i%4)}},
			Designers:  collection.References{{ExternalID: fmt.Sprintf("D%d", i%7), Name: fmt.Sprintf("Designer %d", i%7)}},
		}
	}
	fetcher := newFakeFetcher(details).failFirst("101", 2)

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	require.NoError(t, err)

	var ids []int
	for _, g := range result.Games {
		ids = append(ids, g.InternalID)
	}
	for _, e := range result.Entities {
		ids = append(ids, e.InternalID)
	}
	sort.Ints(ids)

	n := len(result.Games) + len(result.Entities)
	require.Len(t, ids, n)
	for i, id := range ids {
		assert.Equal(t, i+1, id)
	}

	known := make(map[int]bool, n)
	for _, id := range ids {
		known[id] = true
	}
	for _, r := range result.Relationships {
		assert.True(t, known[r.GameInternalID], "dangling game id %d", r.GameInternalID)
		assert.True(t, known[r.EntityInternalID], "dangling entity id %d", r.EntityInternalID)
	}
}

func TestPipeline_Dedup(t *testing.T) {
	shared := collection.References{{ExternalID: "D9", Name: "Uwe"}}
	items := []collection.RawCollectionItem{owned("1", "a"), owned("2", "b"), owned("3", "c")}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"1": {Designers: shared},
		"2": {Designers: shared},
		"3": {Designers: shared},
	})

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	require.NoError(t, err)

	require.Len(t, result.Entities, 1)
	require.Len(t, result.Relationships, 3)
	for _, r := range result.Relationships {
		assert.Equal(t, result.Entities[0].InternalID, r.EntityInternalID)
	}
}

func TestPipeline_ConflictAbortsRun(t *testing.T) {
	items := []collection.RawCollectionItem{owned("1", "a"), owned("2", "b"), owned("3", "c")}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"1": {Publishers: collection.References{{ExternalID: "P1", Name: "Acme"}}},
		"2": {Publishers: collection.References{{ExternalID: "P1", Name: "ACME Inc."}}},
		"3": {},
	})

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	assert.Nil(t, result)
	require.Error(t, err)

	var conflict *collection.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "P1", conflict.ExternalID)
	assert.Equal(t, "Acme", conflict.ExistingName)
	assert.Equal(t, "ACME Inc.", conflict.IncomingName)
	assert.Equal(t, 0, fetcher.callsFor("3"), "run stops at the conflicting item")
}

func TestPipeline_RetentionFilter(t *testing.T) {
	flags := []collection.RawCollectionItem{
		{ExternalID: "own", Own: true},
		{ExternalID: "want", Want: true},
		{ExternalID: "prev", PrevOwned: true},
		{ExternalID: "trade", ForTrade: true},
		{ExternalID: "none"},
	}
	details := map[string]*collection.DetailRecord{}
	for _, item := range flags {
		details[item.ExternalID] = &collection.DetailRecord{}
	}

	result, err := collection.NewPipeline().Run(context.Background(), flags, newFakeFetcher(details))
	require.NoError(t, err)

	var kept []string
	for _, g := range result.Games {
		kept = append(kept, g.ExternalID)
	}
	assert.Equal(t, []string{"own", "want", "prev", "trade"}, kept)
	assert.Equal(t, 1, result.Counters.SkippedNotOwned)

	assert.True(t, result.Games[1].WantToBuy)
	assert.True(t, result.Games[2].PrevOwned)
	assert.True(t, result.Games[3].ForTrade)
	assert.False(t, result.Games[3].Own)
}

func TestPipeline_RetryPolicy(t *testing.T) {
	t.Run("Fails twice then skipped", func(t *testing.T) {
		items := []collection.RawCollectionItem{owned("1", "flaky"), owned("2", "fine")}
		fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
			"1": {Publishers: collection.References{{ExternalID: "P1", Name: "Acme"}}},
			"2": {},
		}).failFirst("1", 2)

		result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
		require.NoError(t, err)

		assert.Equal(t, 2, fetcher.callsFor("1"))
		require.Len(t, result.Games, 1)
		assert.Equal(t, "2", result.Games[0].ExternalID)
		assert.Equal(t, 1, result.Games[0].InternalID, "a skipped item consumes no id")
		assert.Empty(t, result.Entities, "no partial record is kept")
		assert.Equal(t, collection.Counters{Kept: 1, SkippedFetchFailed: 1}, result.Counters)

		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "1", result.Skipped[0].ExternalID)
		assert.Equal(t, collection.SkipFetchFailed, result.Skipped[0].Reason)
		assert.Error(t, result.Skipped[0].Err)
	})

	t.Run("Fails once then kept", func(t *testing.T) {
		items := []collection.RawCollectionItem{owned("1", "flaky")}
		fetcher := newFakeFetcher(map[string]*collection.DetailRecord{"1": {Description: "ok"}}).failFirst("1", 1)

		var attempts []int
		p := collection.NewPipeline(collection.WithAttemptHook(func(id string, attempt int, err error) {
			attempts = append(attempts, attempt)
		}))
		result, err := p.Run(context.Background(), items, fetcher)
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2}, attempts)
		require.Len(t, result.Games, 1)
		assert.Equal(t, "ok", result.Games[0].Description)
		assert.Equal(t, collection.Counters{Kept: 1}, result.Counters)
	})
}

func TestPipeline_FieldDefaults(t *testing.T) {
	items := []collection.RawCollectionItem{
		{ExternalID: "1", Own: true},
		{ExternalID: "2", Own: true, Thumbnail: "collection.jpg"},
		{ExternalID: "3", Own: true, Title: "Named", YearPublished: "1995"},
	}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"1": {Thumbnail: "detail-1.jpg"},
		"2": {Thumbnail: "detail-2.jpg"},
		"3": {},
	})

	result, err := collection.NewPipeline().Run(context.Background(), items, fetcher)
	require.NoError(t, err)
	require.Len(t, result.Games, 3)

	assert.Equal(t, "detail-1.jpg", result.Games[0].Thumbnail, "detail thumbnail fills an empty one")
	assert.Equal(t, "collection.jpg", result.Games[1].Thumbnail, "detail thumbnail never overrides")
	assert.Equal(t, "", result.Games[2].Thumbnail)
	assert.Equal(t, "", result.Games[0].Title)
	assert.Equal(t, "", result.Games[0].YearPublished)
	assert.Equal(t, "Named", result.Games[2].Title)
	assert.Equal(t, "1995", result.Games[2].YearPublished)
}

func TestPipeline_MissingExternalID(t *testing.T) {
	items := []collection.RawCollectionItem{
		{Title: "not retained, ignored"},
		{Title: "Orphan", Own: true},
	}

	result, err := collection.NewPipeline().Run(context.Background(), items, newFakeFetcher(nil))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, collection.ErrMissingExternalID)
	assert.Contains(t, err.Error(), "Orphan")
}

func TestPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := collection.NewPipeline().Run(ctx, []collection.RawCollectionItem{owned("1", "a")}, newFakeFetcher(nil))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_EmptyCollection(t *testing.T) {
	result, err := collection.NewPipeline().Run(context.Background(), nil, newFakeFetcher(nil))
	require.NoError(t, err)

	assert.Empty(t, result.Games)
	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Relationships)
	assert.Equal(t, 0, result.Counters.Total())
}

func TestPipeline_ConcurrentPrefetchMatchesSequential(t *testing.T) {
	var items []collection.RawCollectionItem
	details := make(map[string]*collection.DetailRecord)
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("%d", i+1)
		items = append(items, collection.RawCollectionItem{ExternalID: id, Title: "g" + id, Own: i%6 != 5})
		details[id] = &collection.DetailRecord{
			Publishers: collection.References{{ExternalID: fmt.Sprintf("P%d", i%5), Name: fmt.Sprintf("Pub %d", i%5)}},
			Designers: collection.References{
				{ExternalID: fmt.Sprintf("D%d", i%3), Name: fmt.Sprintf("Des %d", i%3)},
				{ExternalID: fmt.Sprintf("D%d", (i+1)%3), Name: fmt.Sprintf("Des %d", (i+1)%3)},
			},
		}
	}

	run := func(concurrency int) *collection.Result {
		fetcher := newFakeFetcher(details).failFirst("7", 2).failFirst("8", 1)
		result, err := collection.NewPipeline(collection.WithConcurrency(concurrency)).Run(context.Background(), items, fetcher)
		require.NoError(t, err)
		return result
	}

	sequential := run(1)
	concurrent := run(8)

	assert.Equal(t, sequential.Games, concurrent.Games)
	assert.Equal(t, sequential.Entities, concurrent.Entities)
	assert.Equal(t, sequential.Relationships, concurrent.Relationships)
	assert.Equal(t, sequential.Counters, concurrent.Counters)
	assert.Equal(t, 1, concurrent.Counters.SkippedFetchFailed)
}

func TestPipeline_ConcurrentConflictReportsFirstInOrder(t *testing.T) {
	items := []collection.RawCollectionItem{owned("1", "a"), owned("2", "b"), {Title: "no id", Own: true}}
	fetcher := newFakeFetcher(map[string]*collection.DetailRecord{
		"1": {Designers: collection.References{{ExternalID: "D1", Name: "Ann"}}},
		"2": {Designers: collection.References{{ExternalID: "D1", Name: "Anne"}}},
	})

	_, err := collection.NewPipeline(collection.WithConcurrency(4)).Run(context.Background(), items, fetcher)
	assert.True(t, collection.IsConflict(err))
	assert.NotErrorIs(t, err, collection.ErrMissingExternalID)
}

// blockingFetcher counts calls and holds every fetch until its context is done.
type blockingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *blockingFetcher) FetchDetail(ctx context.Context, _ string) (*collection.DetailRecord, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *blockingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPipeline_ConcurrentAbortStopsFetching(t *testing.T) {
	items := []collection.RawCollectionItem{{Title: "Orphan", Own: true}}
	for i := 0; i < 50; i++ {
		items = append(items, owned(fmt.Sprintf("%d", i+1), "g"))
	}
	fetcher := &blockingFetcher{}

	result, err := collection.NewPipeline(collection.WithConcurrency(4)).Run(context.Background(), items, fetcher)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, collection.ErrMissingExternalID)

	// At most one worker pool's worth of items started, each with one retry.
	calls := fetcher.count()
	assert.LessOrEqual(t, calls, 8)
	assert.Equal(t, calls, fetcher.count(), "no fetch may start after Run returns")
}
