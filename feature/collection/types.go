package collection

import "context"

// Kind labels the relationship between a game and an entity.
type Kind string

const (
	// KindPublisher links a game to one of its publishers.
	KindPublisher Kind = "Publisher"
	// KindDesigner links a game to one of its designers.
	KindDesigner Kind = "Designer"
)

// RawCollectionItem is a single entry of the user's collection as decoded from the source.
type RawCollectionItem struct {
	// ExternalID is the catalog's object id for the game.
	ExternalID string
	// Title is the display name; empty when the source omitted it.
	Title string
	// YearPublished is kept as the raw string the source returned.
	YearPublished string
	// Thumbnail is the thumbnail URL from the collection listing, if any.
	Thumbnail string

	Own       bool
	Want      bool
	PrevOwned bool
	ForTrade  bool
}

// Retained reports whether the item passes the ownership filter.
func (i RawCollectionItem) Retained() bool {
	return i.Own || i.Want || i.PrevOwned || i.ForTrade
}

// Reference points at an entity (designer, publisher) from a detail record.
type Reference struct {
	ExternalID string
	Name       string
}

// References is a normalized, possibly empty, sequence of entity references.
type References []Reference

// DetailRecord is the per-item detail payload returned by a DetailFetcher.
type DetailRecord struct {
	Description string
	Thumbnail   string
	Publishers  References
	Designers   References
}

// referenceSets returns the reference kinds of the record in resolution order.
func (d *DetailRecord) referenceSets() []struct {
	kind Kind
	refs References
} {
	return []struct {
		kind Kind
		refs References
	}{
		{KindPublisher, d.Publishers},
		{KindDesigner, d.Designers},
	}
}

// DetailFetcher retrieves the detail record of a single game by external id.
// Implementations wrap their own timeouts; the pipeline only reacts to success or failure.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, externalID string) (*DetailRecord, error)
}

// DetailFetcherFunc adapts a plain function to the DetailFetcher interface.
type DetailFetcherFunc func(ctx context.Context, externalID string) (*DetailRecord, error)

// FetchDetail calls f(ctx, externalID).
func (f DetailFetcherFunc) FetchDetail(ctx context.Context, externalID string) (*DetailRecord, error) {
	return f(ctx, externalID)
}

// GameRecord is a normalized, retained game.
type GameRecord struct {
	InternalID    int
	ExternalID    string
	Title         string
	YearPublished string
	Thumbnail     string
	Description   string
	Own           bool
	WantToBuy     bool
	PrevOwned     bool
	ForTrade      bool
}

// EntityRecord is a deduplicated designer or publisher.
type EntityRecord struct {
	InternalID int
	ExternalID string
	Name       string
}

// RelationshipRecord is a typed edge between a game and an entity.
type RelationshipRecord struct {
	GameInternalID   int
	EntityInternalID int
	Kind             Kind
}

// Counters summarizes what happened to each collection item during a run.
type Counters struct {
	Kept               int `json:"kept"`
	SkippedNotOwned    int `json:"skipped_not_owned"`
	SkippedFetchFailed int `json:"skipped_fetch_failed"`
}

// Total returns the number of collection items the counters account for.
func (c Counters) Total() int {
	return c.Kept + c.SkippedNotOwned + c.SkippedFetchFailed
}

// Skip records an item that produced no game, with the reason and the final fetch error.
type Skip struct {
	ExternalID string
	Title      string
	Reason     SkipReason
	Err        error
}

// Result is the output of a successful pipeline run.
type Result struct {
	Games         []GameRecord
	Entities      []EntityRecord
	Relationships []RelationshipRecord
	Counters      Counters
	// Skipped lists items that were skipped because their detail fetch failed twice.
	Skipped []Skip
}
