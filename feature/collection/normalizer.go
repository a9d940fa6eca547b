package collection

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SkipReason explains why a collection item produced no game.
type SkipReason string

const (
	SkipNotOwned    SkipReason = "not-owned"
	SkipFetchFailed SkipReason = "detail-fetch-failed"
)

// Outcome is the result of normalizing one collection item.
// When Kept is false, Reason is set and Game/Relationships are empty.
type Outcome struct {
	Kept          bool
	Game          GameRecord
	Relationships []RelationshipRecord

	Reason SkipReason
	// FetchErr is the error of the last detail fetch attempt of a skipped item.
	FetchErr error
	// Attempts is the number of detail fetches performed for the item.
	Attempts int
}

// acquisition is everything learned about an item before run-wide state is touched.
type acquisition struct {
	retained bool
	fetch    fetchResult
}

// Normalizer turns collection items into games and relationships for one run.
type Normalizer struct {
	seq     *Sequencer
	index   *EntityIndex
	builder *RelationshipBuilder
	logger  *zap.Logger
	hook    AttemptHook
}

// NewNormalizer creates a normalizer over the run state seq and index.
func NewNormalizer(seq *Sequencer, index *EntityIndex, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		seq:     seq,
		index:   index,
		builder: NewRelationshipBuilder(index),
		logger:  logger,
	}
}

// Process normalizes a single item, fetching its detail record through fetcher.
// It returns an error only for run-aborting conditions: a *ConflictError,
// ErrMissingExternalID or a cancelled context.
func (n *Normalizer) Process(ctx context.Context, item RawCollectionItem, fetcher DetailFetcher) (Outcome, error) {
	acq, err := n.acquire(ctx, item, fetcher)
	if err != nil {
		return Outcome{}, err
	}
	return n.apply(item, acq)
}

// acquire applies the retention filter and fetches the detail record with one retry.
// It does not touch the sequencer or the entity index, so it may run concurrently.
func (n *Normalizer) acquire(ctx context.Context, item RawCollectionItem, fetcher DetailFetcher) (acquisition, error) {
	if !item.Retained() {
		return acquisition{}, nil
	}
	if item.ExternalID == "" {
		return acquisition{}, fmt.Errorf("%w (title %q)", ErrMissingExternalID, item.Title)
	}

	hook := func(externalID string, attempt int, err error) {
		if err != nil && attempt == 1 {
			n.logger.Warn("Detail fetch failed, retrying",
				zap.String("external_id", externalID),
				zap.Error(err))
		}
		if n.hook != nil {
			n.hook(externalID, attempt, err)
		}
	}

	res := fetchWithRetry(ctx, fetcher, item.ExternalID, hook)
	if res.state == FetchFailed {
		// A cancelled run is not a fetch failure of this item.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return acquisition{}, ctxErr
		}
	}
	return acquisition{retained: true, fetch: res}, nil
}

// apply assigns ids and builds the records for an acquired item.
// It must only be called from the goroutine that owns the run state.
func (n *Normalizer) apply(item RawCollectionItem, acq acquisition) (Outcome, error) {
	if !acq.retained {
		n.logger.Debug("Item not retained",
			zap.String("external_id", item.ExternalID),
			zap.String("title", item.Title))
		return Outcome{Reason: SkipNotOwned}, nil
	}

	if acq.fetch.state != FetchSucceeded {
		n.logger.Error("Detail fetch failed twice, item skipped",
			zap.String("external_id", item.ExternalID),
			zap.String("title", item.Title),
			zap.Int("attempts", acq.fetch.attempts),
			zap.Error(acq.fetch.err))
		return Outcome{
			Reason:   SkipFetchFailed,
			FetchErr: acq.fetch.err,
			Attempts: acq.fetch.attempts,
		}, nil
	}

	detail := acq.fetch.detail
	game := GameRecord{
		InternalID:    n.seq.Next(),
		ExternalID:    item.ExternalID,
		Title:         item.Title,
		YearPublished: item.YearPublished,
		Thumbnail:     item.Thumbnail,
		Description:   detail.Description,
		Own:           item.Own,
		WantToBuy:     item.Want,
		PrevOwned:     item.PrevOwned,
		ForTrade:      item.ForTrade,
	}
	if game.Thumbnail == "" {
		game.Thumbnail = detail.Thumbnail
	}

	var edges []RelationshipRecord
	for _, set := range detail.referenceSets() {
		linked, err := n.builder.Link(game.InternalID, set.refs, set.kind)
		if err != nil {
			return Outcome{}, fmt.Errorf("game %s: %w", item.ExternalID, err)
		}
		edges = append(edges, linked...)
	}

	return Outcome{
		Kept:          true,
		Game:          game,
		Relationships: edges,
		Attempts:      acq.fetch.attempts,
	}, nil
}
