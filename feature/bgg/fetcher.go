package bgg

import (
	"context"

	"collection-prep/feature/collection"
)

// DetailFetcher decodes documents from a Source into detail records.
// A document that cannot be decoded counts as a failed fetch.
type DetailFetcher struct {
	source Source
}

var _ collection.DetailFetcher = (*DetailFetcher)(nil)

// NewDetailFetcher creates a fetcher over source.
func NewDetailFetcher(source Source) *DetailFetcher {
	return &DetailFetcher{source: source}
}

func (f *DetailFetcher) FetchDetail(ctx context.Context, externalID string) (*collection.DetailRecord, error) {
	raw, err := f.source.FetchBoardgame(ctx, externalID)
	if err != nil {
		return nil, err
	}
	return ParseDetail(raw)
}
