// Package bgg is the catalog source of collection data.
//
// It fetches raw XML from the BoardGameGeek xmlapi, decodes it through core/xmltree
// into the input types of the normalization pipeline and offers the detail fetch
// capability the pipeline consumes.
//
// # Components
//
//   - Client: GET <base>/collection/<user> and GET <base>/boardgame/<id>. The collection
//     request is never retried. The catalog answers a collection it is still exporting
//     with a "request accepted" message, reported as ErrCollectionQueued.
//   - DecodeCollection / DecodeDetail: read the generic tree. Publisher and designer
//     fields go through collection.NormalizeReferences, since a single reference is
//     encoded as a bare element and several as a list.
//   - Source chain: Client, optionally wrapped by CachingSource (redis),
//     ArchivingSource (game-data/game-<id>.xml) and SharedSource (singleflight).
//     DirSource replays archived documents without network access.
//   - DetailFetcher: decodes a Source into collection.DetailRecord values. Documents
//     that do not decode count as failed fetches and go through the retry policy.
//
// # Usage
//
//	client := bgg.NewClient(cfg.BGG)
//	raw, err := client.FetchCollection(ctx, "alice")
//	items, err := bgg.ParseCollection(raw)
//
//	src := bgg.NewSharedSource(bgg.NewArchivingSource(client, "./data", logg))
//	result, err := pipeline.Run(ctx, items, bgg.NewDetailFetcher(src))
package bgg
