package bgg

import (
	"errors"
	"fmt"

	"collection-prep/core/utils"
	"collection-prep/core/xmltree"
	"collection-prep/feature/collection"
)

// ErrUnexpectedDocument is returned when a document lacks its expected root element.
var ErrUnexpectedDocument = errors.New("unexpected catalog document")

// ParseCollection parses and decodes a raw collection document.
func ParseCollection(raw []byte) ([]collection.RawCollectionItem, error) {
	tree, err := xmltree.Parse(raw)
	if err != nil {
		return nil, err
	}
	return DecodeCollection(tree)
}

// ParseDetail parses and decodes a raw boardgame document.
func ParseDetail(raw []byte) (*collection.DetailRecord, error) {
	tree, err := xmltree.Parse(raw)
	if err != nil {
		return nil, err
	}
	return DecodeDetail(tree)
}

// DecodeCollection reads the items of a collection tree in document order.
func DecodeCollection(tree map[string]any) ([]collection.RawCollectionItem, error) {
	if msg := xmltree.Text(tree["message"]); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedDocument, msg)
	}
	root, ok := tree["items"]
	if !ok {
		return nil, fmt.Errorf("%w: missing <items>", ErrUnexpectedDocument)
	}

	items := []collection.RawCollectionItem{}
	rootMap, ok := root.(map[string]any)
	if !ok {
		// <items/> or <items>text</items>: nothing to read
		return items, nil
	}

	for i, node := range xmltree.List(rootMap["item"]) {
		item, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected element, got %T", i, node)
		}
		status := item["status"]
		items = append(items, collection.RawCollectionItem{
			ExternalID:    xmltree.Attr(item, "objectid"),
			Title:         xmltree.Text(item["name"]),
			YearPublished: xmltree.Text(item["yearpublished"]),
			Thumbnail:     xmltree.Text(item["thumbnail"]),
			Own:           utils.ToBool(xmltree.Attr(status, "own")),
			Want:          utils.ToBool(xmltree.Attr(status, "want")),
			PrevOwned:     utils.ToBool(xmltree.Attr(status, "prevowned")),
			ForTrade:      utils.ToBool(xmltree.Attr(status, "fortrade")),
		})
	}
	return items, nil
}

// DecodeDetail reads the first boardgame of a detail tree.
func DecodeDetail(tree map[string]any) (*collection.DetailRecord, error) {
	root, ok := xmltree.Map(tree, "boardgames")
	if !ok {
		return nil, fmt.Errorf("%w: missing <boardgames>", ErrUnexpectedDocument)
	}
	games := xmltree.List(root["boardgame"])
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: missing <boardgame>", ErrUnexpectedDocument)
	}
	game, ok := games[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: empty <boardgame>", ErrUnexpectedDocument)
	}
	if errNode, failed := game["error"]; failed {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, xmltree.Attr(errNode, "message"))
	}

	publishers, err := collection.NormalizeReferences(game["boardgamepublisher"], decodeReference)
	if err != nil {
		return nil, fmt.Errorf("publishers: %w", err)
	}
	designers, err := collection.NormalizeReferences(game["boardgamedesigner"], decodeReference)
	if err != nil {
		return nil, fmt.Errorf("designers: %w", err)
	}

	return &collection.DetailRecord{
		Description: xmltree.Text(game["description"]),
		Thumbnail:   xmltree.Text(game["thumbnail"]),
		Publishers:  publishers,
		Designers:   designers,
	}, nil
}

// decodeReference reads <boardgamepublisher objectid="7">Name</boardgamepublisher>.
func decodeReference(node any) (collection.Reference, error) {
	id := xmltree.Attr(node, "objectid")
	if id == "" {
		return collection.Reference{}, errors.New("reference without objectid")
	}
	return collection.Reference{ExternalID: id, Name: xmltree.Text(node)}, nil
}
