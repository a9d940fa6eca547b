package bgg

import (
	"testing"

	"collection-prep/feature/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollection(t *testing.T) {
	t.Run("Reads items in order", func(t *testing.T) {
		items, err := ParseCollection([]byte(collectionXML))
		require.NoError(t, err)
		require.Len(t, items, 3)

		assert.Equal(t, collection.RawCollectionItem{
			ExternalID:    "13",
			Title:         "Catan",
			YearPublished: "1995",
			Thumbnail:     "https://cf.geekdo-images.com/catan_t.jpg",
			Own:           true,
		}, items[0])

		assert.Equal(t, "822", items[1].ExternalID)
		assert.Equal(t, "", items[1].YearPublished)
		assert.True(t, items[1].PrevOwned)
		assert.True(t, items[1].ForTrade)
		assert.False(t, items[1].Own)

		assert.False(t, items[2].Retained(), "wishlist alone does not retain")
	})

	t.Run("Single item", func(t *testing.T) {
		items, err := ParseCollection([]byte(`<items><item objectid="1"><name>Solo</name><status own="1"/></item></items>`))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Solo", items[0].Title)
	})

	t.Run("Empty collection", func(t *testing.T) {
		items, err := ParseCollection([]byte(`<items totalitems="0"/>`))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Message document", func(t *testing.T) {
		_, err := ParseCollection([]byte(`<message>Invalid username specified</message>`))
		assert.ErrorIs(t, err, ErrUnexpectedDocument)
		assert.ErrorContains(t, err, "Invalid username")
	})

	t.Run("Malformed XML", func(t *testing.T) {
		_, err := ParseCollection([]byte(`<items><item>`))
		assert.Error(t, err)
	})
}

func TestParseDetail(t *testing.T) {
	t.Run("Multiple publishers single designer", func(t *testing.T) {
		detail, err := ParseDetail([]byte(detailXML))
		require.NoError(t, err)

		assert.Equal(t, "Trade, build and settle.", detail.Description)
		assert.Equal(t, "https://cf.geekdo-images.com/catan_detail_t.jpg", detail.Thumbnail)
		assert.Equal(t, collection.References{
			{ExternalID: "37", Name: "KOSMOS"},
			{ExternalID: "4", Name: "Mayfair Games"},
		}, detail.Publishers)
		assert.Equal(t, collection.References{{ExternalID: "11", Name: "Klaus Teuber"}}, detail.Designers)
	})

	t.Run("Absent designers", func(t *testing.T) {
		detail, err := ParseDetail([]byte(detailNoDesignerXML))
		require.NoError(t, err)
		assert.Empty(t, detail.Designers)
		assert.Len(t, detail.Publishers, 1)
		assert.Equal(t, "", detail.Thumbnail)
	})

	t.Run("Catalog error element", func(t *testing.T) {
		_, err := ParseDetail([]byte(`<boardgames><boardgame><error message="Item not found"/></boardgame></boardgames>`))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Reference without id", func(t *testing.T) {
		_, err := ParseDetail([]byte(`<boardgames><boardgame><boardgamedesigner>Anonymous</boardgamedesigner></boardgame></boardgames>`))
		assert.ErrorContains(t, err, "designers")
	})

	t.Run("Wrong root", func(t *testing.T) {
		_, err := ParseDetail([]byte(`<items/>`))
		assert.ErrorIs(t, err, ErrUnexpectedDocument)
	})
}
