package xmltree_test

import (
	"testing"

	"collection-prep/core/xmltree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Attributes text and repeated children", func(t *testing.T) {
		doc := `<items totalitems="2">
			<item objectid="10"><name sortindex="1">Alpha</name><status own="1"/></item>
			<item objectid="20"><name sortindex="1">Beta</name></item>
		</items>`

		tree, err := xmltree.Parse([]byte(doc))
		require.NoError(t, err)

		items, ok := xmltree.Map(tree, "items")
		require.True(t, ok)
		assert.Equal(t, "2", items["@totalitems"])

		list := xmltree.List(items["item"])
		require.Len(t, list, 2)
		assert.Equal(t, "10", xmltree.Attr(list[0], "objectid"))

		first := list[0].(map[string]any)
		assert.Equal(t, "Alpha", xmltree.Text(first["name"]))
		assert.Equal(t, "1", xmltree.Attr(first["status"], "own"))
	})

	t.Run("Single child is not wrapped", func(t *testing.T) {
		tree, err := xmltree.Parse([]byte(`<items><item objectid="1"/></items>`))
		require.NoError(t, err)

		items, _ := xmltree.Map(tree, "items")
		_, isMap := items["item"].(map[string]any)
		assert.True(t, isMap)
		assert.Len(t, xmltree.List(items["item"]), 1)
	})

	t.Run("Leaf without attributes is a bare string", func(t *testing.T) {
		tree, err := xmltree.Parse([]byte(`<game><year> 1995 </year><empty/></game>`))
		require.NoError(t, err)

		game, _ := xmltree.Map(tree, "game")
		assert.Equal(t, "1995", game["year"])
		assert.Equal(t, map[string]any{}, game["empty"])
		assert.Equal(t, "", xmltree.Text(game["empty"]))
	})

	t.Run("Mixed content keeps its text", func(t *testing.T) {
		tree, err := xmltree.Parse([]byte(`<game id="13">Catan <b>base</b> edition<year>1995</year></game>`))
		require.NoError(t, err)

		game, _ := xmltree.Map(tree, "game")
		assert.Equal(t, "Catan  edition", xmltree.Text(game))
		assert.Equal(t, "base", game["b"])
		assert.Equal(t, "1995", game["year"])
		assert.Equal(t, "13", xmltree.Attr(game, "id"))
	})

	t.Run("Indentation between children is dropped", func(t *testing.T) {
		tree, err := xmltree.Parse([]byte("<game>\n  <year>1995</year>\n</game>"))
		require.NoError(t, err)

		game, _ := xmltree.Map(tree, "game")
		assert.NotContains(t, game, xmltree.TextKey)
	})

	t.Run("Malformed input", func(t *testing.T) {
		_, err := xmltree.Parse([]byte(`<items><item>`))
		assert.Error(t, err)
	})
}

func TestHelpers(t *testing.T) {
	assert.Nil(t, xmltree.List(nil))
	assert.Equal(t, []any{"a", "b"}, xmltree.List([]any{"a", "b"}))
	assert.Equal(t, []any{"a"}, xmltree.List("a"))

	assert.Equal(t, "x", xmltree.Text(map[string]any{"#text": "x", "@id": "1"}))
	assert.Equal(t, "", xmltree.Text(42))
	assert.Equal(t, "", xmltree.Attr("bare", "id"))

	_, ok := xmltree.Map(map[string]any{"a": "leaf"}, "a")
	assert.False(t, ok)
}
