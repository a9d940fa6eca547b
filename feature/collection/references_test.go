package collection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTestRef(node any) (Reference, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return Reference{}, errors.New("not an object")
	}
	id, _ := m["id"].(string)
	name, _ := m["name"].(string)
	return Reference{ExternalID: id, Name: name}, nil
}

func TestNormalizeReferences(t *testing.T) {
	single := map[string]any{"id": "P1", "name": "Acme"}

	t.Run("Absent", func(t *testing.T) {
		refs, err := NormalizeReferences(nil, decodeTestRef)
		require.NoError(t, err)
		assert.NotNil(t, refs)
		assert.Empty(t, refs)
	})

	t.Run("Single object equals one element list", func(t *testing.T) {
		fromObject, err := NormalizeReferences(single, decodeTestRef)
		require.NoError(t, err)
		fromList, err := NormalizeReferences([]any{single}, decodeTestRef)
		require.NoError(t, err)

		assert.Equal(t, References{{ExternalID: "P1", Name: "Acme"}}, fromObject)
		assert.Equal(t, fromList, fromObject)
	})

	t.Run("List keeps order", func(t *testing.T) {
		refs, err := NormalizeReferences([]map[string]any{
			{"id": "B", "name": "Bee"},
			{"id": "A", "name": "Ay"},
		}, decodeTestRef)
		require.NoError(t, err)
		assert.Equal(t, References{{"B", "Bee"}, {"A", "Ay"}}, refs)
	})

	t.Run("Decode error names the position", func(t *testing.T) {
		_, err := NormalizeReferences([]any{single, "bogus"}, decodeTestRef)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reference 1")
	})
}
