package collection

import "fmt"

// ReferenceDecoder reads a single reference out of one element of a loosely typed tree.
type ReferenceDecoder func(node any) (Reference, error)

// NormalizeReferences turns a reference field of a decoded tree into a References sequence.
//
// The source encodes a single reference as a bare object and several references as a
// list. Both shapes, and an absent field (nil), are accepted here so that no caller has to
// special-case them: nil yields an empty sequence, an object yields one element and a list
// yields one element per entry, in order.
func NormalizeReferences(raw any, decode ReferenceDecoder) (References, error) {
	var nodes []any
	switch v := raw.(type) {
	case nil:
		return References{}, nil
	case []any:
		nodes = v
	case []map[string]any:
		nodes = make([]any, 0, len(v))
		for _, m := range v {
			nodes = append(nodes, m)
		}
	default:
		nodes = []any{v}
	}

	refs := make(References, 0, len(nodes))
	for i, node := range nodes {
		ref, err := decode(node)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
