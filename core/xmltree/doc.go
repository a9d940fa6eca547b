// Package xmltree decodes XML documents into generic map trees.
//
// The catalog API answers with loosely typed XML. Rather than binding every response to
// a fixed struct, documents are decoded into nested map[string]any values that callers
// walk with a few helpers.
//
// # Tree Shape
//
//   - Attributes are stored under "@name".
//   - Character data is stored under "#text", or returned as a bare string when the
//     element has neither attributes nor children.
//   - A child name seen once maps to its value; a repeated child name maps to []any.
//
// The last rule means a list with a single entry looks like a plain object. Callers
// that expect a list pass the value through List.
//
// # Usage
//
//	tree, err := xmltree.Parse(body)
//	items, _ := xmltree.Map(tree, "items")
//	for _, item := range xmltree.List(items["item"]) {
//	    id := xmltree.Attr(item, "objectid")
//	    name := xmltree.Text(item.(map[string]any)["name"])
//	}
package xmltree
