package xmltree

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	// AttrPrefix prefixes attribute keys in a parsed tree.
	AttrPrefix = "@"
	// TextKey holds the character data of elements that also carry attributes or children.
	TextKey = "#text"
)

// node is the generic shape every element is unmarshaled into.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

// Parse converts an XML document into a loosely typed tree keyed by the root element name.
func Parse(data []byte) (map[string]any, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return map[string]any{root.XMLName.Local: toValue(root)}, nil
}

// toValue returns the bare text for leaf elements without attributes and a map otherwise.
// Repeated child names become []any, single children stay as their own value.
func toValue(n node) any {
	result := make(map[string]any, len(n.Attrs))
	for _, attr := range n.Attrs {
		result[AttrPrefix+attr.Name.Local] = attr.Value
	}

	content := strings.TrimSpace(n.Content)
	if len(n.Children) == 0 {
		if content == "" {
			return result
		}
		if len(result) == 0 {
			return content
		}
		result[TextKey] = content
		return result
	}
	if content != "" {
		result[TextKey] = content
	}

	groups := make(map[string][]any)
	var order []string
	for _, child := range n.Children {
		name := child.XMLName.Local
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], toValue(child))
	}
	for _, name := range order {
		values := groups[name]
		if len(values) == 1 {
			result[name] = values[0]
		} else {
			result[name] = values
		}
	}
	return result
}

// Map walks path through nested maps and returns the map found there.
func Map(tree map[string]any, path ...string) (map[string]any, bool) {
	current := tree
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// List returns v as a slice: nil yields nil, []any is returned as is and any other
// value becomes a one-element slice.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Text returns the character data of an element value, whether it was parsed as a bare
// string or as a map with a #text key.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		s, _ := t[TextKey].(string)
		return s
	default:
		return ""
	}
}

// Attr returns the named attribute of an element value.
func Attr(v any, name string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[AttrPrefix+name].(string)
	return s
}
