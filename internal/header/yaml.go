package header

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Header YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Header.
// Accepts a mapping whose values are scalars or nested mappings; the
// document key order is kept.
func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping for header, got %v", node.Line, kindName(node.Kind))
	}

	if h.values == nil {
		h.values = make(map[string]Value)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var key string

		err := keyNode.Decode(&key)
		if err != nil {
			return fmt.Errorf("line %d: invalid header key: %w", keyNode.Line, err)
		}

		v, err := decodeValue(valueNode)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		h.Set(key, v)
	}

	return nil
}

// MarshalYAML implements custom YAML marshaling for Header.
// Keys are emitted in insertion order.
func (h *Header) MarshalYAML() (any, error) {
	return h.node(), nil
}

func (h *Header) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for k, v := range h.All() {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			v.node(),
		)
	}

	return n
}

// --- Value YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := decodeValue(node)
	if err != nil {
		return err
	}

	*v = decoded

	return nil
}

// MarshalYAML implements custom YAML marshaling for Value.
func (v Value) MarshalYAML() (any, error) {
	if !v.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid header value")
	}

	return v.node(), nil
}

func (v Value) node() *yaml.Node {
	switch v.kind {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.scalar.(string)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.scalar.(int64), 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(v.scalar.(float64))}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.scalar.(bool))}
	case KindNested:
		return v.nested.node()
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func decodeValue(node *yaml.Node) (Value, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		nested := New()

		err := nested.UnmarshalYAML(node)
		if err != nil {
			return Value{}, err
		}

		return Nested(nested), nil

	case yaml.ScalarNode:
		return decodeScalar(node)

	default:
		return Value{}, fmt.Errorf("line %d: expected scalar or mapping, got %v", node.Line, kindName(node.Kind))
	}
}

func decodeScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil

	case "!!bool":
		var b bool

		err := node.Decode(&b)
		if err != nil {
			return Value{}, err
		}

		return Bool(b), nil

	case "!!int":
		var i int64

		err := node.Decode(&i)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return Int(i), nil

	case "!!float":
		var f float64

		err := node.Decode(&f)
		if err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return Float(f), nil

	default:
		return String(node.Value), nil
	}
}

// formatFloat keeps integral floats recognizable as floats ("5.0", not "5").
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
