package estree

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"
)

// ErrNoType is returned when an object expected to be a node has no type tag.
var ErrNoType = errors.New("estree: node without type")

// aliases folds Babel's node kinds onto the ESTree ones.
var aliases = map[string]Kind{
	"OptionalCallExpression":   KindCallExpression,
	"OptionalMemberExpression": KindMemberExpression,
	"StringLiteral":            KindLiteral,
	"NumericLiteral":           KindLiteral,
	"BooleanLiteral":           KindLiteral,
	"NullLiteral":              KindLiteral,
	"RegExpLiteral":            KindLiteral,
	"BigIntLiteral":            KindLiteral,
	"DecimalLiteral":           KindLiteral,
}

// metaFields never hold child nodes worth walking.
var metaFields = map[string]struct{}{
	"type":             {},
	"start":            {},
	"end":              {},
	"range":            {},
	"loc":              {},
	"extra":            {},
	"comments":         {},
	"leadingComments":  {},
	"trailingComments": {},
	"innerComments":    {},
	"tokens":           {},
	"errors":           {},
}

// Decode parses an ESTree JSON document into a tree.
func Decode(data []byte) (*Node, error) {
	n, err := decodeRoot(data)
	if err != nil {
		return nil, fmt.Errorf("decode estree: %w", err)
	}

	return n, nil
}

// UnmarshalJSON decodes one node and its whole subtree.
func (n *Node) UnmarshalJSON(data []byte) error {
	root, err := decodeRoot(data)
	if err != nil {
		return err
	}

	*n = *root

	return nil
}

// decodeRoot reads the document once into generic values and builds the
// tree from them, so every byte is scanned a single time whatever the depth.
func decodeRoot(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNoType
	}

	n, err := build(fields)
	if err != nil {
		return nil, err
	}

	if n == nil {
		return nil, ErrNoType
	}

	return n, nil
}

// build returns nil without error for objects that are not nodes.
func build(fields map[string]any) (*Node, error) {
	rawType, ok := fields["type"]
	if !ok {
		return nil, nil
	}

	typ, ok := rawType.(string)
	if !ok {
		return nil, fmt.Errorf("node type: want string, got %T", rawType)
	}

	n := &Node{Type: Kind(typ)}
	if kind, ok := aliases[typ]; ok {
		n.Type = kind
	}

	n.Span = decodeSpan(fields)

	if err := n.decodeScalars(typ, fields); err != nil {
		return nil, fmt.Errorf("%s: %w", typ, err)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		if _, skip := metaFields[key]; !skip {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	byKey := make(map[string][]*Node, len(keys))

	for _, key := range keys {
		nodes, err := buildChildren(fields[key])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ, key, err)
		}

		if len(nodes) == 0 {
			continue
		}

		byKey[key] = nodes
		n.children = append(n.children, nodes...)
	}

	sort.SliceStable(n.children, func(i, j int) bool {
		return startOf(n.children[i]) < startOf(n.children[j])
	})

	switch n.Type {
	case KindCallExpression:
		n.Callee = first(byKey["callee"])
		n.Arguments = byKey["arguments"]
	case KindMemberExpression:
		n.Object = first(byKey["object"])
		n.Property = first(byKey["property"])
	}

	return n, nil
}

func (n *Node) decodeScalars(typ string, fields map[string]any) error {
	switch n.Type {
	case KindIdentifier:
		if v, ok := fields["name"]; ok && v != nil {
			name, ok := v.(string)
			if !ok {
				return fmt.Errorf("name: want string, got %T", v)
			}

			n.Name = name
		}
	case KindMemberExpression:
		if v, ok := fields["computed"]; ok && v != nil {
			computed, ok := v.(bool)
			if !ok {
				return fmt.Errorf("computed: want bool, got %T", v)
			}

			n.Computed = computed
		}
	case KindLiteral:
		n.Value = literalValue(fields["value"])
		n.Raw = decodeRaw(fields)

		// ESTree parsers put BigInt digits in bigint; Babel keeps them in value.
		if digits, ok := fields["bigint"].(string); ok {
			n.Value = Numeric(digits)
		} else if s, ok := n.Value.(string); ok && (typ == "BigIntLiteral" || typ == "DecimalLiteral") {
			n.Value = Numeric(s)
		}
	}

	return nil
}

// literalValue turns decoded numbers into float64, the type JavaScript gives
// them, or into Numeric when they do not fit.
func literalValue(v any) any {
	num, ok := v.(json.Number)
	if !ok {
		return v
	}

	if f, err := num.Float64(); err == nil {
		return f
	}

	return Numeric(num.String())
}

// decodeRaw reads the literal source text from ESTree's raw or Babel's extra.raw.
func decodeRaw(fields map[string]any) string {
	if raw, ok := fields["raw"].(string); ok {
		return raw
	}

	if extra, ok := fields["extra"].(map[string]any); ok {
		if raw, ok := extra["raw"].(string); ok {
			return raw
		}
	}

	return ""
}

func decodeSpan(fields map[string]any) *Span {
	start, okStart := intValue(fields["start"])
	end, okEnd := intValue(fields["end"])

	if okStart && okEnd {
		return &Span{Start: start, End: end}
	}

	if rng, ok := fields["range"].([]any); ok && len(rng) == 2 {
		start, okStart := intValue(rng[0])
		end, okEnd := intValue(rng[1])

		if okStart && okEnd {
			return &Span{Start: start, End: end}
		}
	}

	return nil
}

func intValue(v any) (int, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}

	i, err := num.Int64()
	if err != nil {
		return 0, false
	}

	return int(i), true
}

func buildChildren(v any) ([]*Node, error) {
	switch v := v.(type) {
	case map[string]any:
		n, err := build(v)
		if err != nil || n == nil {
			return nil, err
		}

		return []*Node{n}, nil
	case []any:
		var nodes []*Node

		for _, item := range v {
			fields, ok := item.(map[string]any)
			if !ok {
				continue
			}

			n, err := build(fields)
			if err != nil {
				return nil, err
			}

			if n != nil {
				nodes = append(nodes, n)
			}
		}

		return nodes, nil
	}

	return nil, nil
}

func startOf(n *Node) int {
	if n.Span == nil {
		return math.MaxInt
	}

	return n.Span.Start
}

func first(nodes []*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}

	return nodes[0]
}
