// Package estree decodes ESTree-shaped syntax trees produced by external
// JavaScript parsers and walks them.
package estree

// Kind is the ESTree node type tag.
type Kind string

// Node kinds the replacer inspects. Every other kind is walked generically.
const (
	KindCallExpression   Kind = "CallExpression"
	KindIdentifier       Kind = "Identifier"
	KindMemberExpression Kind = "MemberExpression"
	KindLiteral          Kind = "Literal"
)

// Span is a pair of offsets into the source text, end exclusive.
// Offsets are in the parser's unit (UTF-16 code units for acorn).
type Span struct {
	Start int
	End   int
}

// Node is one syntax tree node. Only the fields of its kind are populated;
// children always holds every child node of any kind ordered by source position.
type Node struct {
	Type Kind
	// Span is nil when the parser did not report positions.
	Span *Span

	// Identifier
	Name string

	// CallExpression
	Callee    *Node
	Arguments []*Node

	// MemberExpression
	Object   *Node
	Property *Node
	Computed bool

	// Literal
	Value any
	Raw   string

	children []*Node
}

// Children returns the node's direct children in source order.
func (n *Node) Children() []*Node {
	return n.children
}

// Numeric is the source text of a numeric literal value without a float64
// form, such as a BigInt. It is never a string literal.
type Numeric string

// StringValue returns the literal's value when the node is a string literal.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Type != KindLiteral {
		return "", false
	}

	s, ok := n.Value.(string)

	return s, ok
}

// NewIdentifier builds an Identifier node.
func NewIdentifier(name string, span *Span) *Node {
	return &Node{Type: KindIdentifier, Name: name, Span: span}
}

// NewLiteral builds a Literal node holding value.
func NewLiteral(value any, raw string, span *Span) *Node {
	return &Node{Type: KindLiteral, Value: value, Raw: raw, Span: span}
}

// NewMember builds a MemberExpression node.
func NewMember(object, property *Node, computed bool, span *Span) *Node {
	return &Node{
		Type:     KindMemberExpression,
		Object:   object,
		Property: property,
		Computed: computed,
		Span:     span,
		children: compact(object, property),
	}
}

// NewCall builds a CallExpression node.
func NewCall(callee *Node, args []*Node, span *Span) *Node {
	return &Node{
		Type:      KindCallExpression,
		Callee:    callee,
		Arguments: args,
		Span:      span,
		children:  compact(append([]*Node{callee}, args...)...),
	}
}

// NewNode builds a node of any other kind with the given children.
func NewNode(kind Kind, span *Span, children ...*Node) *Node {
	return &Node{Type: kind, Span: span, children: compact(children...)}
}

func compact(nodes ...*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}

	return out
}
