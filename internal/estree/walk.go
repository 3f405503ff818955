package estree

import (
	"errors"
	"fmt"
	"iter"
)

// ErrMissingCallee reports a call expression without a callee.
var ErrMissingCallee = errors.New("call expression without callee")

// CallSite is one call expression found during traversal.
type CallSite struct {
	Node *Node
	// Name is the invoked function name, empty when the callee does not name one.
	Name      string
	Arguments []*Node
}

// Nodes returns a lazy depth-first pre-order sequence of every node.
func Nodes(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}

		stack := []*Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n) {
				return
			}

			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// CallSites returns a lazy sequence of every call expression in the tree in
// source order. A malformed call expression is yielded with a non-nil error.
func CallSites(root *Node) iter.Seq2[CallSite, error] {
	return func(yield func(CallSite, error) bool) {
		for n := range Nodes(root) {
			if n.Type != KindCallExpression {
				continue
			}

			if n.Callee == nil {
				if !yield(CallSite{Node: n}, fmt.Errorf("%w at %s", ErrMissingCallee, n.Span)) {
					return
				}

				continue
			}

			name, _ := CalleeName(n)
			if !yield(CallSite{Node: n, Name: name, Arguments: n.Arguments}, nil) {
				return
			}
		}
	}
}

// CalleeName derives the invoked name of a call expression: the identifier
// for `t(...)`, the static property for `i18n.t(...)`.
func CalleeName(call *Node) (string, bool) {
	if call == nil || call.Callee == nil {
		return "", false
	}

	callee := call.Callee

	switch callee.Type {
	case KindIdentifier:
		return callee.Name, true
	case KindMemberExpression:
		if !callee.Computed && callee.Property != nil && callee.Property.Type == KindIdentifier {
			return callee.Property.Name, true
		}
	}

	return "", false
}

// String formats a span as start:end, or "?" when positions are unknown.
func (s *Span) String() string {
	if s == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", s.Start, s.End)
}
