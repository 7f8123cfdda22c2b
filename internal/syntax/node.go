package syntax

import "slices"

// NodeKind tags a syntax tree node.
type NodeKind string

const (
	NodeSymbol NodeKind = "symbol"
	NodeConcat NodeKind = "concat"
	NodeUnion  NodeKind = "union"
	NodeStar   NodeKind = "star"
)

// Node is a syntax tree node. Leaves carry a 1-based Position in
// left-to-right order; a star keeps its operand in Left.
type Node struct {
	Kind     NodeKind `json:"type"`
	Symbol   string   `json:"symbol,omitempty"`
	Position int      `json:"position,omitempty"`
	Nullable bool     `json:"nullable"`
	Firstpos []int    `json:"firstpos"`
	Lastpos  []int    `json:"lastpos"`
	Left     *Node    `json:"left,omitempty"`
	Right    *Node    `json:"right,omitempty"`
}

// IsLeaf reports whether n is a symbol leaf.
func (n *Node) IsLeaf() bool { return n.Kind == NodeSymbol }

// Snapshot deep-copies the subtree rooted at n.
func (n *Node) Snapshot() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Firstpos = slices.Clone(n.Firstpos)
	c.Lastpos = slices.Clone(n.Lastpos)
	if c.Firstpos == nil {
		c.Firstpos = []int{}
	}
	if c.Lastpos == nil {
		c.Lastpos = []int{}
	}
	c.Left = n.Left.Snapshot()
	c.Right = n.Right.Snapshot()
	return &c
}

// String renders the subtree back to regex syntax, fully parenthesized
// where precedence needs it.
func (n *Node) String() string {
	switch n.Kind {
	case NodeSymbol:
		return n.Symbol
	case NodeStar:
		inner := n.Left.String()
		if !n.Left.IsLeaf() && n.Left.Kind != NodeStar {
			inner = "(" + inner + ")"
		}
		return inner + "*"
	case NodeConcat:
		return concatOperand(n.Left) + concatOperand(n.Right)
	case NodeUnion:
		return n.Left.String() + "|" + n.Right.String()
	}
	return ""
}

func concatOperand(n *Node) string {
	if n.Kind == NodeUnion {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// union merges two sorted position lists.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}
