// Package syntax parses regular expressions into annotated syntax trees for
// direct DFA construction: each node gets nullable, firstpos and lastpos and
// the tree gets a followpos table over its leaf positions.
package syntax

import (
	"slices"

	"github.com/aretw0/regula/pkg/domain"
)

// Tree is an augmented, fully annotated syntax tree.
type Tree struct {
	Root *Node
	// Leaves holds every leaf; Leaves[p-1] has position p.
	Leaves []*Node
	// Followpos maps each position to the sorted positions that may follow it.
	Followpos map[int][]int
	// EndMarker is the position of the synthetic end-marker leaf.
	EndMarker int
}

// Build parses regex, augments it as (regex)# and computes attributes and
// followpos. The end marker is added structurally, so it never collides
// with an input symbol.
func Build(regex string) (*Tree, error) {
	root, leaves, err := Parse(regex)
	if err != nil {
		return nil, err
	}
	marker := &Node{Kind: NodeSymbol, Symbol: domain.EndMarker, Position: len(leaves) + 1}
	leaves = append(leaves, marker)

	t := &Tree{
		Root:      &Node{Kind: NodeConcat, Left: root, Right: marker},
		Leaves:    leaves,
		EndMarker: marker.Position,
	}
	return t, nil
}

// Augmented renders the augmented form of regex.
func Augmented(regex string) string {
	return "(" + regex + ")" + domain.EndMarker
}

// Analyze computes nullable, firstpos and lastpos bottom-up.
func (t *Tree) Analyze() {
	annotate(t.Root)
}

func annotate(n *Node) {
	if n == nil {
		return
	}
	annotate(n.Left)
	annotate(n.Right)

	switch n.Kind {
	case NodeSymbol:
		switch n.Symbol {
		case domain.Epsilon:
			n.Nullable = true
			n.Firstpos, n.Lastpos = []int{}, []int{}
		case domain.EmptySet:
			n.Nullable = false
			n.Firstpos, n.Lastpos = []int{}, []int{}
		default:
			n.Nullable = false
			n.Firstpos, n.Lastpos = []int{n.Position}, []int{n.Position}
		}
	case NodeUnion:
		n.Nullable = n.Left.Nullable || n.Right.Nullable
		n.Firstpos = union(n.Left.Firstpos, n.Right.Firstpos)
		n.Lastpos = union(n.Left.Lastpos, n.Right.Lastpos)
	case NodeConcat:
		n.Nullable = n.Left.Nullable && n.Right.Nullable
		if n.Left.Nullable {
			n.Firstpos = union(n.Left.Firstpos, n.Right.Firstpos)
		} else {
			n.Firstpos = slices.Clone(n.Left.Firstpos)
		}
		if n.Right.Nullable {
			n.Lastpos = union(n.Left.Lastpos, n.Right.Lastpos)
		} else {
			n.Lastpos = slices.Clone(n.Right.Lastpos)
		}
	case NodeStar:
		n.Nullable = true
		n.Firstpos = slices.Clone(n.Left.Firstpos)
		n.Lastpos = slices.Clone(n.Left.Lastpos)
	}
}

// ComputeFollowpos fills Followpos. Analyze must run first.
func (t *Tree) ComputeFollowpos() {
	t.Followpos = make(map[int][]int, len(t.Leaves))
	for _, leaf := range t.Leaves {
		t.Followpos[leaf.Position] = []int{}
	}
	t.follow(t.Root)
}

func (t *Tree) follow(n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case NodeConcat:
		for _, p := range n.Left.Lastpos {
			t.Followpos[p] = union(t.Followpos[p], n.Right.Firstpos)
		}
	case NodeStar:
		for _, p := range n.Lastpos {
			t.Followpos[p] = union(t.Followpos[p], n.Firstpos)
		}
	}
	t.follow(n.Left)
	t.follow(n.Right)
}

// Symbol returns the symbol of the leaf at position p.
func (t *Tree) Symbol(p int) string {
	if p < 1 || p > len(t.Leaves) {
		return ""
	}
	return t.Leaves[p-1].Symbol
}

// Alphabet returns the sorted leaf symbols, excluding ε, ∅ and the end marker.
func (t *Tree) Alphabet() []string {
	var out []string
	for _, leaf := range t.Leaves {
		if !domain.IsReserved(leaf.Symbol) {
			out = append(out, leaf.Symbol)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FollowposRow is one row of the followpos table.
type FollowposRow struct {
	Position  int    `json:"position"`
	Symbol    string `json:"symbol"`
	Followpos []int  `json:"followpos"`
}

// FollowposTable returns the followpos table ordered by position.
func (t *Tree) FollowposTable() []FollowposRow {
	rows := make([]FollowposRow, 0, len(t.Leaves))
	for _, leaf := range t.Leaves {
		rows = append(rows, FollowposRow{
			Position:  leaf.Position,
			Symbol:    leaf.Symbol,
			Followpos: slices.Clone(t.Followpos[leaf.Position]),
		})
	}
	return rows
}
