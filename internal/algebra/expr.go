// Package algebra is a small regular-expression AST whose constructors apply
// the ∅/ε absorption and identity laws, so labels built during state
// elimination never need textual clean-up to stay correct.
package algebra

import (
	"slices"
	"strings"

	"github.com/aretw0/regula/pkg/domain"
)

// Kind tags the variant held by an Expr.
type Kind int

const (
	KindEmpty Kind = iota
	KindEpsilon
	KindSymbol
	KindUnion
	KindConcat
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindEpsilon:
		return "epsilon"
	case KindSymbol:
		return "symbol"
	case KindUnion:
		return "union"
	case KindConcat:
		return "concat"
	case KindStar:
		return "star"
	}
	return "unknown"
}

// Expr is an immutable regular expression. Build it only through the
// constructors below.
type Expr struct {
	kind   Kind
	symbol string
	items  []*Expr
	text   string
}

var (
	empty   = &Expr{kind: KindEmpty, text: domain.EmptySet}
	epsilon = &Expr{kind: KindEpsilon, text: domain.Epsilon}
)

// Empty is the empty language ∅.
func Empty() *Expr { return empty }

// Epsilon is the language holding only the empty string.
func Epsilon() *Expr { return epsilon }

// Symbol matches one alphabet symbol. The reserved ε and ∅ markers map to
// their constants.
func Symbol(s string) *Expr {
	switch {
	case domain.IsEpsilon(s):
		return epsilon
	case s == domain.EmptySet:
		return empty
	}
	return &Expr{kind: KindSymbol, symbol: s, text: s}
}

// Union builds x1|x2|... Nested unions are flattened, ∅ operands dropped,
// duplicates collapsed and the operands ordered by their rendering, so the
// result does not depend on argument order.
func Union(xs ...*Expr) *Expr {
	var operands []*Expr
	seen := make(map[string]bool)
	var add func(x *Expr)
	add = func(x *Expr) {
		switch x.kind {
		case KindEmpty:
			return
		case KindUnion:
			for _, item := range x.items {
				add(item)
			}
			return
		}
		if seen[x.text] {
			return
		}
		seen[x.text] = true
		operands = append(operands, x)
	}
	for _, x := range xs {
		add(x)
	}

	switch len(operands) {
	case 0:
		return empty
	case 1:
		return operands[0]
	}
	slices.SortFunc(operands, func(a, b *Expr) int { return strings.Compare(a.text, b.text) })

	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = op.text
	}
	return &Expr{kind: KindUnion, items: operands, text: "(" + strings.Join(parts, "|") + ")"}
}

// Concat builds x1x2... Any ∅ operand makes the whole product ∅ and ε
// operands vanish.
func Concat(xs ...*Expr) *Expr {
	var operands []*Expr
	for _, x := range xs {
		switch x.kind {
		case KindEmpty:
			return empty
		case KindEpsilon:
			continue
		case KindConcat:
			operands = append(operands, x.items...)
		default:
			operands = append(operands, x)
		}
	}

	switch len(operands) {
	case 0:
		return epsilon
	case 1:
		return operands[0]
	}
	var b strings.Builder
	for _, op := range operands {
		b.WriteString(op.text)
	}
	return &Expr{kind: KindConcat, items: operands, text: b.String()}
}

// Star builds x*. ε* and ∅* are ε; a starred expression is not starred again.
func Star(x *Expr) *Expr {
	switch x.kind {
	case KindEmpty, KindEpsilon:
		return epsilon
	case KindStar:
		return x
	}
	text := x.text + "*"
	if x.kind == KindConcat {
		text = "(" + x.text + ")*"
	}
	return &Expr{kind: KindStar, items: []*Expr{x}, text: text}
}

// Kind returns the variant tag.
func (e *Expr) Kind() Kind { return e.kind }

// Operands returns the children of a union, concat or star.
func (e *Expr) Operands() []*Expr { return slices.Clone(e.items) }

// IsEmpty reports whether e is ∅.
func (e *Expr) IsEmpty() bool { return e.kind == KindEmpty }

// IsEpsilon reports whether e is ε.
func (e *Expr) IsEpsilon() bool { return e.kind == KindEpsilon }

// String renders e in the syntax the regex parser reads back.
func (e *Expr) String() string { return e.text }

// Equal reports structural equality of the normalized forms.
func Equal(a, b *Expr) bool { return a.text == b.text }
