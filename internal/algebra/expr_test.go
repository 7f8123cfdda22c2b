package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	a, b, c := Symbol("a"), Symbol("b"), Symbol("c")

	tests := []struct {
		name string
		expr *Expr
		want string
	}{
		{"symbol", a, "a"},
		{"epsilon alias", Symbol("epsilon"), "ε"},
		{"empty symbol", Symbol("∅"), "∅"},
		{"union sorted", Union(b, a), "(a|b)"},
		{"union commutative", Union(a, b), "(a|b)"},
		{"union drops empty", Union(Empty(), a), "a"},
		{"union only empty", Union(Empty(), Empty()), "∅"},
		{"union dedupes", Union(a, a), "a"},
		{"union flattens", Union(Union(c, a), b), "(a|b|c)"},
		{"union keeps epsilon", Union(a, Epsilon()), "(a|ε)"},
		{"concat", Concat(a, b), "ab"},
		{"concat empty annihilates", Concat(a, Empty(), b), "∅"},
		{"concat epsilon identity", Concat(Epsilon(), a, Epsilon()), "a"},
		{"concat of nothing", Concat(), "ε"},
		{"concat keeps union parens", Concat(Union(a, b), c), "(a|b)c"},
		{"concat flattens", Concat(Concat(a, b), c), "abc"},
		{"star symbol", Star(a), "a*"},
		{"star union", Star(Union(a, b)), "(a|b)*"},
		{"star concat", Star(Concat(a, b)), "(ab)*"},
		{"star idempotent", Star(Star(a)), "a*"},
		{"star epsilon", Star(Epsilon()), "ε"},
		{"star empty", Star(Empty()), "ε"},
		{"elimination shape", Concat(a, Star(b), c), "ab*c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindUnion, Union(Symbol("a"), Symbol("b")).Kind())
	assert.Equal(t, KindSymbol, Union(Symbol("a")).Kind())
	assert.True(t, Concat(Symbol("a"), Empty()).IsEmpty())
	assert.True(t, Star(Empty()).IsEpsilon())
	assert.Len(t, Concat(Symbol("a"), Symbol("b"), Symbol("c")).Operands(), 3)
	assert.True(t, Equal(Union(Symbol("b"), Symbol("a")), Union(Symbol("a"), Symbol("b"))))
	assert.Equal(t, "star", KindStar.String())
}
