package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already simple", "a*", "a*"},
		{"empty input", "", "∅"},
		{"symbol parens", "(a)", "a"},
		{"starred group", "(a*)", "a*"},
		{"double star", "(a*)*", "a*"},
		{"nested group", "((a|b))", "a|b"},
		{"outer parens", "(a|b)", "a|b"},
		{"two groups kept", "(a|b)(c|d)", "(a|b)(c|d)"},
		{"starred union kept", "(a|b)*c", "(a|b)*c"},
		{"epsilon star", "ε*", "ε"},
		{"empty star", "∅*", "ε"},
		{"epsilon union", "ε|ε", "ε"},
		{"epsilon union in group", "a(ε|ε)", "a"},
		{"empty union left", "∅|a", "a"},
		{"empty union right", "(ab|∅)c", "abc"},
		{"empty concat", "a∅b", "∅"},
		{"empty concat in union", "a∅|b", "b"},
		{"epsilon concat", "εa", "a"},
		{"epsilon concat right", "aε", "a"},
		{"epsilon alternative kept", "(a|ε)b", "(a|ε)b"},
		{"duplicate alternative", "(a|a)b", "ab"},
		{"unbalanced left alone", "(a", "(a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Simplify(tt.input))
		})
	}
}

func TestSimplify_Trace(t *testing.T) {
	out, trace := New().Simplify("(a*)*")

	assert.Equal(t, "a*", out)
	assert.Equal(t, "(a*)*", trace.Original)
	assert.Equal(t, "a*", trace.Simplified)
	assert.Equal(t, 2, trace.Passes)
	assert.Equal(t, []string{"unwrap-group", "star-star"}, trace.Rules)
	assert.False(t, trace.Capped)
}

func TestSimplify_MaxPasses(t *testing.T) {
	out, trace := New(WithMaxPasses(1)).Simplify("(a*)*")

	assert.Equal(t, "a**", out)
	assert.Equal(t, 1, trace.Passes)
	assert.True(t, trace.Capped)

	_, trace = New(WithMaxPasses(1)).Simplify("a")
	assert.Equal(t, 0, trace.Passes)
	assert.False(t, trace.Capped)
}
