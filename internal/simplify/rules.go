package simplify

import (
	"github.com/coregx/coregex"

	"github.com/aretw0/regula/pkg/domain"
)

// rule rewrites one or more sites of a regex. Every rule strictly shortens
// its input, which bounds the number of rewrites by the input length.
type rule struct {
	name  string
	apply func(string) string
}

// pattern rules are plain regex substitutions over atoms that cannot be
// split by surrounding syntax.
func pattern(name, expr, repl string) rule {
	re := coregex.MustCompile(expr)
	return rule{name: name, apply: func(s string) string { return re.ReplaceAllString(s, repl) }}
}

// splice is a structural rewrite of [lo, hi) with repl.
type splice struct {
	lo, hi int
	repl   string
}

// structural lifts a site finder into a rule that rewrites the first site.
func structural(name string, find func(*scan) (splice, bool)) rule {
	return rule{name: name, apply: func(s string) string {
		sc, ok := newScan(s)
		if !ok {
			return s
		}
		sp, found := find(sc)
		if !found {
			return s
		}
		return sc.text(0, sp.lo) + sp.repl + sc.text(sp.hi, len(sc.r))
	}}
}

var defaultRules = []rule{
	pattern("unwrap-symbol", `\(([\pL\pN∅])\)`, "$1"),
	pattern("epsilon-star", `ε\*`, domain.Epsilon),
	pattern("epsilon-plus", `ε\+`, domain.Epsilon),
	pattern("epsilon-union", `(^|[(|])ε\|ε([|)]|$)`, "$1ε$2"),
	pattern("empty-star", `∅\*`, domain.Epsilon),
	pattern("empty-plus", `∅\+`, domain.EmptySet),
	structural("empty-union", emptyUnion),
	structural("empty-concat", emptyConcat),
	structural("epsilon-concat", epsilonConcat),
	structural("duplicate-alternative", duplicateAlternative),
	structural("star-star", starStar),
	structural("unwrap-group", unwrapGroup),
	structural("outer-parens", outerParens),
}

// dropAlternative removes alternative k of alts together with one adjacent '|'.
func dropAlternative(alts []span, k int) splice {
	if k < len(alts)-1 {
		return splice{lo: alts[k].lo, hi: alts[k+1].lo}
	}
	return splice{lo: alts[k-1].hi, hi: alts[k].hi}
}

// ∅|x and x|∅ become x.
func emptyUnion(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		alts := sc.alternatives(scope)
		if len(alts) < 2 {
			continue
		}
		for k, alt := range alts {
			if sc.text(alt.lo, alt.hi) == domain.EmptySet {
				return dropAlternative(alts, k), true
			}
		}
	}
	return splice{}, false
}

// A concatenation with a ∅ factor is ∅.
func emptyConcat(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		for _, alt := range sc.alternatives(scope) {
			fs := sc.factors(alt)
			if len(fs) < 2 {
				continue
			}
			for _, f := range fs {
				if sc.factorText(f) == domain.EmptySet {
					return splice{lo: alt.lo, hi: alt.hi, repl: domain.EmptySet}, true
				}
			}
		}
	}
	return splice{}, false
}

// εx and xε become x.
func epsilonConcat(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		for _, alt := range sc.alternatives(scope) {
			fs := sc.factors(alt)
			if len(fs) < 2 {
				continue
			}
			for _, f := range fs {
				if sc.factorText(f) == domain.Epsilon {
					return splice{lo: f.start, hi: f.end}, true
				}
			}
		}
	}
	return splice{}, false
}

// x|x becomes x.
func duplicateAlternative(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		alts := sc.alternatives(scope)
		if len(alts) < 2 {
			continue
		}
		seen := make(map[string]bool, len(alts))
		for k, alt := range alts {
			text := sc.text(alt.lo, alt.hi)
			if seen[text] {
				return dropAlternative(alts, k), true
			}
			seen[text] = true
		}
	}
	return splice{}, false
}

// R** becomes R*, which with unwrap-group also turns (R*)* into R*.
func starStar(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		for _, alt := range sc.alternatives(scope) {
			for _, f := range sc.factors(alt) {
				if f.end-f.atomEnd > 1 {
					return splice{lo: f.atomEnd + 1, hi: f.end}, true
				}
			}
		}
	}
	return splice{}, false
}

// A group holding a single factor loses its parentheses: (a)* is a*,
// ((a|b)) is (a|b) and (a*) is a*. An unstarred group holding a single
// alternative does too: (ab)c is abc.
func unwrapGroup(sc *scan) (splice, bool) {
	for _, scope := range sc.scopes() {
		for _, alt := range sc.alternatives(scope) {
			for _, f := range sc.factors(alt) {
				if !sc.isGroup(f) {
					continue
				}
				inner := span{f.start + 1, f.atomEnd - 1}
				if inner.lo == inner.hi {
					continue
				}
				alts := sc.alternatives(inner)
				if len(alts) == 1 && (f.end == f.atomEnd || len(sc.factors(alts[0])) == 1) {
					return splice{lo: f.start, hi: f.atomEnd, repl: sc.text(inner.lo, inner.hi)}, true
				}
			}
		}
	}
	return splice{}, false
}

// A pair of parentheses enclosing the whole expression is dropped.
func outerParens(sc *scan) (splice, bool) {
	n := len(sc.r)
	if n < 3 || sc.r[0] != '(' || sc.match[0] != n-1 {
		return splice{}, false
	}
	return splice{lo: 0, hi: n, repl: sc.text(1, n-1)}, true
}
