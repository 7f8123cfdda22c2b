package simplify

// scan indexes the structure of a regex string without building a tree:
// paren pairs, alternatives of a scope and factors of an alternative.
type scan struct {
	r     []rune
	match []int
}

// factor is one atom followed by its stars: the atom spans [start, atomEnd)
// and the stars span [atomEnd, end).
type factor struct {
	start, atomEnd, end int
}

// span is a half-open rune range.
type span struct{ lo, hi int }

// newScan returns false when the parentheses are unbalanced, in which case
// no structural rule is attempted.
func newScan(s string) (*scan, bool) {
	r := []rune(s)
	match := make([]int, len(r))
	var open []int
	for i, c := range r {
		match[i] = -1
		switch c {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return nil, false
			}
			j := open[len(open)-1]
			open = open[:len(open)-1]
			match[i], match[j] = j, i
		}
	}
	if len(open) > 0 {
		return nil, false
	}
	return &scan{r: r, match: match}, true
}

func (sc *scan) text(lo, hi int) string { return string(sc.r[lo:hi]) }

// scopes lists the whole string followed by every group interior.
func (sc *scan) scopes() []span {
	out := []span{{0, len(sc.r)}}
	for i, c := range sc.r {
		if c == '(' {
			out = append(out, span{i + 1, sc.match[i]})
		}
	}
	return out
}

// alternatives splits a scope at its top-level '|'.
func (sc *scan) alternatives(s span) []span {
	var out []span
	lo := s.lo
	for i := s.lo; i < s.hi; i++ {
		switch sc.r[i] {
		case '(':
			i = sc.match[i]
		case '|':
			out = append(out, span{lo, i})
			lo = i + 1
		}
	}
	return append(out, span{lo, s.hi})
}

// factors splits an alternative into starred atoms.
func (sc *scan) factors(s span) []factor {
	var out []factor
	for i := s.lo; i < s.hi; {
		atomEnd := i + 1
		if sc.r[i] == '(' {
			atomEnd = sc.match[i] + 1
		}
		end := atomEnd
		for end < s.hi && sc.r[end] == '*' {
			end++
		}
		out = append(out, factor{i, atomEnd, end})
		i = end
	}
	return out
}

func (sc *scan) factorText(f factor) string { return sc.text(f.start, f.end) }

func (sc *scan) isGroup(f factor) bool { return sc.r[f.start] == '(' }
