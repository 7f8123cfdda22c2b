// Package simplify makes regexes produced by state elimination easier to
// read. It is a cosmetic pass of textual rewrites, not a canonicalizer: the
// output is language-equivalent to the input but not necessarily minimal.
package simplify

import (
	"slices"

	"github.com/aretw0/regula/pkg/domain"
)

// Trace records what a simplification did.
type Trace struct {
	Original   string   `json:"originalRegex"`
	Simplified string   `json:"simplifiedRegex"`
	Passes     int      `json:"passes"`
	Rules      []string `json:"rulesApplied"`
	Capped     bool     `json:"capped,omitempty"`
}

// Option configures a Simplifier.
type Option func(*Simplifier)

// WithMaxPasses caps the number of passes. Zero or less means run until no
// rule applies, which always terminates since every rule shortens the text.
func WithMaxPasses(n int) Option {
	return func(s *Simplifier) {
		s.maxPasses = n
	}
}

// Simplifier applies the rewrite rules in a fixed order, pass after pass,
// until a pass changes nothing.
type Simplifier struct {
	rules     []rule
	maxPasses int
}

// New creates a Simplifier.
func New(opts ...Option) *Simplifier {
	s := &Simplifier{rules: defaultRules}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simplify rewrites regex and reports the passes and rules involved.
func (s *Simplifier) Simplify(regex string) (string, Trace) {
	trace := Trace{Original: regex, Rules: []string{}}
	if regex == "" {
		regex = domain.EmptySet
	}

	current := regex
	for {
		if s.maxPasses > 0 && trace.Passes >= s.maxPasses {
			trace.Capped = s.pass(current, nil) != current
			break
		}
		next := s.pass(current, &trace.Rules)
		if next == current {
			break
		}
		current = next
		trace.Passes++
	}

	trace.Simplified = current
	return current, trace
}

// pass runs every rule to saturation once, in order. fired collects the
// names of rules that changed something, when not nil.
func (s *Simplifier) pass(regex string, fired *[]string) string {
	for _, r := range s.rules {
		for {
			next := r.apply(regex)
			if next == regex {
				break
			}
			regex = next
			if fired != nil && !slices.Contains(*fired, r.name) {
				*fired = append(*fired, r.name)
			}
		}
	}
	return regex
}

// Simplify runs a default Simplifier.
func Simplify(regex string) string {
	out, _ := New().Simplify(regex)
	return out
}
