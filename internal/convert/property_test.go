package convert

import (
	"strings"
	"testing"

	"github.com/coregx/coregex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/regula/pkg/domain"
)

const maxCorpusLen = 6

// corpus returns every string over alphabet of length at most maxLen.
func corpus(alphabet []string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, prefix := range frontier {
			for _, s := range alphabet {
				next = append(next, prefix+s)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// reference compiles regex into a coregex matcher anchored at both ends.
// ε becomes an empty group; ∅ has no counterpart and is not supported.
func reference(t *testing.T, regex string) *coregex.Regex {
	t.Helper()
	require.NotContains(t, regex, domain.EmptySet)
	translated := strings.ReplaceAll(regex, domain.Epsilon, "(?:)")
	re, err := coregex.Compile("^(?:" + translated + ")$")
	require.NoError(t, err, "reference for %q", regex)
	return re
}

var propertyRegexes = []string{
	"a",
	"a*",
	"ab",
	"a|b",
	"(a|b)*abb",
	"(ab)*",
	"a(b|c)*",
	"(a|ε)b",
	"((a|b)(a|b))*",
	"(a*b*)*c",
	"ab*|ba*",
	"(0|1)*1(0|1)",
}

func alphabetOf(regex string) []string {
	seen := domain.NewStateSet()
	for _, r := range regex {
		if s := string(r); r != '(' && r != ')' && r != '|' && r != '*' && s != domain.Epsilon {
			seen.Add(s)
		}
	}
	// one symbol outside the alphabet exercises rejection
	seen.Add("z")
	return seen.Sorted()
}

func TestProperty_RegexToDFAMatchesReference(t *testing.T) {
	for _, regex := range propertyRegexes {
		t.Run(regex, func(t *testing.T) {
			dfa := mustDFA(t, regex)
			re := reference(t, regex)
			for _, s := range corpus(alphabetOf(regex), maxCorpusLen) {
				assert.Equal(t, re.MatchString(s), dfa.AcceptsString(s), "%q on %q", regex, s)
			}
		})
	}
}

func TestProperty_ConstructedDFAsAreWellFormed(t *testing.T) {
	for _, regex := range propertyRegexes {
		dfa := mustDFA(t, regex)
		assert.Empty(t, dfa.Validate(), regex)

		res := NFAToDFA(toNFA(dfa))
		require.True(t, res.Success, res.Err())
		assert.Empty(t, res.Value.Validate(), regex)
		assert.Equal(t, res.Value.StateIDs(), res.Value.PruneUnreachable(res.Value.StartState()).StateIDs(),
			"every state of %q is reachable", regex)
	}
}

// toNFA relabels a DFA as an NFA and sprinkles in an ε-detour so the subset
// construction has closures to compute.
func toNFA(d *domain.DFA) *domain.NFA {
	states := append(d.States(), domain.NewState("detour"))
	transitions := append(d.Transitions(),
		domain.NewTransition(d.StartState(), domain.Epsilon, "detour"),
		domain.NewTransition("detour", domain.Epsilon, d.StartState()),
	)
	return domain.NewNFA(states, transitions, d.Alphabet(), []string{d.StartState()}, d.FinalStates())
}

func TestProperty_SubsetConstruction(t *testing.T) {
	nfas := map[string]*domain.NFA{
		"fixture": nfaFixture(),
		"ends in ab": domain.NewNFA(
			[]domain.State{domain.NewState("s"), domain.NewState("m"), domain.NewState("f")},
			[]domain.Transition{
				domain.NewTransition("s", "a", "s"),
				domain.NewTransition("s", "b", "s"),
				domain.NewTransition("s", "a", "m"),
				domain.NewTransition("m", "b", "f"),
			},
			[]string{"a", "b"}, []string{"s"}, []string{"f"}),
		"two starts with epsilon cycle": domain.NewNFA(
			[]domain.State{domain.NewState("p"), domain.NewState("q"), domain.NewState("r")},
			[]domain.Transition{
				domain.NewTransition("p", domain.Epsilon, "q"),
				domain.NewTransition("q", domain.Epsilon, "p"),
				domain.NewTransition("q", "a", "r"),
				domain.NewTransition("r", "epsilon", "p"),
				domain.NewTransition("r", "b", "r"),
			},
			[]string{"a", "b"}, []string{"p", "r"}, []string{"r"}),
	}

	for name, nfa := range nfas {
		t.Run(name, func(t *testing.T) {
			res := NFAToDFA(nfa)
			require.True(t, res.Success, res.Err())
			for _, s := range corpus([]string{"a", "b", "z"}, maxCorpusLen) {
				assert.Equal(t, nfa.AcceptsString(s), res.Value.AcceptsString(s), "%q", s)
			}
		})
	}
}

func TestProperty_StateEliminationRoundTrip(t *testing.T) {
	for _, regex := range propertyRegexes {
		t.Run(regex, func(t *testing.T) {
			dfa := mustDFA(t, regex)

			forward := DFAToRegex(dfa)
			require.True(t, forward.Success, forward.Err())
			backward := DFAToRegex(dfa, WithEliminationOrder(Reverse))
			require.True(t, backward.Success, backward.Err())

			d1 := mustDFA(t, forward.Value)
			d2 := mustDFA(t, backward.Value)
			re := reference(t, forward.Value)
			for _, s := range corpus(alphabetOf(regex), maxCorpusLen) {
				want := dfa.AcceptsString(s)
				assert.Equal(t, want, d1.AcceptsString(s), "%q via %s", s, forward.Value)
				assert.Equal(t, want, d2.AcceptsString(s), "%q via %s (reversed)", s, backward.Value)
				assert.Equal(t, want, re.MatchString(s), "%q via reference of %s", s, forward.Value)
			}
		})
	}
}
