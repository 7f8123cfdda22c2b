package domain

import (
	"fmt"
	"slices"
)

// NFA is a nondeterministic automaton with ε-transitions and a non-empty
// set of start states.
type NFA struct {
	Automaton
	starts StateSet
	finals StateSet
}

// NewNFA builds an NFA. The "epsilon" symbol alias is normalized to ε and
// ε is dropped from the alphabet. Start/final flags on the given states are
// overwritten from starts and finals.
func NewNFA(states []State, transitions []Transition, alphabet, starts, finals []string) *NFA {
	n := &NFA{
		Automaton: newAutomaton(states, transitions, alphabet),
		starts:    NewStateSet(starts...),
		finals:    NewStateSet(finals...),
	}
	n.markFlags(n.starts, n.finals)
	return n
}

// StartStates returns the start state ids, sorted.
func (n *NFA) StartStates() []string { return n.starts.Sorted() }

// FinalStates returns the final state ids, sorted.
func (n *NFA) FinalStates() []string { return n.finals.Sorted() }

// IsFinal reports whether id is a final state.
func (n *NFA) IsFinal(id string) bool { return n.finals.Has(id) }

// Validate returns every structural problem found. An empty result means the
// NFA is well formed.
func (n *NFA) Validate() []string {
	problems := n.validate()
	if len(n.starts) == 0 {
		problems = append(problems, "NFA must have at least one start state")
	}
	for _, id := range n.starts.Sorted() {
		if !n.HasState(id) {
			problems = append(problems, fmt.Sprintf("Start state not found: %s", id))
		}
	}
	for _, id := range n.finals.Sorted() {
		if !n.HasState(id) {
			problems = append(problems, fmt.Sprintf("Final state not found: %s", id))
		}
	}
	return problems
}

// EpsilonClosure returns every state reachable from states through ε-moves
// alone, the states themselves included.
func (n *NFA) EpsilonClosure(states StateSet) StateSet {
	closure := states.Clone()
	work := states.Sorted()
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		for _, next := range n.index[current][Epsilon] {
			if closure.Add(next) {
				work = append(work, next)
			}
		}
	}
	return closure
}

// Move returns the states reachable from states on one symbol, without closure.
func (n *NFA) Move(states StateSet, symbol string) StateSet {
	out := NewStateSet()
	for id := range states {
		for _, to := range n.index[id][symbol] {
			out.Add(to)
		}
	}
	return out
}

// Accepts reports whether some path from a start state consumes exactly
// input and ends in a final state. Symbols outside the alphabet reject.
func (n *NFA) Accepts(input []string) bool {
	current := n.EpsilonClosure(n.starts)
	for _, symbol := range input {
		if !n.InAlphabet(symbol) {
			return false
		}
		current = n.EpsilonClosure(n.Move(current, symbol))
		if len(current) == 0 {
			return false
		}
	}
	return current.Intersects(n.finals)
}

// AcceptsString is Accepts with one symbol per rune.
func (n *NFA) AcceptsString(s string) bool {
	return n.Accepts(Symbols(s))
}

// PruneUnreachable returns a new NFA holding only the states reachable from
// the given seeds, and the transitions among them.
func (n *NFA) PruneUnreachable(from ...string) *NFA {
	keep := n.reachable(from)
	states, transitions := n.restrict(keep)
	var starts, finals []string
	for _, id := range n.starts.Sorted() {
		if keep.Has(id) {
			starts = append(starts, id)
		}
	}
	for _, id := range n.finals.Sorted() {
		if keep.Has(id) {
			finals = append(finals, id)
		}
	}
	return NewNFA(states, transitions, n.alphabet, starts, finals)
}

// Symbols splits s into one symbol per rune.
func Symbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return slices.Clip(out)
}
