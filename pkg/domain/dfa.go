package domain

import "fmt"

// DFA is a deterministic automaton with exactly one start state.
type DFA struct {
	Automaton
	start  string
	finals StateSet
}

// NewDFA builds a DFA. Determinism is not enforced here; Validate reports it.
func NewDFA(states []State, transitions []Transition, alphabet []string, start string, finals []string) *DFA {
	d := &DFA{
		Automaton: newAutomaton(states, transitions, alphabet),
		start:     start,
		finals:    NewStateSet(finals...),
	}
	starts := NewStateSet()
	if start != "" {
		starts.Add(start)
	}
	d.markFlags(starts, d.finals)
	return d
}

// StartState returns the start state id.
func (d *DFA) StartState() string { return d.start }

// FinalStates returns the final state ids, sorted.
func (d *DFA) FinalStates() []string { return d.finals.Sorted() }

// IsFinal reports whether id is a final state.
func (d *DFA) IsFinal(id string) bool { return d.finals.Has(id) }

// Validate returns every structural problem found, including ε-transitions
// and (state, symbol) pairs with more than one destination.
func (d *DFA) Validate() []string {
	problems := d.validate()
	switch {
	case d.start == "":
		problems = append(problems, "DFA must have exactly one start state")
	case !d.HasState(d.start):
		problems = append(problems, fmt.Sprintf("Start state not found: %s", d.start))
	}
	for _, id := range d.finals.Sorted() {
		if !d.HasState(id) {
			problems = append(problems, fmt.Sprintf("Final state not found: %s", id))
		}
	}
	for _, id := range d.stateOrder {
		bySymbol := d.index[id]
		if len(bySymbol[Epsilon]) > 0 {
			problems = append(problems, fmt.Sprintf("DFA state %s has an ε-transition", id))
		}
		for _, symbol := range d.alphabet {
			if targets := bySymbol[symbol]; len(targets) > 1 {
				problems = append(problems, fmt.Sprintf("DFA state %s is nondeterministic on %s: %s", id, symbol, SetID(targets)))
			}
		}
	}
	return problems
}

// Next returns the unique successor of id on symbol.
func (d *DFA) Next(id, symbol string) (string, bool) {
	targets := d.index[id][symbol]
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

// Accepts walks input from the start state. A symbol outside the alphabet or
// a missing transition rejects immediately.
func (d *DFA) Accepts(input []string) bool {
	current := d.start
	if !d.HasState(current) {
		return false
	}
	for _, symbol := range input {
		if !d.InAlphabet(symbol) {
			return false
		}
		next, ok := d.Next(current, symbol)
		if !ok {
			return false
		}
		current = next
	}
	return d.finals.Has(current)
}

// AcceptsString is Accepts with one symbol per rune.
func (d *DFA) AcceptsString(s string) bool {
	return d.Accepts(Symbols(s))
}

// PruneUnreachable returns a new DFA holding only the states reachable from
// the given seeds. The start state is kept even if it was pruned, so
// Validate reports it.
func (d *DFA) PruneUnreachable(from ...string) *DFA {
	keep := d.reachable(from)
	states, transitions := d.restrict(keep)
	var finals []string
	for _, id := range d.finals.Sorted() {
		if keep.Has(id) {
			finals = append(finals, id)
		}
	}
	return NewDFA(states, transitions, d.alphabet, d.start, finals)
}
