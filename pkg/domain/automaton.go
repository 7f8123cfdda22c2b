package domain

import (
	"fmt"
	"slices"
)

// Automaton holds what NFA and DFA share: states, transitions, the declared
// alphabet and a successor index. It is built once and read-only thereafter,
// so concurrent readers need no coordination.
type Automaton struct {
	states      map[string]*State
	stateOrder  []string
	transitions map[edge]Transition
	transOrder  []edge
	alphabet    []string
	index       map[string]map[string][]string

	// problems detected while building that Validate must report.
	problems []string
}

// edge identifies a transition by what it connects. Derived ids are not
// injective when state ids contain '-', so they are never used as keys.
type edge struct{ from, symbol, to string }

func newAutomaton(states []State, transitions []Transition, alphabet []string) Automaton {
	a := Automaton{
		states:      make(map[string]*State, len(states)),
		transitions: make(map[edge]Transition, len(transitions)),
		index:       make(map[string]map[string][]string),
	}

	for _, s := range states {
		if _, dup := a.states[s.ID]; dup {
			a.problems = append(a.problems, fmt.Sprintf("Duplicate state id: %s", s.ID))
			continue
		}
		st := s
		if st.Label == "" {
			st.Label = st.ID
		}
		a.states[st.ID] = &st
		a.stateOrder = append(a.stateOrder, st.ID)
	}

	supplied := make(map[string]edge)
	for _, t := range transitions {
		if IsEpsilon(t.Symbol) {
			t.Symbol = Epsilon
		}
		key := edge{t.From, t.Symbol, t.To}
		if t.ID == "" {
			t.ID = TransitionID(t.From, t.Symbol, t.To)
		} else {
			if prev, dup := supplied[t.ID]; dup && prev != key {
				a.problems = append(a.problems, fmt.Sprintf("Conflicting transition id: %s", t.ID))
				continue
			}
			supplied[t.ID] = key
		}
		if _, dup := a.transitions[key]; dup {
			continue
		}
		a.transitions[key] = t
		a.transOrder = append(a.transOrder, key)

		bySymbol, ok := a.index[t.From]
		if !ok {
			bySymbol = make(map[string][]string)
			a.index[t.From] = bySymbol
		}
		if !slices.Contains(bySymbol[t.Symbol], t.To) {
			bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t.To)
		}
	}

	a.alphabet = normalizeAlphabet(alphabet)
	return a
}

// normalizeAlphabet drops ε, duplicates and blanks and sorts the rest.
func normalizeAlphabet(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || IsEpsilon(s) {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// State returns a copy of the state with the given id.
func (a *Automaton) State(id string) (State, bool) {
	s, ok := a.states[id]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// HasState reports whether id names a state.
func (a *Automaton) HasState(id string) bool {
	_, ok := a.states[id]
	return ok
}

// States returns copies of all states in construction order.
func (a *Automaton) States() []State {
	out := make([]State, 0, len(a.stateOrder))
	for _, id := range a.stateOrder {
		out = append(out, *a.states[id])
	}
	return out
}

// StateIDs returns the state ids in construction order.
func (a *Automaton) StateIDs() []string {
	return slices.Clone(a.stateOrder)
}

// Transitions returns all transitions in construction order.
func (a *Automaton) Transitions() []Transition {
	out := make([]Transition, 0, len(a.transOrder))
	for _, id := range a.transOrder {
		out = append(out, a.transitions[id])
	}
	return out
}

// Alphabet returns the declared alphabet, sorted and without ε.
func (a *Automaton) Alphabet() []string {
	return slices.Clone(a.alphabet)
}

// InAlphabet reports whether symbol is a declared alphabet symbol.
func (a *Automaton) InAlphabet(symbol string) bool {
	_, found := slices.BinarySearch(a.alphabet, symbol)
	return found
}

// TransitionsFrom returns the transitions leaving id.
func (a *Automaton) TransitionsFrom(id string) []Transition {
	var out []Transition
	for _, tid := range a.transOrder {
		if t := a.transitions[tid]; t.From == id {
			out = append(out, t)
		}
	}
	return out
}

// TransitionsTo returns the transitions entering id.
func (a *Automaton) TransitionsTo(id string) []Transition {
	var out []Transition
	for _, tid := range a.transOrder {
		if t := a.transitions[tid]; t.To == id {
			out = append(out, t)
		}
	}
	return out
}

// Successors returns the destinations of id on symbol, in insertion order.
// The result is empty, never nil-dereferencing, when there are none.
func (a *Automaton) Successors(id, symbol string) []string {
	if IsEpsilon(symbol) {
		symbol = Epsilon
	}
	return slices.Clone(a.index[id][symbol])
}

// validate runs the structural checks common to NFA and DFA.
func (a *Automaton) validate() []string {
	var problems []string
	if len(a.states) == 0 {
		problems = append(problems, "Automaton must have at least one state")
	}
	if len(a.alphabet) == 0 {
		problems = append(problems, "Automaton must have non-empty alphabet")
	}
	problems = append(problems, a.problems...)
	for _, sym := range a.alphabet {
		if !IsAlphabetSymbol(sym) {
			problems = append(problems, fmt.Sprintf("Invalid alphabet symbol %q: symbols are single letters or digits", sym))
		}
	}

	for _, tid := range a.transOrder {
		t := a.transitions[tid]
		if !a.HasState(t.From) {
			problems = append(problems, fmt.Sprintf("Transition references invalid from-state: %s", t.From))
		}
		if !a.HasState(t.To) {
			problems = append(problems, fmt.Sprintf("Transition references invalid to-state: %s", t.To))
		}
		if t.Symbol != Epsilon && !a.InAlphabet(t.Symbol) {
			problems = append(problems, fmt.Sprintf("Transition %s uses symbol outside the alphabet: %s", t.ID, t.Symbol))
		}
	}
	return problems
}

// reachable returns every state reachable from seeds through any transition.
// Seeds that are not states are ignored.
func (a *Automaton) reachable(seeds []string) StateSet {
	seen := NewStateSet()
	stack := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if a.HasState(s) {
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Add(current) {
			continue
		}
		for _, next := range a.index[current] {
			for _, to := range next {
				if !seen.Has(to) {
					stack = append(stack, to)
				}
			}
		}
	}
	return seen
}

// restrict returns the states and transitions confined to keep.
func (a *Automaton) restrict(keep StateSet) ([]State, []Transition) {
	var states []State
	for _, id := range a.stateOrder {
		if keep.Has(id) {
			states = append(states, *a.states[id])
		}
	}
	var transitions []Transition
	for _, tid := range a.transOrder {
		t := a.transitions[tid]
		if keep.Has(t.From) && keep.Has(t.To) {
			transitions = append(transitions, t)
		}
	}
	return states, transitions
}

// markFlags keeps IsStart/IsFinal equal to set membership.
func (a *Automaton) markFlags(starts, finals StateSet) {
	for id, s := range a.states {
		s.IsStart = starts.Has(id)
		s.IsFinal = finals.Has(id)
	}
}
