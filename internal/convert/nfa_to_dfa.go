package convert

import (
	"fmt"

	"github.com/aretw0/regula/pkg/domain"
)

// closures memoizes ε-closures per distinct state set. The canonical set id
// escapes separators inside members, so it is a faithful key for the set.
type closures struct {
	nfa   *domain.NFA
	cache map[string]domain.StateSet
}

func (c *closures) of(states domain.StateSet) domain.StateSet {
	key := states.ID()
	if cl, ok := c.cache[key]; ok {
		return cl
	}
	cl := c.nfa.EpsilonClosure(states)
	c.cache[key] = cl
	return cl
}

// NFAToDFA runs the subset construction. DFA states are named by the
// canonical id of the NFA state set they stand for.
func NFAToDFA(nfa *domain.NFA, opts ...Option) domain.Result[*domain.DFA] {
	o := newOptions(opts)
	rec := newRecorder(o)

	return run(rec, func() (*domain.DFA, error) {
		if problems := nfa.Validate(); len(problems) > 0 {
			return nil, domain.NewValidationError("Invalid NFA", problems...)
		}
		spec := nfa.Spec()
		rec.add(domain.StepValidate, "Validate Input NFA",
			"Check that the input NFA is well-formed", ValidatePayload{NFA: &spec})

		cl := &closures{nfa: nfa, cache: make(map[string]domain.StateSet)}
		table := make(map[string][]string)
		for _, id := range nfa.StateIDs() {
			table[id] = cl.of(domain.NewStateSet(id)).Sorted()
		}
		rec.add(domain.StepEpsilonClosures, "Calculate ε-closures",
			"Compute the ε-closure of every NFA state", ClosurePayload{Closures: table})

		dfa, mapping := subsetConstruction(nfa, cl)
		rec.add(domain.StepSubsetConstruction, "Subset Construction",
			"Build DFA states as sets of NFA states reachable on each symbol",
			DFAPayload{DFA: dfa.Spec(), StateMapping: mapping})

		pruned := dfa.PruneUnreachable(dfa.StartState())
		removed := removedStates(dfa.StateIDs(), pruned)
		rec.add(domain.StepPrune, "Remove Unreachable States",
			fmt.Sprintf("Drop %d state(s) unreachable from the start state", len(removed)),
			PrunePayload{DFA: pruned.Spec(), Removed: removed})

		return pruned, nil
	})
}

func subsetConstruction(nfa *domain.NFA, cl *closures) (*domain.DFA, map[string][]string) {
	alphabet := nfa.Alphabet()
	start := cl.of(domain.NewStateSet(nfa.StartStates()...))
	startID := start.ID()

	var (
		states      []domain.State
		transitions []domain.Transition
		finals      []string
	)
	mapping := make(map[string][]string)
	processed := map[string]bool{startID: true}
	queue := []domain.StateSet{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentID := current.ID()

		states = append(states, domain.NewState(currentID))
		mapping[currentID] = current.Sorted()
		for id := range current {
			if nfa.IsFinal(id) {
				finals = append(finals, currentID)
				break
			}
		}

		for _, symbol := range alphabet {
			moved := nfa.Move(current, symbol)
			if len(moved) == 0 {
				continue
			}
			next := cl.of(moved)
			nextID := next.ID()
			if !processed[nextID] {
				processed[nextID] = true
				queue = append(queue, next)
			}
			transitions = append(transitions, domain.NewTransition(currentID, symbol, nextID))
		}
	}

	return domain.NewDFA(states, transitions, alphabet, startID, finals), mapping
}

func removedStates(before []string, after *domain.DFA) []string {
	removed := []string{}
	for _, id := range before {
		if !after.HasState(id) {
			removed = append(removed, id)
		}
	}
	return removed
}
