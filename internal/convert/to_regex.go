package convert

import (
	"fmt"

	"github.com/aretw0/regula/internal/gnfa"
	"github.com/aretw0/regula/pkg/domain"
)

// DFAToRegex converts a DFA to a regex by state elimination, then simplifies.
func DFAToRegex(dfa *domain.DFA, opts ...Option) domain.Result[string] {
	o := newOptions(opts)
	rec := newRecorder(o)

	return run(rec, func() (string, error) {
		if problems := dfa.Validate(); len(problems) > 0 {
			return "", domain.NewValidationError("Invalid DFA", problems...)
		}
		spec := dfa.Spec()
		rec.add(domain.StepValidate, "Validate Input DFA",
			"Check that the input DFA is well-formed", ValidatePayload{DFA: &spec})

		g := gnfa.FromDFA(dfa)
		rec.add(domain.StepCreateGNFA, "Create Generalized NFA",
			"Convert DFA to GNFA by adding new start and final states",
			GNFAPayload{GNFA: g.Snapshot()})

		return eliminate(g, o, rec)
	})
}

// NFAToRegex converts an NFA to a regex by state elimination, then simplifies.
func NFAToRegex(nfa *domain.NFA, opts ...Option) domain.Result[string] {
	o := newOptions(opts)
	rec := newRecorder(o)

	return run(rec, func() (string, error) {
		if problems := nfa.Validate(); len(problems) > 0 {
			return "", domain.NewValidationError("Invalid NFA", problems...)
		}
		spec := nfa.Spec()
		rec.add(domain.StepValidate, "Validate Input NFA",
			"Check that the input NFA is well-formed", ValidatePayload{NFA: &spec})

		g := gnfa.FromNFA(nfa)
		rec.add(domain.StepCreateGNFA, "Create Generalized NFA",
			"Convert NFA to GNFA by adding new start and final states",
			GNFAPayload{GNFA: g.Snapshot()})

		return eliminate(g, o, rec)
	})
}

func eliminate(g *gnfa.GNFA, o *Options, rec *recorder) (string, error) {
	order := o.eliminationOrder(g.Interior())
	for _, k := range order {
		before := g.Snapshot()
		rec.add(domain.StepEliminateState, fmt.Sprintf("Eliminate State %s", k),
			fmt.Sprintf("Remove state %s and reroute transitions", k),
			EliminationPayload{State: k, Before: &before})

		if err := g.RemoveState(k); err != nil {
			return "", domain.NewInternalError(err.Error())
		}

		after := g.Snapshot()
		rec.add(domain.StepAfterElimination, fmt.Sprintf("After Eliminating %s", k),
			fmt.Sprintf("GNFA state after eliminating %s", k),
			EliminationPayload{State: k, After: &after})
	}

	if left := g.Interior(); len(left) > 0 {
		return "", domain.NewInternalError(fmt.Sprintf("states left after elimination: %v", left))
	}

	raw := g.Result().String()
	rec.add(domain.StepEliminateStates, "Eliminate States",
		"Remove intermediate states using state elimination algorithm",
		RegexPayload{Regex: raw, Order: order})

	simplified, trace := o.simplifier.Simplify(raw)
	rec.add(domain.StepSimplify, "Simplify Regular Expression",
		fmt.Sprintf("Apply simplification rules to make the regex more readable (%d pass(es))", trace.Passes),
		trace)

	return simplified, nil
}
