package regula_test

import (
	"context"
	"fmt"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/pkg/domain"
)

// ExampleEngine_RegexToDFA builds a DFA straight from a regex and checks a few strings.
func ExampleEngine_RegexToDFA() {
	eng := regula.New()
	res := eng.RegexToDFA(context.Background(), "(a|b)*abb")

	fmt.Println(res.Success, len(res.Value.StateIDs()))
	fmt.Println(res.Value.AcceptsString("babb"), res.Value.AcceptsString("abba"))
	// Output:
	// true 4
	// true false
}

// ExampleEngine_DFAToRegex eliminates the only state of a one-state DFA.
func ExampleEngine_DFAToRegex() {
	dfa := domain.NewDFA(
		[]domain.State{domain.NewState("q0")},
		[]domain.Transition{domain.NewTransition("q0", "a", "q0")},
		[]string{"a"}, "q0", []string{"q0"},
	)

	res := regula.New().DFAToRegex(context.Background(), dfa)
	fmt.Println(res.Value)
	for _, step := range res.Steps {
		fmt.Println(step.ID, step.Kind)
	}
	// Output:
	// a*
	// step_1 validate
	// step_2 create_gnfa
	// step_3 eliminate_state
	// step_4 after_elimination
	// step_5 eliminate_states
	// step_6 simplify
}

// ExampleEngine_NFAToDFA runs the subset construction on an NFA for a*b.
func ExampleEngine_NFAToDFA() {
	nfa := domain.NewNFA(
		[]domain.State{domain.NewState("q0"), domain.NewState("q1"), domain.NewState("q2")},
		[]domain.Transition{
			domain.NewTransition("q0", domain.Epsilon, "q1"),
			domain.NewTransition("q0", "a", "q0"),
			domain.NewTransition("q1", "b", "q2"),
		},
		[]string{"a", "b"}, []string{"q0"}, []string{"q2"},
	)

	res := regula.New().NFAToDFA(context.Background(), nfa)
	fmt.Println(res.Value.StartState(), res.Value.FinalStates())
	// Output:
	// {q0,q1} [{q2}]
}
