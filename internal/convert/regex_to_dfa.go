package convert

import (
	"fmt"
	"slices"

	"github.com/aretw0/regula/internal/syntax"
	"github.com/aretw0/regula/pkg/domain"
)

// RegexToDFA builds a DFA directly from regex through followpos: each DFA
// state is a set of leaf positions of the augmented syntax tree.
func RegexToDFA(regex string, opts ...Option) domain.Result[*domain.DFA] {
	o := newOptions(opts)
	rec := newRecorder(o)

	return run(rec, func() (*domain.DFA, error) {
		tree, err := syntax.Build(regex)
		if err != nil {
			return nil, err
		}

		augmented := syntax.Augmented(regex)
		rec.add(domain.StepAugment, "Create Augmented Regular Expression",
			fmt.Sprintf("Add end marker to regex: %s → %s", regex, augmented),
			AugmentPayload{Original: regex, Augmented: augmented})

		rec.add(domain.StepSyntaxTree, "Build Syntax Tree",
			"Construct syntax tree from augmented regular expression",
			TreePayload{Tree: tree.Root.Snapshot()})

		tree.Analyze()
		rec.add(domain.StepFunctions, "Calculate nullable, firstpos, lastpos",
			"Compute attributes for each node in syntax tree",
			TreePayload{Tree: tree.Root.Snapshot()})

		tree.ComputeFollowpos()
		rec.add(domain.StepFollowpos, "Calculate followpos",
			"Compute followpos for each position",
			FollowposPayload{Table: tree.FollowposTable()})

		dfa, mapping := constructFromPositions(tree)
		rec.add(domain.StepConstructDFA, "Construct DFA",
			"Build DFA states and transitions using position sets",
			DFAPayload{DFA: dfa.Spec(), StateMapping: mapping})

		return dfa, nil
	})
}

// constructFromPositions runs the breadth-first position-set construction.
func constructFromPositions(tree *syntax.Tree) (*domain.DFA, map[string][]string) {
	alphabet := tree.Alphabet()
	startSet := tree.Root.Firstpos
	startID := domain.SetID(startSet)

	var (
		states      []domain.State
		transitions []domain.Transition
		finals      []string
	)
	mapping := make(map[string][]string)
	processed := map[string]bool{startID: true}
	queue := [][]int{startSet}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		currentID := domain.SetID(current)

		states = append(states, domain.NewState(currentID))
		mapping[currentID] = positionLabels(current)
		if slices.Contains(current, tree.EndMarker) {
			finals = append(finals, currentID)
		}

		for _, symbol := range alphabet {
			var next []int
			for _, p := range current {
				if tree.Symbol(p) == symbol {
					next = append(next, tree.Followpos[p]...)
				}
			}
			if len(next) == 0 {
				continue
			}
			slices.Sort(next)
			next = slices.Compact(next)

			nextID := domain.SetID(next)
			if !processed[nextID] {
				processed[nextID] = true
				queue = append(queue, next)
			}
			transitions = append(transitions, domain.NewTransition(currentID, symbol, nextID))
		}
	}

	return domain.NewDFA(states, transitions, alphabet, startID, finals), mapping
}

func positionLabels(positions []int) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = fmt.Sprint(p)
	}
	return out
}
