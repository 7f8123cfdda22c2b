package domain

import "strconv"

// StepKind names the stage of a conversion a step records.
type StepKind string

const (
	StepValidate           StepKind = "validate"
	StepAugment            StepKind = "augment"
	StepSyntaxTree         StepKind = "syntax_tree"
	StepFunctions          StepKind = "functions"
	StepFollowpos          StepKind = "followpos"
	StepConstructDFA       StepKind = "construct_dfa"
	StepEpsilonClosures    StepKind = "epsilon_closures"
	StepSubsetConstruction StepKind = "subset_construction"
	StepPrune              StepKind = "prune"
	StepCreateGNFA         StepKind = "create_gnfa"
	StepEliminateState     StepKind = "eliminate_state"
	StepAfterElimination   StepKind = "after_elimination"
	StepEliminateStates    StepKind = "eliminate_states"
	StepSimplify           StepKind = "simplify"
)

// Step is one write-once entry of a conversion log. Payload is a snapshot,
// never a live reference into the algorithm's working structures.
type Step struct {
	ID          string   `json:"id" yaml:"id"`
	Sequence    int      `json:"sequence" yaml:"sequence"`
	Kind        StepKind `json:"type" yaml:"type"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Payload     any      `json:"data,omitempty" yaml:"data,omitempty"`
}

// StepID returns the id of the step with the given 1-based sequence number.
func StepID(sequence int) string {
	return "step_" + strconv.Itoa(sequence)
}
