package convert

import (
	"github.com/aretw0/regula/internal/gnfa"
	"github.com/aretw0/regula/internal/simplify"
	"github.com/aretw0/regula/internal/syntax"
	"github.com/aretw0/regula/pkg/domain"
)

// Step payloads. Each is a snapshot taken when the step is recorded.

type AugmentPayload struct {
	Original  string `json:"originalRegex"`
	Augmented string `json:"augmentedRegex"`
}

type TreePayload struct {
	Tree *syntax.Node `json:"syntaxTree"`
}

type FollowposPayload struct {
	Table []syntax.FollowposRow `json:"followposTable"`
}

type ValidatePayload struct {
	NFA *domain.Spec `json:"nfa,omitempty"`
	DFA *domain.Spec `json:"dfa,omitempty"`
}

// ClosurePayload maps every NFA state to its ε-closure.
type ClosurePayload struct {
	Closures map[string][]string `json:"epsilonClosures"`
}

// DFAPayload carries a DFA and, for constructed DFAs, the positions or NFA
// states each DFA state stands for.
type DFAPayload struct {
	DFA          domain.Spec         `json:"dfa"`
	StateMapping map[string][]string `json:"stateMapping,omitempty"`
}

type PrunePayload struct {
	DFA     domain.Spec `json:"dfa"`
	Removed []string    `json:"removedStates"`
}

type GNFAPayload struct {
	GNFA gnfa.Snapshot `json:"gnfa"`
}

type EliminationPayload struct {
	State  string         `json:"eliminatedState"`
	Before *gnfa.Snapshot `json:"gnfaBefore,omitempty"`
	After  *gnfa.Snapshot `json:"gnfaAfter,omitempty"`
}

type RegexPayload struct {
	Regex string   `json:"finalRegex"`
	Order []string `json:"eliminationOrder"`
}

type SimplifyPayload = simplify.Trace
