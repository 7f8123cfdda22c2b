package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/regula/pkg/domain"
)

// Automaton is what GenerateMermaid draws: *domain.NFA and *domain.DFA both qualify.
type Automaton interface {
	States() []domain.State
	Transitions() []domain.Transition
}

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart for an automaton:
// - State: ((Circle))
// - Final state: (((Double circle)))
// - Start states get an arrow from an unlabeled point.
// Parallel transitions share one edge labeled with every symbol.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(a Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	// State ids such as {1,2,3} or ∅ are not valid Mermaid ids.
	ids := make(map[string]string)
	for i, st := range a.States() {
		ids[st.ID] = fmt.Sprintf("s%d", i)
	}

	for _, st := range a.States() {
		label := st.ID
		if st.Label != "" {
			label = st.Label
		}
		label = escape(label)

		opener, closer := "((", "))"
		if st.IsFinal {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", ids[st.ID], opener, label, closer))

		if st.IsStart {
			point := "start_" + ids[st.ID]
			sb.WriteString(fmt.Sprintf("    %s[ ]:::start --> %s\n", point, ids[st.ID]))
		}
	}

	type edge struct{ from, to string }
	var order []edge
	symbols := make(map[edge][]string)
	for _, t := range a.Transitions() {
		e := edge{t.From, t.To}
		if _, ok := symbols[e]; !ok {
			order = append(order, e)
		}
		symbols[e] = append(symbols[e], t.Symbol)
	}
	for _, e := range order {
		syms := symbols[e]
		slices.Sort(syms)
		syms = slices.Compact(syms)
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", ids[e.from], escape(strings.Join(syms, ", ")), ids[e.to]))
	}

	sb.WriteString("    classDef start fill:none,stroke:none;\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID, ok := ids[id]
			if ok && !visited[safeID] {
				visited[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if safeCurrent, ok := ids[overlay.CurrentState]; ok {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeCurrent))
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
