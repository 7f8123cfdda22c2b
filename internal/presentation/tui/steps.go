package tui

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/regula/internal/convert"
	"github.com/aretw0/regula/internal/gnfa"
	"github.com/aretw0/regula/internal/syntax"
	"github.com/aretw0/regula/pkg/domain"
)

// StepsMarkdown renders a derivation as markdown, one section per step.
func StepsMarkdown(steps []domain.Step) string {
	var sb strings.Builder
	for _, s := range steps {
		fmt.Fprintf(&sb, "## %d. %s\n\n", s.Sequence, s.Title)
		if s.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", s.Description)
		}
		writePayload(&sb, s.Payload)
	}
	return sb.String()
}

func writePayload(sb *strings.Builder, payload any) {
	switch p := payload.(type) {
	case nil:
	case convert.AugmentPayload:
		fmt.Fprintf(sb, "`%s` → `%s`\n\n", p.Original, p.Augmented)
	case convert.TreePayload:
		writeTree(sb, p.Tree, 0)
		sb.WriteString("\n")
	case convert.ValidatePayload:
		if p.DFA != nil {
			writeTransitions(sb, *p.DFA)
		}
		if p.NFA != nil {
			writeTransitions(sb, *p.NFA)
		}
	case convert.FollowposPayload:
		sb.WriteString("| position | symbol | followpos |\n|---|---|---|\n")
		for _, row := range p.Table {
			fmt.Fprintf(sb, "| %d | `%s` | %s |\n", row.Position, row.Symbol, domain.SetID(row.Followpos))
		}
		sb.WriteString("\n")
	case convert.ClosurePayload:
		sb.WriteString("| state | ε-closure |\n|---|---|\n")
		for _, id := range sortedKeys(p.Closures) {
			fmt.Fprintf(sb, "| %s | %s |\n", id, domain.SetID(p.Closures[id]))
		}
		sb.WriteString("\n")
	case convert.DFAPayload:
		writeTransitions(sb, p.DFA)
		if len(p.StateMapping) > 0 {
			sb.WriteString("| DFA state | stands for |\n|---|---|\n")
			for _, id := range sortedKeys(p.StateMapping) {
				fmt.Fprintf(sb, "| %s | %s |\n", id, domain.SetID(p.StateMapping[id]))
			}
			sb.WriteString("\n")
		}
	case convert.PrunePayload:
		if len(p.Removed) == 0 {
			sb.WriteString("No unreachable states.\n\n")
		} else {
			fmt.Fprintf(sb, "Removed: %s\n\n", strings.Join(p.Removed, ", "))
		}
	case convert.GNFAPayload:
		writeGNFA(sb, p.GNFA)
	case convert.EliminationPayload:
		if p.After != nil {
			writeGNFA(sb, *p.After)
		}
	case convert.RegexPayload:
		fmt.Fprintf(sb, "Order: %s\n\n`%s`\n\n", strings.Join(p.Order, ", "), p.Regex)
	case convert.SimplifyPayload:
		fmt.Fprintf(sb, "`%s` → `%s` (%d passes)\n\n", p.Original, p.Simplified, p.Passes)
		if len(p.Rules) > 0 {
			fmt.Fprintf(sb, "Rules: %s\n\n", strings.Join(p.Rules, ", "))
		}
	default:
		raw, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return
		}
		fmt.Fprintf(sb, "```json\n%s\n```\n\n", raw)
	}
}

func writeTree(sb *strings.Builder, n *syntax.Node, depth int) {
	if n == nil {
		return
	}
	label := string(n.Kind)
	switch n.Kind {
	case syntax.NodeSymbol:
		label = fmt.Sprintf("%s (%d)", n.Symbol, n.Position)
		if n.Position == 0 {
			label = n.Symbol
		}
	case syntax.NodeConcat:
		label = "·"
	case syntax.NodeUnion:
		label = "|"
	case syntax.NodeStar:
		label = "*"
	}
	fmt.Fprintf(sb, "%s- `%s` nullable=%t firstpos=%s lastpos=%s\n",
		strings.Repeat("  ", depth), label, n.Nullable, domain.SetID(n.Firstpos), domain.SetID(n.Lastpos))
	writeTree(sb, n.Left, depth+1)
	writeTree(sb, n.Right, depth+1)
}

func writeTransitions(sb *strings.Builder, spec domain.Spec) {
	sb.WriteString("| from | symbol | to |\n|---|---|---|\n")
	for _, t := range spec.Transitions {
		fmt.Fprintf(sb, "| %s | `%s` | %s |\n", t.From, t.Symbol, t.To)
	}
	sb.WriteString("\n")
}

func writeGNFA(sb *strings.Builder, g gnfa.Snapshot) {
	sb.WriteString("| edge | label |\n|---|---|\n")
	for _, edge := range sortedKeys(g.Transitions) {
		fmt.Fprintf(sb, "| %s | `%s` |\n", edge, cell(g.Transitions[edge]))
	}
	sb.WriteString("\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// cell escapes pipes, which would otherwise split a table column.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
