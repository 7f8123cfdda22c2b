package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/regula/internal/presentation/graph"
	"github.com/aretw0/regula/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	dfa := domain.NewDFA(
		[]domain.State{{ID: "{1,2}"}, {ID: "{3}"}, {ID: "∅"}},
		[]domain.Transition{
			{From: "{1,2}", To: "{3}", Symbol: "b"},
			{From: "{1,2}", To: "{3}", Symbol: "a"},
			{From: "{3}", To: "∅", Symbol: "a"},
			{From: "{3}", To: "∅", Symbol: "b"},
			{From: "∅", To: "∅", Symbol: "a"},
			{From: "∅", To: "∅", Symbol: "b"},
		},
		[]string{"a", "b"}, "{1,2}", []string{"{3}"},
	)

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "State Shapes",
			contains: []string{
				"graph LR",
				`s0(("{1,2}"))`,
				`s1((("{3}")))`,
				`s2(("∅"))`,
			},
		},
		{
			name: "Start Arrow",
			contains: []string{
				"start_s0[ ]:::start --> s0",
			},
			excludes: []string{"start_s1"},
		},
		{
			name: "Parallel Transitions Merge",
			contains: []string{
				`s0 -- "a, b" --> s1`,
				`s2 -- "a, b" --> s2`,
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				VisitedStates: []string{"{1,2}", "{1,2}", "missing"},
				CurrentState:  "{3}",
			},
			contains: []string{
				"class s0 visited;",
				"class s1 current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(dfa, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
			if tt.overlay == nil && strings.Contains(got, "Overlay") {
				t.Errorf("overlay styles emitted without overlay")
			}
		})
	}
}

func TestGenerateMermaid_Labels(t *testing.T) {
	nfa := domain.NewNFA(
		[]domain.State{{ID: "q0", Label: `say "hi"`}, {ID: "q1"}},
		[]domain.Transition{{From: "q0", To: "q1", Symbol: "ε"}},
		[]string{"a"}, []string{"q0", "q1"}, nil,
	)
	got := graph.GenerateMermaid(nfa, nil)
	for _, want := range []string{`s0(("say 'hi'"))`, "start_s1[ ]:::start --> s1", `s0 -- "ε" --> s1`} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}
}
