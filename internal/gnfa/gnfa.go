// Package gnfa implements generalized NFAs, whose transitions are labeled by
// regular expressions, and the state-elimination step that turns an
// automaton into a single regex.
package gnfa

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/aretw0/regula/internal/algebra"
	"github.com/aretw0/regula/pkg/domain"
)

// Default names of the synthetic start and final states.
const (
	StartName = "qstart"
	FinalName = "qfinal"
)

type edge struct{ from, to string }

// GNFA is scratch space for state elimination. It holds at most one label
// per ordered state pair.
type GNFA struct {
	order  []string
	live   map[string]bool
	labels map[edge]*algebra.Expr
	start  string
	final  string
}

// New creates a GNFA holding only the synthetic start and final states.
func New(start, final string) *GNFA {
	g := &GNFA{
		live:   make(map[string]bool),
		labels: make(map[edge]*algebra.Expr),
		start:  start,
		final:  final,
	}
	g.AddState(start)
	g.AddState(final)
	return g
}

// FromDFA wraps d: ε from the new start to d's start, ε from each final
// state to the new final, and each transition copied with its symbol.
func FromDFA(d *domain.DFA) *GNFA {
	return build(&d.Automaton, []string{d.StartState()}, d.FinalStates())
}

// FromNFA is FromDFA seeded from every start state.
func FromNFA(n *domain.NFA) *GNFA {
	return build(&n.Automaton, n.StartStates(), n.FinalStates())
}

func build(a *domain.Automaton, starts, finals []string) *GNFA {
	ids := a.StateIDs()
	g := New(FreshName(StartName, ids), FreshName(FinalName, ids))
	for _, id := range ids {
		g.AddState(id)
	}
	for _, s := range starts {
		g.AddTransition(g.start, s, algebra.Epsilon())
	}
	for _, f := range finals {
		g.AddTransition(f, g.final, algebra.Epsilon())
	}
	for _, t := range a.Transitions() {
		g.AddTransition(t.From, t.To, algebra.Symbol(t.Symbol))
	}
	return g
}

// FreshName returns base, or base with the smallest numeric suffix that
// is not in taken.
func FreshName(base string, taken []string) string {
	name := base
	for i := 1; slices.Contains(taken, name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

// Start returns the synthetic start state.
func (g *GNFA) Start() string { return g.start }

// Final returns the synthetic final state.
func (g *GNFA) Final() string { return g.final }

// AddState adds id if absent.
func (g *GNFA) AddState(id string) {
	if g.live[id] {
		return
	}
	g.live[id] = true
	g.order = append(g.order, id)
}

// States returns the live states in insertion order.
func (g *GNFA) States() []string {
	return slices.Clone(g.order)
}

// AddTransition labels (from, to) with r, unioned with any existing label.
func (g *GNFA) AddTransition(from, to string, r *algebra.Expr) {
	if r.IsEmpty() {
		return
	}
	key := edge{from, to}
	if existing, ok := g.labels[key]; ok {
		r = algebra.Union(existing, r)
	}
	g.labels[key] = r
}

// Label returns the label of (from, to), ∅ when there is none.
func (g *GNFA) Label(from, to string) *algebra.Expr {
	if r, ok := g.labels[edge{from, to}]; ok {
		return r
	}
	return algebra.Empty()
}

// Interior returns the non-synthetic states in insertion order: the default
// elimination order.
func (g *GNFA) Interior() []string {
	var out []string
	for _, id := range g.order {
		if id != g.start && id != g.final {
			out = append(out, id)
		}
	}
	return out
}

// RemoveState eliminates k, rerouting every path i -> k -> j through a
// single label R_ik (R_kk)* R_kj merged into (i, j).
func (g *GNFA) RemoveState(k string) error {
	if k == g.start || k == g.final {
		return fmt.Errorf("cannot eliminate synthetic state %s", k)
	}
	if !g.live[k] {
		return fmt.Errorf("unknown state %s", k)
	}

	loop := algebra.Star(g.Label(k, k))
	type arc struct {
		state string
		label *algebra.Expr
	}
	var incoming, outgoing []arc
	for _, id := range g.order {
		if id == k {
			continue
		}
		if r, ok := g.labels[edge{id, k}]; ok {
			incoming = append(incoming, arc{id, r})
		}
		if r, ok := g.labels[edge{k, id}]; ok {
			outgoing = append(outgoing, arc{id, r})
		}
	}

	for key := range g.labels {
		if key.from == k || key.to == k {
			delete(g.labels, key)
		}
	}
	delete(g.live, k)
	g.order = slices.DeleteFunc(g.order, func(id string) bool { return id == k })

	for _, in := range incoming {
		for _, out := range outgoing {
			g.AddTransition(in.state, out.state, algebra.Concat(in.label, loop, out.label))
		}
	}
	return nil
}

// Result returns the start -> final label, ∅ if the two are disconnected.
func (g *GNFA) Result() *algebra.Expr {
	return g.Label(g.start, g.final)
}

// Snapshot is a serializable copy of a GNFA. Transitions are keyed "u->v".
type Snapshot struct {
	States      []string          `json:"states"`
	Transitions map[string]string `json:"transitions"`
	StartState  string            `json:"startState"`
	FinalState  string            `json:"finalState"`
}

// Snapshot copies the current GNFA.
func (g *GNFA) Snapshot() Snapshot {
	s := Snapshot{
		States:      g.States(),
		Transitions: make(map[string]string, len(g.labels)),
		StartState:  g.start,
		FinalState:  g.final,
	}
	for key, r := range g.labels {
		s.Transitions[key.from+"->"+key.to] = r.String()
	}
	return s
}
