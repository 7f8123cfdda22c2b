package gnfa

import (
	"testing"

	"github.com/aretw0/regula/internal/algebra"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfLoopDFA() *domain.DFA {
	return domain.NewDFA(
		[]domain.State{domain.NewState("q0")},
		[]domain.Transition{domain.NewTransition("q0", "a", "q0")},
		[]string{"a"}, "q0", []string{"q0"})
}

func TestFromDFA(t *testing.T) {
	g := FromDFA(selfLoopDFA())

	assert.Equal(t, []string{"qstart", "qfinal", "q0"}, g.States())
	assert.Equal(t, []string{"q0"}, g.Interior())

	snap := g.Snapshot()
	assert.Equal(t, map[string]string{
		"qstart->q0": "ε",
		"q0->qfinal": "ε",
		"q0->q0":     "a",
	}, snap.Transitions)
	assert.Equal(t, "qstart", snap.StartState)
	assert.Equal(t, "qfinal", snap.FinalState)
}

func TestRemoveState_SelfLoop(t *testing.T) {
	g := FromDFA(selfLoopDFA())
	require.NoError(t, g.RemoveState("q0"))

	assert.Equal(t, "a*", g.Result().String())
	assert.Equal(t, []string{"qstart", "qfinal"}, g.States())
	assert.Len(t, g.Snapshot().Transitions, 1)
}

func TestRemoveState_ParallelPathsUnion(t *testing.T) {
	g := New(StartName, FinalName)
	for _, id := range []string{"p", "q"} {
		g.AddState(id)
	}
	g.AddTransition("qstart", "p", algebra.Epsilon())
	g.AddTransition("p", "q", algebra.Symbol("a"))
	g.AddTransition("p", "q", algebra.Symbol("b"))
	g.AddTransition("q", "qfinal", algebra.Epsilon())
	g.AddTransition("p", "qfinal", algebra.Symbol("c"))

	assert.Equal(t, "(a|b)", g.Label("p", "q").String())

	require.NoError(t, g.RemoveState("q"))
	assert.Equal(t, "(a|b|c)", g.Label("p", "qfinal").String())

	require.NoError(t, g.RemoveState("p"))
	assert.Equal(t, "(a|b|c)", g.Result().String())
}

func TestRemoveState_Errors(t *testing.T) {
	g := New(StartName, FinalName)
	assert.Error(t, g.RemoveState(StartName))
	assert.Error(t, g.RemoveState(FinalName))
	assert.Error(t, g.RemoveState("nope"))
}

func TestResult_Disconnected(t *testing.T) {
	d := domain.NewDFA(
		[]domain.State{domain.NewState("q0"), domain.NewState("q1")},
		nil, []string{"a"}, "q0", []string{"q1"})
	g := FromDFA(d)
	for _, id := range g.Interior() {
		require.NoError(t, g.RemoveState(id))
	}
	assert.True(t, g.Result().IsEmpty())
}

func TestFreshName(t *testing.T) {
	assert.Equal(t, "qstart", FreshName("qstart", []string{"q0"}))
	assert.Equal(t, "qstart1", FreshName("qstart", []string{"qstart"}))
	assert.Equal(t, "qstart2", FreshName("qstart", []string{"qstart", "qstart1"}))

	d := domain.NewDFA(
		[]domain.State{domain.NewState("qstart"), domain.NewState("qfinal")},
		[]domain.Transition{domain.NewTransition("qstart", "a", "qfinal")},
		[]string{"a"}, "qstart", []string{"qfinal"})
	g := FromDFA(d)
	assert.Equal(t, "qstart1", g.Start())
	assert.Equal(t, "qfinal1", g.Final())
	assert.Equal(t, []string{"qstart", "qfinal"}, g.Interior())
}

func TestFromNFA_SeedsEveryStart(t *testing.T) {
	n := domain.NewNFA(
		[]domain.State{domain.NewState("x"), domain.NewState("y")},
		[]domain.Transition{domain.NewTransition("x", domain.Epsilon, "y")},
		[]string{"a"}, []string{"x", "y"}, []string{"y"})
	g := FromNFA(n)
	assert.Equal(t, "ε", g.Label("qstart", "x").String())
	assert.Equal(t, "ε", g.Label("qstart", "y").String())
	assert.Equal(t, "ε", g.Label("x", "y").String())
}
