package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSpec_FromJSONObject(t *testing.T) {
	raw := `{
		"states": [
			{"id": "q0", "label": "start", "isStart": true, "position": {"x": 10, "y": 20}},
			{"id": "q1", "isFinal": true}
		],
		"transitions": [{"from": "q0", "to": "q1", "symbol": "a"}],
		"alphabet": ["a"]
	}`
	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))

	spec, err := DecodeSpec(generic)
	require.NoError(t, err)

	d := spec.DFA()
	require.Empty(t, d.Validate())
	assert.Equal(t, "q0", d.StartState(), "falls back to isStart flag")
	assert.Equal(t, []string{"q1"}, d.FinalStates(), "falls back to isFinal flag")

	st, _ := d.State("q0")
	assert.Equal(t, "start", st.Label)
	require.NotNil(t, st.Position)
	assert.Equal(t, 10.0, st.Position.X)
	assert.True(t, d.AcceptsString("a"))
}

func TestDecode_NestedRequest(t *testing.T) {
	var req ConversionRequest
	err := Decode(map[string]any{
		"kind": "dfa_to_regex",
		"automaton": map[string]any{
			"states":      []any{map[string]any{"id": "q0", "isStart": true, "isFinal": "true"}},
			"transitions": []any{map[string]any{"from": "q0", "to": "q0", "symbol": "a"}},
			"alphabet":    []any{"a"},
		},
	}, &req)
	require.NoError(t, err)
	assert.Equal(t, ConversionDFAToRegex, req.Kind)
	assert.True(t, req.Automaton.States[0].IsFinal)
	assert.True(t, req.Automaton.DFA().AcceptsString("aa"))

	assert.Error(t, Decode(map[string]any{"automaton": "nope"}, &req))
}

func TestSpec_ExplicitDesignationsWin(t *testing.T) {
	spec := Spec{
		States:      []State{{ID: "q0", IsFinal: true}, {ID: "q1"}},
		Alphabet:    []string{"a"},
		StartStates: []string{"q1"},
		FinalStates: []string{"q1"},
	}
	n := spec.NFA()
	assert.Equal(t, []string{"q1"}, n.StartStates())
	assert.Equal(t, []string{"q1"}, n.FinalStates())

	q0, _ := n.State("q0")
	assert.False(t, q0.IsFinal, "flags follow the final set")

	d := spec.DFA()
	assert.Equal(t, "q1", d.StartState())
}

func TestSpec_DFAWithSeveralStarts(t *testing.T) {
	spec := Spec{
		States:      states("q0", "q1"),
		Alphabet:    []string{"a"},
		StartStates: []string{"q0", "q1"},
	}
	assert.Contains(t, spec.DFA().Validate(), "DFA must have exactly one start state")
}

func TestDFA_MarshalJSON(t *testing.T) {
	d := NewDFA(states("q0"), []Transition{NewTransition("q0", "a", "q0")}, []string{"a"}, "q0", []string{"q0"})

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "q0", out["startState"])
	assert.Equal(t, []any{"q0"}, out["finalStates"])
	transitions := out["transitions"].([]any)
	assert.Equal(t, "q0-q0-a", transitions[0].(map[string]any)["id"])
	st := out["states"].([]any)[0].(map[string]any)
	assert.Equal(t, true, st["isStart"])
	assert.Equal(t, true, st["isFinal"])
}

func TestConversionError(t *testing.T) {
	err := NewSyntaxError("Unexpected character", 3, ")")
	assert.ErrorIs(t, err, ErrSyntax)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, `SyntaxError: Unexpected character at position 3 (")")`, err.Error())

	v := NewValidationError("Invalid DFA", "a", "b")
	assert.Equal(t, "ValidationError: Invalid DFA: a; b", v.Error())

	assert.Equal(t, KindInternal, AsConversionError(assert.AnError).Kind)
	assert.Same(t, v, AsConversionError(v))
	assert.Nil(t, AsConversionError(nil))
}
