package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Spec is the wire shape of an automaton exchanged with callers:
// {states, transitions, alphabet, startState|startStates, finalStates}.
type Spec struct {
	States      []State      `json:"states" yaml:"states" mapstructure:"states"`
	Transitions []Transition `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
	Alphabet    []string     `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	StartState  string       `json:"startState,omitempty" yaml:"startState,omitempty" mapstructure:"startState"`
	StartStates []string     `json:"startStates,omitempty" yaml:"startStates,omitempty" mapstructure:"startStates"`
	FinalStates []string     `json:"finalStates" yaml:"finalStates" mapstructure:"finalStates"`
}

// DecodeSpec decodes a loosely typed value (a JSON object decoded into
// map[string]any, MCP tool arguments, document metadata) into a Spec.
func DecodeSpec(input any) (Spec, error) {
	var spec Spec
	if err := Decode(input, &spec); err != nil {
		return Spec{}, fmt.Errorf("decode automaton: %w", err)
	}
	return spec, nil
}

// Decode decodes a loosely typed value into dst, a pointer to a struct with
// mapstructure tags. Scalars are converted weakly ("1" fills an int).
func Decode(input, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// startIDs resolves the start designation: startStates, then startState,
// then the isStart flags.
func (s Spec) startIDs() []string {
	if len(s.StartStates) > 0 {
		return s.StartStates
	}
	if s.StartState != "" {
		return []string{s.StartState}
	}
	var ids []string
	for _, st := range s.States {
		if st.IsStart {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// finalIDs resolves the final designation: finalStates, then the isFinal flags.
func (s Spec) finalIDs() []string {
	if len(s.FinalStates) > 0 {
		return s.FinalStates
	}
	var ids []string
	for _, st := range s.States {
		if st.IsFinal {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// NFA builds an NFA from the wire shape.
func (s Spec) NFA() *NFA {
	return NewNFA(s.States, s.Transitions, s.Alphabet, s.startIDs(), s.finalIDs())
}

// DFA builds a DFA from the wire shape. More than one start designation
// leaves the start state empty, which Validate reports.
func (s Spec) DFA() *DFA {
	var start string
	if starts := s.startIDs(); len(starts) == 1 {
		start = starts[0]
	}
	return NewDFA(s.States, s.Transitions, s.Alphabet, start, s.finalIDs())
}

// Spec returns the wire shape of n.
func (n *NFA) Spec() Spec {
	return Spec{
		States:      n.States(),
		Transitions: n.Transitions(),
		Alphabet:    n.Alphabet(),
		StartStates: n.StartStates(),
		FinalStates: nonNilIDs(n.FinalStates()),
	}
}

// Spec returns the wire shape of d.
func (d *DFA) Spec() Spec {
	return Spec{
		States:      d.States(),
		Transitions: d.Transitions(),
		Alphabet:    d.Alphabet(),
		StartState:  d.start,
		FinalStates: nonNilIDs(d.FinalStates()),
	}
}

// MarshalJSON encodes the wire shape.
func (n *NFA) MarshalJSON() ([]byte, error) { return json.Marshal(n.Spec()) }

// MarshalJSON encodes the wire shape.
func (d *DFA) MarshalJSON() ([]byte, error) { return json.Marshal(d.Spec()) }

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
