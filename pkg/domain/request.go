package domain

// ConversionRequest is a conversion request in wire form, as received by
// transport adapters. Regex is read for regex_to_dfa, Automaton otherwise.
type ConversionRequest struct {
	Kind      ConversionKind `json:"kind" mapstructure:"kind"`
	Regex     string         `json:"regex,omitempty" mapstructure:"regex"`
	Automaton Spec           `json:"automaton,omitempty" mapstructure:"automaton"`
}
