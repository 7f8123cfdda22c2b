package domain

// Position is an optional layout hint carried for presentation layers.
// No algorithm reads it.
type Position struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// State is a node of an automaton.
// IsStart and IsFinal mirror membership in the owning automaton's start/final sets
// and are rewritten by the automaton constructors.
type State struct {
	ID       string    `json:"id" yaml:"id" mapstructure:"id"`
	Label    string    `json:"label" yaml:"label,omitempty" mapstructure:"label"`
	IsStart  bool      `json:"isStart" yaml:"isStart,omitempty" mapstructure:"isStart"`
	IsFinal  bool      `json:"isFinal" yaml:"isFinal,omitempty" mapstructure:"isFinal"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`
}

// NewState creates a state whose label defaults to its id.
func NewState(id string) State {
	return State{ID: id, Label: id}
}
