package domain

import "fmt"

// Transition is an edge (From --Symbol--> To). Transitions are values and never mutated.
type Transition struct {
	ID     string `json:"id" yaml:"id,omitempty" mapstructure:"id"`
	From   string `json:"from" yaml:"from" mapstructure:"from"`
	To     string `json:"to" yaml:"to" mapstructure:"to"`
	Symbol string `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
}

// NewTransition builds a transition with its derived identifier.
func NewTransition(from, symbol, to string) Transition {
	return Transition{
		ID:     TransitionID(from, symbol, to),
		From:   from,
		To:     to,
		Symbol: symbol,
	}
}

// TransitionID derives the identifier of (from, symbol, to).
func TransitionID(from, symbol, to string) string {
	return fmt.Sprintf("%s-%s-%s", from, to, symbol)
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return IsEpsilon(t.Symbol)
}

func (t Transition) String() string {
	return fmt.Sprintf("δ(%s, %s) = %s", t.From, t.Symbol, t.To)
}
