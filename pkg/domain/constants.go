package domain

import "unicode"

// Reserved symbols. None of them may appear in a declared alphabet: ε is
// dropped from alphabets, and the others fail validation.
const (
	// Epsilon labels a transition that consumes no input, and denotes the empty string in regexes.
	Epsilon = "ε"
	// EpsilonAlias is accepted on input transitions as a spelling of Epsilon.
	EpsilonAlias = "epsilon"
	// EmptySet denotes the empty language, and names the empty state set.
	EmptySet = "∅"
	// EndMarker is appended to a regex during direct DFA construction.
	EndMarker = "#"
)

// IsEpsilon reports whether symbol labels an ε-transition.
func IsEpsilon(symbol string) bool {
	return symbol == Epsilon || symbol == EpsilonAlias
}

// IsReserved reports whether symbol is one of the reserved markers.
func IsReserved(symbol string) bool {
	return IsEpsilon(symbol) || symbol == EmptySet || symbol == EndMarker
}

// IsAlphabetSymbol reports whether symbol can label a transition: a single
// letter or digit that is not reserved. Only such symbols can be written in
// a regex, so only they survive a round trip through DFAToRegex.
func IsAlphabetSymbol(symbol string) bool {
	runes := []rune(symbol)
	if len(runes) != 1 || IsReserved(symbol) {
		return false
	}
	return unicode.IsLetter(runes[0]) || unicode.IsDigit(runes[0])
}
