/*
Package regula converts between the three classic representations of regular languages:
regular expressions, nondeterministic finite automata (NFA, with ε-transitions) and
deterministic finite automata (DFA).

Every conversion records the derivation it performed as an ordered log of steps, so a
caller can inspect or replay it: the annotated syntax tree and followpos table of the
direct regex to DFA construction, the ε-closures and state mapping of the subset
construction, and each generalized NFA snapshot of the state elimination.

# Conversions

  - RegexToDFA: direct construction through nullable/firstpos/lastpos/followpos.
  - NFAToDFA: subset construction with memoized ε-closures and unreachable-state pruning.
  - DFAToRegex / NFAToRegex: state elimination on a generalized NFA, then simplification.

# Usage

	eng := regula.New()
	res := eng.RegexToDFA(context.Background(), "(a|b)*abb")
	if !res.Success {
		log.Fatal(res.Error)
	}
	fmt.Println(res.Value.AcceptsString("babb")) // true

Conversions never panic and never return a bare error: the outcome is always a
domain.Result carrying either the value or a typed domain.ConversionError
(ValidationError, SyntaxError or InternalError) together with the steps recorded so far.
*/
package regula
