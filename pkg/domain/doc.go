/*
Package domain contains the automaton model shared by every conversion in Regula.

It defines states, transitions, the NFA and DFA containers with their lookup and
validation helpers, the canonical naming of state sets, and the records a conversion
hands back to its caller (steps, results and typed errors). This package is kept pure
and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - State / Transition: the immutable building blocks of an automaton.
  - NFA: an automaton with a set of start states and ε-transitions.
  - DFA: an automaton with exactly one start state and at most one successor per symbol.
  - Step: one append-only entry of a conversion's derivation log.
  - Result: the caller-facing envelope of every conversion (success, value, steps, error).
  - Spec: the wire shape used to exchange automata with JSON/YAML collaborators.
*/
package domain
