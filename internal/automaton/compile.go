package automaton

import (
	"lexdfa/grammar"
)

// Compile runs the full construction: NFA, subset construction, then
// minimization. It has no side effects.
func Compile(patterns []grammar.Pattern) *DFA {
	return Minimize(Determinize(BuildNFA(patterns)))
}
