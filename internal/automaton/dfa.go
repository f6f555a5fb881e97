package automaton

import (
	"slices"

	"lexdfa/token"
)

// DFAState is one DFA record. Next holds only symbols that lead somewhere; a
// missing symbol rejects.
type DFAState struct {
	Accept token.Category
	Next   map[rune]StateID
}

// Transition is one edge of a DFA state.
type Transition struct {
	Symbol rune
	Target StateID
}

// DFA is a deterministic automaton over the symbols observed in its source
// patterns. A DFA is not modified once built and may be shared.
type DFA struct {
	states   Arena[DFAState]
	start    StateID
	alphabet []rune
}

func newDFA(alphabet []rune) *DFA {
	return &DFA{alphabet: alphabet}
}

func (d *DFA) addState(accept token.Category) StateID {
	return d.states.Alloc(DFAState{Accept: accept, Next: map[rune]StateID{}})
}

func (d *DFA) Start() StateID {
	return d.start
}

func (d *DFA) NumStates() int {
	return d.states.Len()
}

// Alphabet returns the sorted input symbols.
func (d *DFA) Alphabet() []rune {
	return slices.Clone(d.alphabet)
}

// Accept returns the category accepted in id, or token.None. Ids outside the
// table accept nothing.
func (d *DFA) Accept(id StateID) token.Category {
	if !d.states.Valid(id) {
		return token.None
	}
	return d.states.Get(id).Accept
}

// Step follows the transition on c out of id. Ids outside the table have no
// transitions.
func (d *DFA) Step(id StateID, c rune) (StateID, bool) {
	if !d.states.Valid(id) {
		return 0, false
	}
	next, ok := d.states.Get(id).Next[c]
	return next, ok
}

// Transitions lists the edges out of id ordered by symbol.
func (d *DFA) Transitions(id StateID) []Transition {
	next := d.states.Get(id).Next
	out := make([]Transition, 0, len(next))
	for c, target := range next {
		out = append(out, Transition{Symbol: c, Target: target})
	}
	slices.SortFunc(out, func(a, b Transition) int { return int(a.Symbol) - int(b.Symbol) })
	return out
}

// Match runs the whole of s from the start state. It returns the accepted
// category, or false if s is rejected.
func (d *DFA) Match(s string) (token.Category, bool) {
	state := d.start
	for _, c := range s {
		next, ok := d.Step(state, c)
		if !ok {
			return token.None, false
		}
		state = next
	}
	accept := d.Accept(state)
	return accept, accept.Accepting()
}
