package automaton

import (
	"slices"

	"github.com/tliron/commonlog"

	"lexdfa/grammar"
	"lexdfa/token"
)

var log = commonlog.GetLogger("lexdfa.automaton")

// Nondeterministic is a finite automaton with a transition relation: a state
// and symbol lead to a set of states. Subset construction works on this
// interface only.
type Nondeterministic interface {
	Start() StateID
	NumStates() int
	// Accept returns token.None for a non-accepting state.
	Accept(id StateID) token.Category
	// Symbols lists the symbols with at least one transition out of id, sorted.
	Symbols(id StateID) []rune
	// Next returns the successors of id on c, or nil.
	Next(id StateID, c rune) StateSet
}

// NFAState is one NFA record.
type NFAState struct {
	Accept token.Category
	Edges  map[rune]StateSet
}

// NFA is a prefix-sharing automaton built from literal patterns. State 0 is
// the shared start state.
type NFA struct {
	states Arena[NFAState]
}

// NewNFA returns an NFA holding only its start state.
func NewNFA() *NFA {
	n := &NFA{}
	n.AddState(token.None)
	return n
}

// BuildNFA inserts every pattern, in order, into a fresh NFA.
func BuildNFA(patterns []grammar.Pattern) *NFA {
	n := NewNFA()
	for _, p := range patterns {
		n.Insert(p)
	}
	log.Debugf("built NFA with %d states from %d patterns", n.NumStates(), len(patterns))
	return n
}

// AddState allocates a state accepting the given category (token.None for
// none) and returns its handle.
func (n *NFA) AddState(accept token.Category) StateID {
	return n.states.Alloc(NFAState{Accept: accept, Edges: map[rune]StateSet{}})
}

// Insert adds the literal of p, reusing any existing prefix path, and marks
// the end state as accepting p's category. When the end state already
// accepts, the preferred category is kept.
func (n *NFA) Insert(p grammar.Pattern) {
	current := n.Start()
	for _, c := range p.Literal {
		if next, ok := n.states.At(current).Edges[c]; ok && len(next) > 0 {
			current = next[0]
			continue
		}
		next := n.AddState(token.None)
		n.AddTransition(current, c, next)
		current = next
	}

	end := n.states.At(current)
	end.Accept = token.Prefer(end.Accept, p.Category)
}

// AddTransition adds to to the successors of from on c.
func (n *NFA) AddTransition(from StateID, c rune, to StateID) {
	edges := n.states.At(from).Edges
	edges[c] = edges[c].Union(StateSet{to})
}

func (n *NFA) Start() StateID {
	return 0
}

func (n *NFA) NumStates() int {
	return n.states.Len()
}

func (n *NFA) Accept(id StateID) token.Category {
	return n.states.Get(id).Accept
}

func (n *NFA) Symbols(id StateID) []rune {
	edges := n.states.Get(id).Edges
	symbols := make([]rune, 0, len(edges))
	for c := range edges {
		symbols = append(symbols, c)
	}
	slices.Sort(symbols)
	return symbols
}

func (n *NFA) Next(id StateID, c rune) StateSet {
	return n.states.Get(id).Edges[c]
}
