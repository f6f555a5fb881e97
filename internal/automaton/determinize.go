package automaton

import (
	"slices"

	"lexdfa/token"
)

// Determinize converts n into an equivalent DFA by subset construction. Every
// DFA state stands for one non-empty set of NFA states reachable from the
// start; the start set {n.Start()} becomes DFA state 0. Symbols are probed in
// ascending order and new sets are numbered in discovery order, so the result
// is the same on every run.
func Determinize(n Nondeterministic) *DFA {
	alphabet := collectAlphabet(n)
	d := newDFA(alphabet)

	start := NewStateSet(n.Start())
	ids := map[string]StateID{start.Key(): d.addState(subsetAccept(n, start))}
	d.start = 0

	queue := []StateSet{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		from := ids[current.Key()]

		for _, c := range alphabet {
			var next StateSet
			for _, id := range current {
				next = next.Union(n.Next(id, c))
			}
			if len(next) == 0 {
				continue
			}

			key := next.Key()
			to, seen := ids[key]
			if !seen {
				to = d.addState(subsetAccept(n, next))
				ids[key] = to
				queue = append(queue, next)
			}
			d.states.At(from).Next[c] = to
		}
	}

	log.Debugf("determinized %d NFA states into %d DFA states over %d symbols",
		n.NumStates(), d.NumStates(), len(alphabet))
	return d
}

func collectAlphabet(n Nondeterministic) []rune {
	seen := map[rune]bool{}
	var alphabet []rune
	for id := range n.NumStates() {
		for _, c := range n.Symbols(StateID(id)) {
			if !seen[c] {
				seen[c] = true
				alphabet = append(alphabet, c)
			}
		}
	}
	slices.Sort(alphabet)
	return alphabet
}

func subsetAccept(n Nondeterministic, set StateSet) token.Category {
	accept := token.None
	for _, id := range set {
		accept = token.Prefer(accept, n.Accept(id))
	}
	return accept
}
