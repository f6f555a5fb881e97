package automaton

import (
	"testing"

	"lexdfa/grammar"
	"lexdfa/token"
)

func pat(c token.Category, literal string) grammar.Pattern {
	return grammar.Pattern{Category: c, Literal: literal}
}

// isomorphic reports whether a and b have the same shape up to renaming of
// states, pairing states by walking both from their start states.
func isomorphic(t *testing.T, a, b *DFA) bool {
	t.Helper()
	if a.NumStates() != b.NumStates() {
		return false
	}

	pair := map[StateID]StateID{a.Start(): b.Start()}
	queue := []StateID{a.Start()}
	for len(queue) > 0 {
		sa := queue[0]
		queue = queue[1:]
		sb := pair[sa]

		if a.Accept(sa) != b.Accept(sb) {
			return false
		}
		ta, tb := a.Transitions(sa), b.Transitions(sb)
		if len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if ta[i].Symbol != tb[i].Symbol {
				return false
			}
			if mapped, ok := pair[ta[i].Target]; ok {
				if mapped != tb[i].Target {
					return false
				}
				continue
			}
			pair[ta[i].Target] = tb[i].Target
			queue = append(queue, ta[i].Target)
		}
	}
	return true
}

// expected computes the category each literal should be accepted with.
func expected(patterns []grammar.Pattern) map[string]token.Category {
	want := map[string]token.Category{}
	for _, p := range patterns {
		prev, ok := want[p.Literal]
		if !ok {
			prev = token.None
		}
		want[p.Literal] = token.Prefer(prev, p.Category)
	}
	return want
}

// allStrings lists every string over alphabet with length up to n.
func allStrings(alphabet []rune, n int) []string {
	out := []string{""}
	frontier := []string{""}
	for range n {
		var next []string
		for _, s := range frontier {
			for _, c := range alphabet {
				next = append(next, s+string(c))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}
