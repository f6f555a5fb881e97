package automaton

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdfa/grammar"
	"lexdfa/token"
)

func TestInitialPartition(t *testing.T) {
	d := Determinize(BuildNFA([]grammar.Pattern{
		pat(token.IDENTIFIER, "ab"),
		pat(token.KEYWORD, "cb"),
		pat(token.IDENTIFIER, "d"),
	}))

	// 0 start, 1 a, 2 c, 3 d(IDENTIFIER), 4 ab(IDENTIFIER), 5 cb(KEYWORD)
	p := InitialPartition(d)
	assert.Equal(t, Partition{{0, 1, 2}, {5}, {3, 4}}, p)
}

func TestRefineSplitsByTransitionBehaviour(t *testing.T) {
	d := Determinize(BuildNFA([]grammar.Pattern{
		pat(token.KEYWORD, "ab"),
		pat(token.KEYWORD, "cb"),
	}))
	require.Equal(t, 5, d.NumStates())

	initial := InitialPartition(d)
	assert.Equal(t, Partition{{0, 1, 2}, {3, 4}}, initial)

	once := Refine(d, initial)
	assert.Equal(t, Partition{{0}, {1, 2}, {3, 4}}, once)
	assert.Equal(t, Partition{{0, 1, 2}, {3, 4}}, initial, "Refine must not modify its input")

	assert.Equal(t, once, Refine(d, once), "a stable partition is a fixpoint")
}

func TestMinimizeMergesEquivalentStates(t *testing.T) {
	d := Determinize(BuildNFA([]grammar.Pattern{
		pat(token.KEYWORD, "ab"),
		pat(token.KEYWORD, "cb"),
	}))
	m := Minimize(d)

	require.Equal(t, 3, m.NumStates())
	assert.Equal(t, StateID(0), m.Start())
	assert.Equal(t, []Transition{{Symbol: 'a', Target: 1}, {Symbol: 'c', Target: 1}}, m.Transitions(0))
	assert.Equal(t, []Transition{{Symbol: 'b', Target: 2}}, m.Transitions(1))
	assert.Equal(t, token.KEYWORD, m.Accept(2))

	assert.Equal(t, 5, d.NumStates(), "input DFA is left untouched")
}

func TestMinimizeKeepsCategoriesApart(t *testing.T) {
	d := Determinize(BuildNFA([]grammar.Pattern{
		pat(token.KEYWORD, "ab"),
		pat(token.IDENTIFIER, "cb"),
	}))
	m := Minimize(d)

	assert.Equal(t, 5, m.NumStates())
	assert.True(t, isomorphic(t, d, m))
}

func TestMinimizeIsIdempotent(t *testing.T) {
	patterns := []grammar.Pattern{
		pat(token.KEYWORD, "if"),
		pat(token.KEYWORD, "of"),
		pat(token.KEYWORD, "in"),
		pat(token.IDENTIFIER, "int"),
		pat(token.OPERATOR, "+"),
		pat(token.OPERATOR, "+="),
		pat(token.OPERATOR, "-="),
	}
	once := Minimize(Determinize(BuildNFA(patterns)))
	twice := Minimize(once)

	assert.Equal(t, once.NumStates(), twice.NumStates())
	assert.True(t, isomorphic(t, once, twice))
	assert.Equal(t, once, twice)
}

func TestMinimizeIsSound(t *testing.T) {
	patterns := []grammar.Pattern{
		pat(token.KEYWORD, "ab"),
		pat(token.KEYWORD, "bb"),
		pat(token.IDENTIFIER, "abb"),
		pat(token.IDENTIFIER, "bbb"),
		pat(token.CONSTANT, "a"),
		pat(token.OPERATOR, "ba"),
		pat(token.DELIMITER, "ab"),
	}
	d := Determinize(BuildNFA(patterns))
	m := Minimize(d)
	assert.Less(t, m.NumStates(), d.NumStates())

	for _, s := range allStrings([]rune("ab"), 5) {
		dc, dok := d.Match(s)
		mc, mok := m.Match(s)
		assert.Equal(t, dok, mok, "string %q", s)
		assert.Equal(t, dc, mc, "string %q", s)
	}
}

func TestMinimizeRandomPatternSets(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	alphabet := []rune("abc")
	categories := []token.Category{token.KEYWORD, token.IDENTIFIER, token.CONSTANT, token.DELIMITER, token.OPERATOR, token.UNKNOWN}

	for round := range 25 {
		var patterns []grammar.Pattern
		for range 1 + rng.IntN(8) {
			literal := make([]rune, 1+rng.IntN(4))
			for i := range literal {
				literal[i] = alphabet[rng.IntN(len(alphabet))]
			}
			patterns = append(patterns, pat(categories[rng.IntN(len(categories))], string(literal)))
		}

		d := Determinize(BuildNFA(patterns))
		m := Minimize(d)
		want := expected(patterns)

		require.LessOrEqual(t, m.NumStates(), d.NumStates(), "round %d", round)
		assert.True(t, isomorphic(t, m, Minimize(m)), "round %d", round)

		for _, s := range allStrings(alphabet, 5) {
			got, ok := m.Match(s)
			category, accepted := want[s]
			require.Equal(t, accepted, ok, "round %d string %q patterns %v", round, s, patterns)
			if accepted {
				require.Equal(t, category, got, "round %d string %q", round, s)
			}
		}
	}
}

func TestMinimizeEmpty(t *testing.T) {
	m := Minimize(Determinize(NewNFA()))
	assert.Equal(t, 1, m.NumStates())
	assert.Equal(t, token.None, m.Accept(m.Start()))
}
