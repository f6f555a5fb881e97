package automaton

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdfa/grammar"
	"lexdfa/token"
)

const sampleRules = `KEYWORD -> if
KEYWORD -> else
KEYWORD -> int
KEYWORD -> in
IDENTIFIER -> x
IDENTIFIER -> y
IDENTIFIER -> interval
CONSTANT -> 0
CONSTANT -> 10
DELIMITER -> ;
DELIMITER -> (
DELIMITER -> )
OPERATOR -> +
OPERATOR -> ++
OPERATOR -> =
OPERATOR -> ==
IDENTIFIER -> if
`

func TestCompileAcceptanceClosure(t *testing.T) {
	rules, err := grammar.Load("sample", strings.NewReader(sampleRules))
	require.NoError(t, err)

	d := Compile(rules.Patterns)
	want := expected(rules.Patterns)

	for _, p := range rules.Patterns {
		got, ok := d.Match(p.Literal)
		require.True(t, ok, "literal %q must be accepted", p.Literal)
		assert.Equal(t, want[p.Literal], got, "literal %q", p.Literal)
		assert.LessOrEqual(t, got, p.Category, "literal %q", p.Literal)
	}
}

func TestCompileTieBreakPrecedence(t *testing.T) {
	for _, patterns := range [][]grammar.Pattern{
		{pat(token.KEYWORD, "while"), pat(token.IDENTIFIER, "while")},
		{pat(token.IDENTIFIER, "while"), pat(token.KEYWORD, "while")},
	} {
		d := Compile(patterns)
		got, ok := d.Match("while")
		require.True(t, ok)
		assert.Equal(t, token.KEYWORD, got)
	}
}

func TestCompileRejectsPrefixesAndExtensions(t *testing.T) {
	d := Compile([]grammar.Pattern{pat(token.KEYWORD, "in"), pat(token.IDENTIFIER, "int")})

	got, ok := d.Match("in")
	require.True(t, ok)
	assert.Equal(t, token.KEYWORD, got)

	got, ok = d.Match("int")
	require.True(t, ok)
	assert.Equal(t, token.IDENTIFIER, got)

	for _, s := range []string{"", "i", "inte", "nt", "x"} {
		_, ok := d.Match(s)
		assert.False(t, ok, "string %q", s)
	}
}

func TestCompileMatchesMinimizedPipeline(t *testing.T) {
	rules, err := grammar.Load("sample", strings.NewReader(sampleRules))
	require.NoError(t, err)

	assert.Equal(t, Minimize(Determinize(BuildNFA(rules.Patterns))), Compile(rules.Patterns))
}

func TestStepOutsideTableRejects(t *testing.T) {
	d := Compile([]grammar.Pattern{pat(token.IDENTIFIER, "x")})

	_, ok := d.Step(StateID(d.NumStates()), 'x')
	assert.False(t, ok)
	_, ok = d.Step(-1, 'x')
	assert.False(t, ok)
	assert.Equal(t, token.None, d.Accept(StateID(d.NumStates())))

	next, ok := d.Step(d.Start(), 'x')
	require.True(t, ok)
	assert.Equal(t, token.IDENTIFIER, d.Accept(next))
}
