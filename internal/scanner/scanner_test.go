package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdfa/grammar"
	"lexdfa/internal/automaton"
	lexerrors "lexdfa/internal/errors"
	"lexdfa/token"
)

func compile(t *testing.T, rules string) *automaton.DFA {
	t.Helper()
	set, err := grammar.Load("rules", strings.NewReader(rules))
	require.NoError(t, err)
	return automaton.Compile(set.Patterns)
}

func tok(line, column int, category token.Category, lexeme string) token.Token {
	return token.Token{Line: line, Column: column, Category: category, Lexeme: lexeme}
}

func TestScenarioA(t *testing.T) {
	dfa := compile(t, "KEYWORD -> if\nIDENTIFIER -> x\nOPERATOR -> +\n")

	scanner := NewScanner(dfa, "if x+x")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.KEYWORD, "if"),
		tok(1, 4, token.IDENTIFIER, "x"),
		tok(1, 5, token.OPERATOR, "+"),
		tok(1, 6, token.IDENTIFIER, "x"),
	}, tokens)
	assert.Empty(t, scanner.Errors())
}

func TestScenarioBMaximalMunch(t *testing.T) {
	dfa := compile(t, "KEYWORD -> in\nIDENTIFIER -> int\n")

	scanner := NewScanner(dfa, "int")
	tokens := scanner.ScanTokens()

	require.Len(t, tokens, 1)
	assert.Equal(t, tok(1, 1, token.IDENTIFIER, "int"), tokens[0])
	assert.Empty(t, scanner.Errors())
}

func TestScenarioCErrorRecovery(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> a\n")

	scanner := NewScanner(dfa, "a@")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{tok(1, 1, token.IDENTIFIER, "a")}, tokens)
	require.Len(t, scanner.Errors(), 1)

	err := scanner.Errors()[0]
	assert.Equal(t, Position{Line: 1, Column: 2}, err.Position)
	assert.Equal(t, '@', err.Character)
	assert.Equal(t, 1, err.Length)
	assert.Equal(t, "1:2: unrecognized character '@'", err.Error())
}

func TestFallsBackToLastAcceptingState(t *testing.T) {
	dfa := compile(t, "KEYWORD -> in\nIDENTIFIER -> inter\nIDENTIFIER -> x\n")

	// "inte" walks past the accepting "in" and dead-ends; the match backs off to "in".
	scanner := NewScanner(dfa, "intex")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.KEYWORD, "in"),
	}, tokens[:1])
	require.Len(t, scanner.Errors(), 2)
	assert.Equal(t, 3, scanner.Errors()[0].Position.Column)
	assert.Equal(t, 4, scanner.Errors()[1].Position.Column)
	assert.Equal(t, tok(1, 5, token.IDENTIFIER, "x"), tokens[1])
}

func TestRecoveryAlwaysAdvances(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> ab\n")

	// "a" is a live prefix but never accepting, so each "a" is an error of its own.
	scanner := NewScanner(dfa, "aaab")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{tok(1, 3, token.IDENTIFIER, "ab")}, tokens)
	require.Len(t, scanner.Errors(), 2)
	assert.Equal(t, 1, scanner.Errors()[0].Position.Column)
	assert.Equal(t, 2, scanner.Errors()[1].Position.Column)
}

func TestOnlySpaceAndTabSeparate(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> x\nDELIMITER -> ;\n")

	scanner := NewScanner(dfa, "x\t x;\vx")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.IDENTIFIER, "x"),
		tok(1, 4, token.IDENTIFIER, "x"),
		tok(1, 5, token.DELIMITER, ";"),
		tok(1, 7, token.IDENTIFIER, "x"),
	}, tokens)
	require.Len(t, scanner.Errors(), 1)
	assert.Equal(t, '\v', scanner.Errors()[0].Character)
	assert.Equal(t, 6, scanner.Errors()[0].Position.Column)
}

func TestTokensDoNotSpanLines(t *testing.T) {
	dfa := compile(t, "KEYWORD -> if\nIDENTIFIER -> i\nIDENTIFIER -> f\n")

	scanner := NewScanner(dfa, "i\nf\r\nif\n\n  if")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.IDENTIFIER, "i"),
		tok(2, 1, token.IDENTIFIER, "f"),
		tok(3, 1, token.KEYWORD, "if"),
		tok(5, 3, token.KEYWORD, "if"),
	}, tokens)
	assert.Empty(t, scanner.Errors())
}

func TestLiteralsWithSpacesMatchAcrossSeparators(t *testing.T) {
	dfa := compile(t, "KEYWORD -> end if\nKEYWORD -> end\nKEYWORD -> if\n")

	tokens := NewScanner(dfa, "end if end  if").ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.KEYWORD, "end if"),
		tok(1, 8, token.KEYWORD, "end"),
		tok(1, 13, token.KEYWORD, "if"),
	}, tokens)
}

func TestUnicodeColumnsCountCharacters(t *testing.T) {
	dfa := compile(t, "OPERATOR -> ≠\nIDENTIFIER -> é\n")

	scanner := NewScanner(dfa, "é≠é ?")
	tokens := scanner.ScanTokens()

	assert.Equal(t, []token.Token{
		tok(1, 1, token.IDENTIFIER, "é"),
		tok(1, 2, token.OPERATOR, "≠"),
		tok(1, 3, token.IDENTIFIER, "é"),
	}, tokens)
	require.Len(t, scanner.Errors(), 1)
	assert.Equal(t, 5, scanner.Errors()[0].Position.Column)
}

func TestEmptyRuleSetReportsEveryCharacter(t *testing.T) {
	dfa := automaton.Compile(nil)

	scanner := NewScanner(dfa, "ab c")
	assert.Empty(t, scanner.ScanTokens())
	assert.Len(t, scanner.Errors(), 3)
}

func TestLexicalErrorDiagnostic(t *testing.T) {
	err := LexicalError{Message: "unrecognized character '@'", Position: Position{Line: 2, Column: 7}, Length: 1, Character: '@'}

	d := err.Diagnostic()
	assert.Equal(t, lexerrors.ErrorUnrecognizedCharacter, d.Code)
	assert.Equal(t, lexerrors.Position{Line: 2, Column: 7}, d.Position)
}

func TestScanFile(t *testing.T) {
	dfa := compile(t, "KEYWORD -> if\nIDENTIFIER -> x\nOPERATOR -> +\n")
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte("if x\nx+x\n"), 0o644))

	tokens, lexErrs, err := ScanFile(dfa, path)
	require.NoError(t, err)
	assert.Empty(t, lexErrs)
	assert.Equal(t, []token.Token{
		tok(1, 1, token.KEYWORD, "if"),
		tok(1, 4, token.IDENTIFIER, "x"),
		tok(2, 1, token.IDENTIFIER, "x"),
		tok(2, 2, token.OPERATOR, "+"),
		tok(2, 3, token.IDENTIFIER, "x"),
	}, tokens)
}

func TestScanFileUTF16(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> x\n")
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'x', 0, ' ', 0, 'x', 0}, 0o644))

	tokens, lexErrs, err := ScanFile(dfa, path)
	require.NoError(t, err)
	assert.Empty(t, lexErrs)
	assert.Equal(t, []token.Token{
		tok(1, 1, token.IDENTIFIER, "x"),
		tok(1, 3, token.IDENTIFIER, "x"),
	}, tokens)
}

func TestScanFileMissing(t *testing.T) {
	_, _, err := ScanFile(automaton.Compile(nil), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var ioErr *lexerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestScanFileLineLongerThanOneMebibyte(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> a\n")
	long := strings.Repeat("a ", 600000)
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte(long+"\na\n"), 0o644))

	tokens, lexErrs, err := ScanFile(dfa, path)
	require.NoError(t, err)
	assert.Empty(t, lexErrs)
	require.Len(t, tokens, 600001)
	assert.Equal(t, tok(1, 1199999, token.IDENTIFIER, "a"), tokens[599999])
	assert.Equal(t, tok(2, 1, token.IDENTIFIER, "a"), tokens[600000])
}

func TestScanTokensLineLongerThanOneMebibyte(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> a\n")

	s := NewScanner(dfa, strings.Repeat("a ", 600000)+"?")
	tokens := s.ScanTokens()

	assert.Len(t, tokens, 600000)
	require.Len(t, s.Errors(), 1)
	assert.Equal(t, Position{Line: 1, Column: 1200001}, s.Errors()[0].Position)
}

func TestScanReaderFailure(t *testing.T) {
	dfa := compile(t, "IDENTIFIER -> x\n")
	r := iotest.TimeoutReader(strings.NewReader("x\nx\n"))

	_, _, err := ScanReader(dfa, "flaky", r)
	require.Error(t, err)

	var ioErr *lexerrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
}
