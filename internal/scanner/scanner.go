package scanner

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	lexerrors "lexdfa/internal/errors"
	"lexdfa/internal/source"
	"lexdfa/token"
)

var log = commonlog.GetLogger("lexdfa.scanner")

// Scanner splits source text into tokens by maximal munch over an automaton.
type Scanner struct {
	dfa    Automaton
	name   string
	source io.Reader
	tokens []token.Token
	errors []LexicalError
}

func NewScanner(dfa Automaton, source string) *Scanner {
	return &Scanner{
		dfa:    dfa,
		name:   "<input>",
		source: strings.NewReader(source),
	}
}

// ScanTokens scans every line of the source. Lexical errors are collected
// and available from Errors.
func (s *Scanner) ScanTokens() []token.Token {
	if err := s.scanAll(); err != nil {
		// a string source cannot fail to read
		log.Errorf("%s: %s", s.name, err)
	}
	return s.tokens
}

// Errors returns the lexical errors found so far, in input order.
func (s *Scanner) Errors() []LexicalError {
	return s.errors
}

// ScanReader tokenizes r. A read failure is returned as an IOError together
// with whatever was scanned before it.
func ScanReader(dfa Automaton, name string, r io.Reader) ([]token.Token, []LexicalError, error) {
	s := &Scanner{dfa: dfa, name: name, source: r}
	err := s.scanAll()
	return s.tokens, s.errors, err
}

// ScanFile opens path and tokenizes its contents.
func ScanFile(dfa Automaton, path string) ([]token.Token, []LexicalError, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ScanReader(dfa, path, f)
}

func (s *Scanner) scanAll() error {
	if err := source.ReadLines(s.source, s.ScanLine); err != nil {
		return lexerrors.NewIOError("read", s.name, err)
	}

	log.Debugf("%s: %d tokens, %d lexical errors", s.name, len(s.tokens), len(s.errors))
	return nil
}

// ScanLine tokenizes one line. Every iteration advances pos, either past a
// match or by exactly one character after an error.
func (s *Scanner) ScanLine(lineNo int, line string) {
	chars := []rune(line)
	pos := 0
	for pos < len(chars) {
		if isSeparator(chars[pos]) {
			pos++
			continue
		}

		end, category := s.longestMatch(chars, pos)
		if end < 0 {
			s.reportError(lineNo, pos, chars[pos])
			pos++
			continue
		}

		s.tokens = append(s.tokens, token.Token{
			Line:     lineNo,
			Column:   pos + 1,
			Category: category,
			Lexeme:   string(chars[pos : end+1]),
		})
		pos = end + 1
	}
}

// longestMatch walks the automaton from pos while transitions exist and
// returns the index of the last character that left it in an accepting
// state, or -1.
func (s *Scanner) longestMatch(chars []rune, pos int) (int, token.Category) {
	state := s.dfa.Start()
	lastEnd, lastCategory := -1, token.None

	for j := pos; j < len(chars); j++ {
		next, ok := s.dfa.Step(state, chars[j])
		if !ok {
			break
		}
		state = next
		if accept := s.dfa.Accept(state); accept.Accepting() {
			lastEnd, lastCategory = j, accept
		}
	}
	return lastEnd, lastCategory
}

func (s *Scanner) reportError(lineNo, pos int, c rune) {
	err := LexicalError{
		Message:   fmt.Sprintf("unrecognized character %q", c),
		Position:  Position{Line: lineNo, Column: pos + 1},
		Length:    1,
		Character: c,
	}
	log.Warningf("%s:%d:%d: %s", s.name, lineNo, pos+1, err.Message)
	s.errors = append(s.errors, err)
}

// isSeparator reports the only characters skipped between tokens.
func isSeparator(c rune) bool {
	return c == ' ' || c == '\t'
}
