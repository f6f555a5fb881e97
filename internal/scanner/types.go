package scanner

import (
	"fmt"

	"lexdfa/internal/automaton"
	lexerrors "lexdfa/internal/errors"
	"lexdfa/token"
)

// Automaton is the read-only view of a DFA the scanner drives.
type Automaton interface {
	Start() automaton.StateID
	Step(id automaton.StateID, c rune) (automaton.StateID, bool)
	Accept(id automaton.StateID) token.Category
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based, in characters
}

// LexicalError reports a position where no pattern matches. The scanner skips
// one character and keeps going.
type LexicalError struct {
	Message   string
	Position  Position
	Length    int
	Character rune
}

func (e LexicalError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Message)
}

// Diagnostic converts e for the error reporter.
func (e LexicalError) Diagnostic() lexerrors.Diagnostic {
	return lexerrors.UnrecognizedCharacter(e.Character, lexerrors.Position{
		Line:   e.Position.Line,
		Column: e.Position.Column,
	})
}
