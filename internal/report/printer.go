package report

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"lexdfa/internal/automaton"
	"lexdfa/token"
)

// Printer provides pretty-printing for automata and token streams
type Printer struct {
	indent int
	output strings.Builder
}

// NewPrinter creates a new printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// PrintDFA returns the state-by-state dump of d: each state with its accept
// category, its transitions, then the start state.
func PrintDFA(d *automaton.DFA) string {
	p := NewPrinter()
	p.printDFA(d)
	return p.output.String()
}

// PrintTokens returns the token stream as aligned (line, category, lexeme) rows.
func PrintTokens(tokens []token.Token) string {
	p := NewPrinter()
	p.printTokens(tokens)
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printDFA(d *automaton.DFA) {
	p.writeLine("===== MINIMIZED DFA (%d states) =====", d.NumStates())
	for id := range d.NumStates() {
		state := automaton.StateID(id)
		if accept := d.Accept(state); accept.Accepting() {
			p.writeLine("state %d [accept, %s] :", id, accept)
		} else {
			p.writeLine("state %d :", id)
		}

		p.indent++
		for _, t := range d.Transitions(state) {
			p.writeLine("%s -> %d", FormatSymbol(t.Symbol), t.Target)
		}
		p.indent--
	}
	p.writeLine("start state: %d", d.Start())
	p.writeLine("=====================================")
}

func (p *Printer) printTokens(tokens []token.Token) {
	p.writeLine("%-6s %-12s %s", "LINE", "CATEGORY", "LEXEME")
	for _, t := range tokens {
		p.writeLine("%-6d %-12s %s", t.Line, t.Category, t.Lexeme)
	}
}

// FormatSymbol renders a transition symbol. Visible characters print as
// themselves, anything else (including space) as a quoted rune literal.
func FormatSymbol(c rune) string {
	if unicode.IsGraphic(c) && !unicode.IsSpace(c) {
		return string(c)
	}
	return strconv.QuoteRune(c)
}
