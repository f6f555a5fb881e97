// Package token SPDX-License-Identifier: Apache-2.0
package token

import "fmt"

// Category is the token class attached to an accepting state. Lower codes win
// when several categories apply to the same string.
type Category int

const (
	// None marks a state that accepts nothing.
	None Category = -1

	KEYWORD Category = iota - 1
	IDENTIFIER
	CONSTANT
	DELIMITER
	OPERATOR

	// UNKNOWN is given to rule lines whose category name is not recognized.
	UNKNOWN
)

var names = map[Category]string{
	KEYWORD:    "KEYWORD",
	IDENTIFIER: "IDENTIFIER",
	CONSTANT:   "CONSTANT",
	DELIMITER:  "DELIMITER",
	OPERATOR:   "OPERATOR",
	UNKNOWN:    "UNKNOWN",
}

var categories = map[string]Category{
	"KEYWORD":    KEYWORD,
	"IDENTIFIER": IDENTIFIER,
	"CONSTANT":   CONSTANT,
	"DELIMITER":  DELIMITER,
	"OPERATOR":   OPERATOR,
}

func (c Category) String() string {
	if c == None {
		return "NONE"
	}
	if name, ok := names[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Accepting reports whether c names a real category.
func (c Category) Accepting() bool {
	return c != None
}

// LookupCategory maps a rule-file category name to its code. Names are
// matched verbatim; anything else is UNKNOWN.
func LookupCategory(name string) Category {
	if c, ok := categories[name]; ok {
		return c
	}
	return UNKNOWN
}

// Prefer merges two accept categories. None yields to anything, otherwise the
// numerically smaller code wins.
func Prefer(a, b Category) Category {
	switch {
	case a == None:
		return b
	case b == None:
		return a
	case b < a:
		return b
	default:
		return a
	}
}

// Token is one lexeme recognized by the scanner. Line and Column are 1-based,
// Column counts characters rather than bytes.
type Token struct {
	Line     int
	Column   int
	Category Category
	Lexeme   string
}

func (t Token) String() string {
	return fmt.Sprintf("(%d,%s,%q)", t.Line, t.Category, t.Lexeme)
}
