package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// RuleLexer splits a rule line at its first arrow. Everything after the arrow
// is one Rest token, so later arrows belong to the literal.
var RuleLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Arrow", `->`, lexer.Push("Literal")},
		{"Text", `[^-]+|-`, nil},
	},
	"Literal": {
		{"Rest", `.+`, nil},
	},
})
