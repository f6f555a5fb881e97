package grammar

import (
	lexerrors "lexdfa/internal/errors"
	"lexdfa/token"
)

// RuleLine is the parse tree of one `CATEGORY -> literal` line. Both sides
// are untrimmed.
type RuleLine struct {
	Category string `@Text*`
	Literal  string `Arrow @Rest?`
}

// Pattern is a literal token pattern tagged with its category.
type Pattern struct {
	Category token.Category
	Literal  string
}

// RuleSet is the ordered result of loading a rule source.
type RuleSet struct {
	Name     string
	Patterns []Pattern
	// Warnings holds one entry per ignored line and per unknown category name.
	Warnings []lexerrors.Diagnostic
}
