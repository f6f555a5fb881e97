package grammar

import (
	"strings"
)

func (p Pattern) String() string {
	return p.Category.String() + " -> " + p.Literal
}

// String renders the rule set in canonical rule-file form, one pattern per
// line. Loading the output yields the same patterns.
func (r *RuleSet) String() string {
	var b strings.Builder
	for _, p := range r.Patterns {
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	return b.String()
}
