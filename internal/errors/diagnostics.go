package errors

import (
	"fmt"
	"strings"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err Diagnostic
}

// NewError creates a new error builder
func NewError(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: Diagnostic{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewWarning creates a new warning builder
func NewWarning(code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: Diagnostic{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.err
}

// UnrecognizedCharacter creates the error reported when scanning cannot match
// anything at pos. The scanner skips ch and continues.
func UnrecognizedCharacter(ch rune, pos Position) Diagnostic {
	return NewError(ErrorUnrecognizedCharacter,
		fmt.Sprintf("unrecognized character %q at line %d, column %d", ch, pos.Line, pos.Column), pos).
		WithNote("the character was skipped and scanning resumed after it").
		WithHelp("add a rule such as 'DELIMITER -> " + string(ch) + "' if it should be a token").
		Build()
}

// MalformedRule creates the warning for a rule line that was ignored.
func MalformedRule(line int, text, reason string) Diagnostic {
	return NewWarning(WarningMalformedRule, fmt.Sprintf("ignored rule line: %s", reason), Position{Line: line, Column: 1}).
		WithLength(max(1, len([]rune(text)))).
		WithHelp("rule lines have the form 'CATEGORY -> literal'").
		Build()
}

// KnownCategories lists the category names accepted in rule files, highest priority first.
var KnownCategories = []string{"KEYWORD", "IDENTIFIER", "CONSTANT", "DELIMITER", "OPERATOR"}

// UnknownCategory creates the warning for a rule whose category name is not recognized.
func UnknownCategory(name string, line int) Diagnostic {
	builder := NewWarning(WarningUnknownCategory, fmt.Sprintf("unknown category '%s'", name), Position{Line: line, Column: 1}).
		WithLength(max(1, len([]rune(name))))

	similar := findSimilarNames(name, KnownCategories)
	if len(similar) == 1 {
		builder = builder.WithReplacement(fmt.Sprintf("did you mean '%s'?", similar[0]), similar[0])
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.
		WithNote("rules with unknown categories are kept with the lowest priority").
		Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	upper := strings.ToUpper(target)
	for _, candidate := range candidates {
		if levenshteinDistance(upper, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
