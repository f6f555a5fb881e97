package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"lexdfa/internal/scanner"
)

// ConvertLexicalErrors transforms scanner errors into LSP diagnostics for IDE display.
// lines holds the document text; columns are converted to UTF-16 offsets.
func ConvertLexicalErrors(lexErrors []scanner.LexicalError, lines []string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for _, lexErr := range lexErrors {
		var line []rune
		if lexErr.Position.Line-1 < len(lines) {
			line = []rune(lines[lexErr.Position.Line-1])
		}
		start := utf16Offset(line, lexErr.Position.Column-1)
		end := utf16Offset(line, lexErr.Position.Column-1+max(1, lexErr.Length))

		diagnostic := protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(lexErr.Position.Line - 1), // Convert to 0-based indexing
					Character: start,
				},
				End: protocol.Position{
					Line:      uint32(lexErr.Position.Line - 1),
					Character: end,
				},
			},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Code:     &protocol.IntegerOrString{Value: lexErr.Diagnostic().Code},
			Source:   ptrString("lexdfa-scanner"),
			Message:  lexErr.Message,
		}
		diagnostics = append(diagnostics, diagnostic)
	}

	return diagnostics
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
