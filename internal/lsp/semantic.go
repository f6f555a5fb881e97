package lsp

import (
	"unicode/utf16"

	"lexdfa/token"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// tokenTypeNames maps categories onto the semantic token legend.
var tokenTypeNames = map[token.Category]string{
	token.KEYWORD:    "keyword",
	token.IDENTIFIER: "variable",
	token.CONSTANT:   "number",
	token.DELIMITER:  "delimiter",
	token.OPERATOR:   "operator",
}

// collectSemanticTokens positions every token of a known category. lines
// holds the document text so columns can be converted to UTF-16 offsets.
func collectSemanticTokens(tokens []token.Token, lines []string) []SemanticToken {
	var out []SemanticToken

	for _, t := range tokens {
		name, ok := tokenTypeNames[t.Category]
		if !ok {
			continue
		}

		var line []rune
		if t.Line-1 < len(lines) {
			line = []rune(lines[t.Line-1])
		}

		out = append(out, SemanticToken{
			Line:      uint32(t.Line - 1),
			StartChar: utf16Offset(line, t.Column-1),
			Length:    uint32(len(utf16.Encode([]rune(t.Lexeme)))),
			TokenType: indexOf(name, SemanticTokenTypes),
		})
	}

	return out
}

// encodeSemanticTokens applies the LSP delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := []uint32{}
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

// utf16Offset returns the UTF-16 length of the first n characters of line.
func utf16Offset(line []rune, n int) uint32 {
	n = min(n, len(line))
	return uint32(len(utf16.Encode(line[:n])))
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
