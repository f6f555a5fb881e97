package errors

// Diagnostic codes used by the tokenizer toolchain.
//
// Code ranges:
// E0001-E0099: Lexical errors found while scanning source text
// E0900-E0999: Input/output errors
// W0800-W0899: Rule file warnings

const (
	// E0001: No pattern matches at this position
	ErrorUnrecognizedCharacter = "E0001"

	// E0900: A rule or source file could not be opened or read
	ErrorIO = "E0900"

	// W0801: Rule line without an arrow or with an empty side
	WarningMalformedRule = "W0801"

	// W0802: Category name is not one of the known categories
	WarningUnknownCategory = "W0802"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnrecognizedCharacter:
		return "No token pattern matches the input starting at this character"
	case ErrorIO:
		return "A rule or source file could not be opened or read"
	case WarningMalformedRule:
		return "Rule line is not of the form 'CATEGORY -> literal' and was ignored"
	case WarningUnknownCategory:
		return "Category name is not recognized; the rule gets the lowest priority"
	default:
		return "Unknown error code"
	}
}
