package grammar

import (
	"errors"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/tliron/commonlog"

	lexerrors "lexdfa/internal/errors"
	"lexdfa/internal/source"
	"lexdfa/token"
)

var log = commonlog.GetLogger("lexdfa.grammar")

var (
	ErrMissingArrow  = errors.New("missing '->'")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyLiteral  = errors.New("empty literal")
)

var ruleParser = participle.MustBuild[RuleLine](
	participle.Lexer(RuleLexer),
)

// ParseLine parses a single rule line. Surrounding spaces and tabs are trimmed
// from both sides of the first arrow.
func ParseLine(line string) (Pattern, error) {
	parsed, err := ruleParser.ParseString("", line)
	if err != nil {
		return Pattern{}, ErrMissingArrow
	}

	category := trim(parsed.Category)
	literal := trim(parsed.Literal)
	if category == "" {
		return Pattern{}, ErrEmptyCategory
	}
	if literal == "" {
		return Pattern{}, ErrEmptyLiteral
	}

	return Pattern{Category: token.LookupCategory(category), Literal: literal}, nil
}

// Load reads rule lines from r. Malformed lines are skipped and reported as
// warnings; they never fail the load.
func Load(name string, r io.Reader) (*RuleSet, error) {
	rules := &RuleSet{Name: name}

	err := source.ReadLines(r, func(lineNo int, line string) {
		if trim(line) == "" {
			return
		}

		pattern, err := ParseLine(line)
		if err != nil {
			log.Warningf("%s:%d: ignored rule line %q: %s", name, lineNo, line, err)
			rules.Warnings = append(rules.Warnings, lexerrors.MalformedRule(lineNo, line, err.Error()))
			return
		}

		if pattern.Category == token.UNKNOWN {
			category := trim(line[:strings.Index(line, "->")])
			log.Debugf("%s:%d: unknown category %q", name, lineNo, category)
			rules.Warnings = append(rules.Warnings, lexerrors.UnknownCategory(category, lineNo))
		}

		rules.Patterns = append(rules.Patterns, pattern)
	})
	if err != nil {
		return nil, lexerrors.NewIOError("read", name, err)
	}

	log.Infof("loaded %d patterns from %s", len(rules.Patterns), name)
	return rules, nil
}

// LoadFile opens path and loads its rules.
func LoadFile(path string) (*RuleSet, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(path, f)
}

func trim(s string) string {
	return strings.Trim(s, " \t")
}
