package rename

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is an identifier transform.
type Rule int

const (
	Identity Rule = iota
	CamelCase
	KebabCase
	Lowercase
	PascalCase
	ScreamingKebabCase
	ScreamingSnakeCase
	SnakeCase
	Uppercase
)

// ruleNames maps rule identifiers as written in annotations.
var ruleNames = map[string]Rule{
	"camelCase":            CamelCase,
	"kebab-case":           KebabCase,
	"lowercase":            Lowercase,
	"PascalCase":           PascalCase,
	"SCREAMING-KEBAB-CASE": ScreamingKebabCase,
	"SCREAMING_SNAKE_CASE": ScreamingSnakeCase,
	"snake_case":           SnakeCase,
	"UPPERCASE":            Uppercase,
}

// ParseRule returns the rule named s, or Identity when s names no rule.
func ParseRule(s string) Rule {
	r, _ := Lookup(s)

	return r
}

// Lookup returns the rule named s and whether s named a known rule.
func Lookup(s string) (Rule, bool) {
	r, ok := ruleNames[s]
	if !ok {
		return Identity, false
	}

	return r, true
}

// String returns the rule identifier.
func (r Rule) String() string {
	switch r {
	case CamelCase:
		return "camelCase"
	case KebabCase:
		return "kebab-case"
	case Lowercase:
		return "lowercase"
	case PascalCase:
		return "PascalCase"
	case ScreamingKebabCase:
		return "SCREAMING-KEBAB-CASE"
	case ScreamingSnakeCase:
		return "SCREAMING_SNAKE_CASE"
	case SnakeCase:
		return "snake_case"
	case Uppercase:
		return "UPPERCASE"
	default:
		return "identity"
	}
}

// Apply transforms s according to r.
func Apply(r Rule, s string) string {
	switch r {
	case CamelCase:
		return joinWords(Words(s), "", func(i int, w string) string {
			if i == 0 {
				return lower(w)
			}

			return title(w)
		})
	case PascalCase:
		return joinWords(Words(s), "", func(_ int, w string) string { return title(w) })
	case SnakeCase:
		return joinWords(Words(s), "_", func(_ int, w string) string { return lower(w) })
	case KebabCase:
		return joinWords(Words(s), "-", func(_ int, w string) string { return lower(w) })
	case ScreamingSnakeCase:
		return joinWords(Words(s), "_", func(_ int, w string) string { return upper(w) })
	case ScreamingKebabCase:
		return joinWords(Words(s), "-", func(_ int, w string) string { return upper(w) })
	case Lowercase:
		return lower(s)
	case Uppercase:
		return upper(s)
	default:
		return s
	}
}

func joinWords(words []string, sep string, each func(int, string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = each(i, w)
	}

	return strings.Join(out, sep)
}

// Casers are not safe for concurrent use, so each call builds its own.

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func title(s string) string {
	return cases.Title(language.Und).String(s)
}
