package rename

import (
	"strings"
	"unicode"
)

// Words splits an identifier into words.
// Examples:
//   - "user_name" -> ["user", "name"]
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "http2Server" -> ["http2", "Server"]
func Words(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsWord(runes, i) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// isSeparator returns true if the rune separates words.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// startsWord determines if a new word starts at position i.
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	// "userName": lower (or digit) to upper
	if !unicode.IsUpper(prev) {
		return true
	}

	// "XMLParser": split before the last upper of an acronym
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
