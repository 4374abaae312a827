package options

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// Option is one entry of an option list.
type Option struct {
	Key string
	// Value is the raw text after '=', with surrounding spaces trimmed.
	Value    string
	HasValue bool
	Pos      token.Position
}

// String renders the option as it would be written.
func (o Option) String() string {
	if !o.HasValue {
		return o.Key
	}

	return o.Key + "=" + o.Value
}

// Unquoted returns Value with Go string quoting removed. Unquoted values are
// returned as is.
func (o Option) Unquoted() (string, error) {
	v := o.Value
	if len(v) >= 2 && (v[0] == '"' || v[0] == '`') {
		s, err := strconv.Unquote(v)
		if err != nil {
			return "", fmt.Errorf("option %s: invalid string %s: %w", o.Key, v, err)
		}

		return s, nil
	}

	return v, nil
}

// SyntaxError reports an option list that cannot be split.
type SyntaxError struct {
	Pos token.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Msg
	}

	return e.Msg
}

// Parse splits an option list. Commas inside quotes, brackets, braces and
// parentheses do not separate options, so default expressions such as
// `default=[]int{1, 2}` survive intact.
func Parse(s string, pos token.Position) ([]Option, error) {
	items, err := split(s, pos)
	if err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(items))

	for _, item := range items {
		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)

		if !isKey(key) {
			return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("invalid option name %q", key)}
		}

		opt := Option{Key: key, HasValue: hasValue, Pos: pos}
		if hasValue {
			opt.Value = strings.TrimSpace(value)
		}

		opts = append(opts, opt)
	}

	return opts, nil
}

func split(s string, pos token.Position) ([]string, error) {
	var (
		items []string
		depth []rune
		quote rune
		start int
	)

	closing := map[rune]rune{'(': ')', '[': ']', '{': '}'}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case quote != 0:
			if r == '\\' && quote != '`' {
				i++
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '`' || r == '\'':
			quote = r
		case closing[r] != 0:
			depth = append(depth, closing[r])
		case r == ')' || r == ']' || r == '}':
			if len(depth) == 0 || depth[len(depth)-1] != r {
				return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unbalanced %q in %q", r, s)}
			}

			depth = depth[:len(depth)-1]
		case r == ',' && len(depth) == 0:
			items = appendItem(items, string(runes[start:i]))
			start = i + 1
		}
	}

	if quote != 0 {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unterminated quote in %q", s)}
	}

	if len(depth) > 0 {
		return nil, &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unclosed %q in %q", depth[len(depth)-1], s)}
	}

	return appendItem(items, string(runes[start:])), nil
}

func appendItem(items []string, item string) []string {
	if strings.TrimSpace(item) == "" {
		return items
	}

	return append(items, item)
}

func isKey(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}

	return true
}
