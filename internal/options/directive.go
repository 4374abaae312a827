package options

import (
	"go/ast"
	"go/token"
	"reflect"
	"strings"
	"unicode"
)

// Prefix starts every derive comment directive.
const Prefix = "//derive:"

// TagKey is the struct tag key holding field options.
const TagKey = "derive"

// ClassVerb marks a directive carrying type options rather than features.
const ClassVerb = "class"

// Directive is one "//derive:" comment line.
type Directive struct {
	// Verb is ClassVerb for type options and empty otherwise.
	Verb string
	Args string
	Pos  token.Position
}

// Directives returns the derive directives of a doc comment, in order.
func Directives(doc *ast.CommentGroup, fset *token.FileSet) []Directive {
	if doc == nil {
		return nil
	}

	var out []Directive

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, Prefix)
		if !ok {
			continue
		}

		d := Directive{Args: strings.TrimSpace(text), Pos: fset.Position(c.Slash)}

		if rest, ok := strings.CutPrefix(d.Args, ClassVerb); ok && (rest == "" || unicode.IsSpace(rune(rest[0]))) {
			d.Verb = ClassVerb
			d.Args = strings.TrimSpace(rest)
		}

		out = append(out, d)
	}

	return out
}

// Options parses the option list of the directive.
func (d Directive) Options() ([]Option, error) {
	return Parse(d.Args, d.Pos)
}

// Features splits a feature directive into feature names. Names may be
// separated by commas or spaces.
func (d Directive) Features() []string {
	return strings.FieldsFunc(d.Args, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// TagOptions parses the derive struct tag, if present.
func TagOptions(tag reflect.StructTag, pos token.Position) ([]Option, bool, error) {
	value, ok := tag.Lookup(TagKey)
	if !ok {
		return nil, false, nil
	}

	opts, err := Parse(value, pos)

	return opts, true, err
}
