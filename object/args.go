package object

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Args carries the arguments of a dynamic call.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Call builds Args from positional values.
func Call(positional ...any) Args {
	return Args{Positional: positional}
}

// With returns a copy of a with the keyword argument name set to v.
func (a Args) With(name string, v any) Args {
	kw := make(map[string]any, len(a.Keyword)+1)
	maps.Copy(kw, a.Keyword)
	kw[name] = v

	return Args{Positional: a.Positional, Keyword: kw}
}

// Param is one constructor parameter.
type Param struct {
	Name     string
	KwOnly   bool
	Optional bool
}

// Signature describes how dynamic arguments bind to constructor parameters.
// Positional-or-keyword parameters always precede keyword-only ones.
type Signature struct {
	Name   string
	Params []Param
}

// NewSignature returns a signature for the type called name.
// It panics if a positional parameter follows a keyword-only one, since
// generated code never produces that layout.
func NewSignature(name string, params ...Param) *Signature {
	kwOnly := false
	for _, p := range params {
		if kwOnly && !p.KwOnly {
			panic(fmt.Sprintf("object: positional parameter %q follows keyword-only parameters", p.Name))
		}

		kwOnly = kwOnly || p.KwOnly
	}

	return &Signature{Name: name, Params: params}
}

// NumPositional returns the number of parameters accepted by position.
func (s *Signature) NumPositional() int {
	n := 0
	for _, p := range s.Params {
		if !p.KwOnly {
			n++
		}
	}

	return n
}

// String renders the signature, e.g. "Point(x, y=..., *, label)".
func (s *Signature) String() string {
	parts := make([]string, 0, len(s.Params)+1)
	star := false

	for _, p := range s.Params {
		if p.KwOnly && !star {
			parts = append(parts, "*")
			star = true
		}

		if p.Optional {
			parts = append(parts, p.Name+"=...")
		} else {
			parts = append(parts, p.Name)
		}
	}

	return s.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Bind matches args against the signature. The result holds one slot per
// parameter in declaration order; slots of omitted optional parameters hold
// Missing.
func (s *Signature) Bind(args Args) ([]any, error) {
	positional := s.NumPositional()
	if len(args.Positional) > positional {
		return nil, s.errorf("takes %d positional arguments but %d were given", positional, len(args.Positional))
	}

	slots := make([]any, len(s.Params))
	filled := make([]bool, len(s.Params))

	for i, v := range args.Positional {
		slots[i] = v
		filled[i] = true
	}

	names := make([]string, 0, len(args.Keyword))
	for name := range args.Keyword {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		i := s.index(name)
		if i < 0 {
			return nil, s.errorf("got an unexpected keyword argument '%s'", name)
		}

		if filled[i] {
			return nil, s.errorf("got multiple values for argument '%s'", name)
		}

		slots[i] = args.Keyword[name]
		filled[i] = true
	}

	for i, p := range s.Params {
		if filled[i] {
			continue
		}

		if !p.Optional {
			if p.KwOnly {
				return nil, s.errorf("missing required keyword-only argument: '%s'", p.Name)
			}

			return nil, s.errorf("missing required positional argument: '%s'", p.Name)
		}

		slots[i] = Missing
	}

	return slots, nil
}

// ArgError wraps a conversion failure of the named argument.
func (s *Signature) ArgError(name string, err error) error {
	return &ConstructionError{Type: s.Name, Msg: "argument '" + name + "'", Err: err}
}

func (s *Signature) index(name string) int {
	for i, p := range s.Params {
		if p.Name == name {
			return i
		}
	}

	return -1
}

func (s *Signature) errorf(format string, args ...any) error {
	return &ConstructionError{Type: s.Name, Msg: fmt.Sprintf(format, args...)}
}
