package resolve

import (
	"go/token"
	"slices"

	"derive-generator/internal/analyze"
	"derive-generator/internal/diagnostic"
)

// Type is the resolved configuration of one annotated type. It is built
// once per generation pass and never modified afterwards.
type Type struct {
	ID       analyze.TypeID
	Pos      token.Position
	Info     *analyze.TypeInfo
	Config   TypeConfig
	Fields   []*Field
	Features []FeatureRequest
	Problems []Problem
}

// Resolve resolves the annotations of an analyzed type.
func Resolve(info *analyze.TypeInfo) *Type {
	t := &Type{
		ID:   info.ID,
		Pos:  info.Pos,
		Info: info,
	}

	var typeProblems []Problem
	t.Config, t.Features, typeProblems = ResolveType(info.ID.Name, info.Directives)
	t.Problems = append(t.Problems, typeProblems...)

	if info.Shape != analyze.ShapeRecord {
		p := &problems{typeName: info.ID.Name}
		p.add(KeyAll, diagnostic.KindUnsupportedShape, info.Pos, "", info.ShapeReason)
		t.Problems = append(t.Problems, p.list...)

		return t
	}

	var fieldProblems []Problem
	t.Fields, fieldProblems = ResolveFields(info.ID.Name, t.Config, info.Fields)
	t.Problems = append(t.Problems, fieldProblems...)

	return t
}

// Name returns the declared Go name of the type.
func (t *Type) Name() string {
	return t.ID.Name
}

// External returns the name the type is known by outside Go.
func (t *Type) External() string {
	if t.Config.ExternalName != "" {
		return t.Config.ExternalName
	}

	return t.ID.Name
}

// Eligible returns the fields taking part in capability c, in declaration
// order.
func (t *Type) Eligible(c Capability) []*Field {
	var out []*Field

	for _, f := range t.Fields {
		if f.Eligible(c) {
			out = append(out, f)
		}
	}

	return out
}

// Readable returns the fields with read access, in declaration order.
func (t *Type) Readable() []*Field {
	var out []*Field

	for _, f := range t.Fields {
		if f.Readable {
			out = append(out, f)
		}
	}

	return out
}

// Requested reports whether the type directive names feature.
func (t *Type) Requested(feature string) bool {
	return slices.ContainsFunc(t.Features, func(r FeatureRequest) bool {
		return r.Name == feature
	})
}

// Blocking returns the error problems attached to any of keys, plus those
// that break every feature.
func (t *Type) Blocking(keys ...string) []Problem {
	var out []Problem

	for _, p := range t.Problems {
		if p.Diagnostic.Severity != diagnostic.SeverityError {
			continue
		}

		if p.Key == KeyAll || slices.Contains(keys, p.Key) {
			out = append(out, p)
		}
	}

	return out
}

// Diagnostics returns every problem of the type.
func (t *Type) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	for _, p := range t.Problems {
		d.Add(p.Diagnostic)
	}

	return d
}
