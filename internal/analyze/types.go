package analyze

import (
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"derive-generator/internal/options"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "derive-generator/examples/basic"
	Name    string // e.g., "Point"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Shape tells whether a type can be treated as a plain field record.
type Shape int

const (
	ShapeRecord Shape = iota
	// ShapeUnsupported covers non-struct types, generic types and structs
	// with embedded fields.
	ShapeUnsupported
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeRecord:
		return "record"
	case ShapeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// TypeInfo describes an annotated named type.
type TypeInfo struct {
	ID    TypeID
	Pos   token.Position
	Shape Shape
	// ShapeReason explains an unsupported shape.
	ShapeReason string
	Directives  []options.Directive
	Fields      []FieldInfo
	Methods     map[string]MethodInfo
	// GoType is the named type, nil for types built without go/types.
	GoType *types.Named
}

// HasMethod reports whether the method set of *T contains name.
func (t *TypeInfo) HasMethod(name string) bool {
	_, ok := t.Methods[name]

	return ok
}

// Method returns the method called name.
func (t *TypeInfo) Method(name string) (MethodInfo, bool) {
	m, ok := t.Methods[name]

	return m, ok
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name string // Go field name
	// Type is the field type; TypeString renders it relative to the
	// declaring package.
	Type       types.Type
	TypeString string
	Tag        reflect.StructTag
	Exported   bool
	Embedded   bool
	Index      int
	Pos        token.Position
	Directives []options.Directive
}

// SelfKind classifies the first parameter of a method against its receiver
// type.
type SelfKind int

const (
	SelfNone SelfKind = iota
	SelfValue
	SelfPointer
)

// MethodInfo summarises a method declared on T or *T.
type MethodInfo struct {
	Name         string
	PointerRecv  bool
	NumParams    int
	FirstParam   SelfKind
	NumResults   int
	ReturnsError bool
	// FirstResult is the fully qualified type of the first result.
	FirstResult string
}

// TypeGraph holds all annotated types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all annotated types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageList returns the loaded packages ordered by import path.
func (g *TypeGraph) PackageList() []*PackageInfo {
	out := make([]*PackageInfo, 0, len(g.Packages))
	for _, p := range g.Packages {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b *PackageInfo) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory holding the package sources
	// Types are the annotated types in source order.
	Types []*TypeInfo
}
