package object

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel is a distinguished marker value.
type Sentinel struct {
	name string
}

func (s *Sentinel) String() string {
	return s.name
}

// Repr implements Representer.
func (s *Sentinel) Repr() string {
	return s.name
}

// Missing marks an absent default or default factory. It is distinct from
// nil and from every real default value.
var Missing = &Sentinel{name: "MISSING"}

// Factory produces a fresh default value on every call.
type Factory func() any

//go:generate go tool stringer -type=FieldKind -trimprefix=Field -output=fieldkind_string.go

// FieldKind classifies a descriptor.
type FieldKind int

const (
	// FieldInstance is a field set by the constructor.
	FieldInstance FieldKind = iota
	// FieldClassVar is a field the constructor does not accept.
	FieldClassVar
)

// Version is a host protocol version.
type Version struct {
	Major int
	Minor int
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}

	return v.Minor >= other.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

var (
	// CurrentVersion is the protocol version implemented by DefaultHost.
	CurrentVersion = Version{Major: 1, Minor: 2}
	// KwOnlySince is the first version whose descriptors carry KwOnly.
	KwOnlySince = Version{Major: 1, Minor: 1}
)

// DescriptorSpec is the input of Host.MakeDescriptor.
type DescriptorSpec struct {
	Default        any
	DefaultFactory any
	Init           bool
	Repr           bool
	Kind           FieldKind
	// KwOnly is nil when the host does not support keyword-only fields.
	KwOnly     *bool
	Annotation string
}

// Field is a reflection descriptor of one record field.
type Field struct {
	Name           string
	Default        any
	DefaultFactory any
	Init           bool
	Repr           bool
	Kind           FieldKind
	KwOnly         *bool
	Annotation     string
	Owner          reflect.Type
}

// NameSetter is implemented by default values that want to learn the field
// they were bound to.
type NameSetter interface {
	SetName(owner reflect.Type, name string) error
}

// SetName binds the descriptor to owner under name and forwards the
// binding to the default value when it implements NameSetter.
func (f *Field) SetName(owner reflect.Type, name string) error {
	f.Owner = owner
	f.Name = name

	if ns, ok := f.Default.(NameSetter); ok {
		if err := ns.SetName(owner, name); err != nil {
			return fmt.Errorf("binding default of %s: %w", name, err)
		}
	}

	return nil
}

// HasDefault reports whether the descriptor has a default or a factory.
func (f *Field) HasDefault() bool {
	return f.Default != Missing || f.DefaultFactory != Missing
}

// DefaultValue returns the default of the field, calling the factory when
// one is set.
func (f *Field) DefaultValue() (any, bool) {
	if factory, ok := f.DefaultFactory.(Factory); ok {
		return factory(), true
	}

	if f.Default != Missing {
		return f.Default, true
	}

	return nil, false
}

// Host is the narrow adapter through which generated code talks to the
// embedding object model.
type Host interface {
	Version() Version
	MakeDescriptor(spec DescriptorSpec) (*Field, error)
	RegisterField(owner reflect.Type, name string, f *Field) error
}

var errDefaultAndFactory = errors.New("cannot specify both default and default_factory")

// DefaultHost is the in-process Host implementation.
type DefaultHost struct {
	version Version
}

// NewHost returns a host speaking protocol version v.
func NewHost(v Version) *DefaultHost {
	return &DefaultHost{version: v}
}

// Version returns the protocol version of the host.
func (h *DefaultHost) Version() Version {
	return h.version
}

// MakeDescriptor builds a descriptor from spec. Absent defaults must be
// passed as Missing.
func (h *DefaultHost) MakeDescriptor(spec DescriptorSpec) (*Field, error) {
	if spec.Default != Missing && spec.DefaultFactory != Missing {
		return nil, errDefaultAndFactory
	}

	if spec.DefaultFactory != Missing {
		if _, ok := spec.DefaultFactory.(Factory); !ok {
			return nil, fmt.Errorf("default_factory must be a Factory, got %s", TypeName(spec.DefaultFactory))
		}
	}

	if spec.KwOnly != nil && !h.version.AtLeast(KwOnlySince) {
		return nil, fmt.Errorf("kw_only is not supported by host version %s", h.version)
	}

	return &Field{
		Default:        spec.Default,
		DefaultFactory: spec.DefaultFactory,
		Init:           spec.Init,
		Repr:           spec.Repr,
		Kind:           spec.Kind,
		KwOnly:         spec.KwOnly,
		Annotation:     spec.Annotation,
	}, nil
}

// RegisterField runs the name-binding hook of f.
func (h *DefaultHost) RegisterField(owner reflect.Type, name string, f *Field) error {
	return f.SetName(owner, name)
}
