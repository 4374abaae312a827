package resolve

import (
	"go/token"
	"go/types"

	"derive-generator/internal/rename"
)

// Tristate is an optional boolean.
type Tristate int8

const (
	Unset Tristate = iota
	False
	True
)

// Of converts b to a set Tristate.
func Of(b bool) Tristate {
	if b {
		return True
	}

	return False
}

// Get returns the value, or fallback when unset.
func (t Tristate) Get(fallback bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return fallback
	}
}

// IsSet reports whether a value was given.
func (t Tristate) IsSet() bool {
	return t != Unset
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// Capability is a per-field eligibility question asked by a generator.
type Capability int

const (
	Construct Capability = iota
	MatchPattern
	Represent
	Stringify
	SequenceIter
	Length
	FieldMetadata

	numCapabilities
)

// Capabilities lists every capability in declaration order.
var Capabilities = []Capability{Construct, MatchPattern, Represent, Stringify, SequenceIter, Length, FieldMetadata}

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case Construct:
		return "construct"
	case MatchPattern:
		return "match_pattern"
	case Represent:
		return "represent"
	case Stringify:
		return "stringify"
	case SequenceIter:
		return "sequence_iter"
	case Length:
		return "length"
	case FieldMetadata:
		return "field_metadata"
	default:
		return "unknown"
	}
}

// Key returns the field option key that overrides the capability.
func (c Capability) Key() string {
	switch c {
	case Construct:
		return KeyNew
	case MatchPattern:
		return KeyMatchArgs
	case Represent:
		return KeyRepr
	case Stringify:
		return KeyStr
	case SequenceIter:
		return KeyIter
	case Length:
		return KeyLen
	case FieldMetadata:
		return KeyDataclassField
	default:
		return ""
	}
}

// TypeConfig is the merged type-level configuration.
type TypeConfig struct {
	ReadDefault  bool
	WriteDefault bool
	// ExternalName is empty when the declared name is used.
	ExternalName string
	Rule         rename.Rule
}

// FieldConfig is the merged configuration of one field before eligibility
// and keyword-only resolution.
type FieldConfig struct {
	DeclaredName string
	DeclaredType types.Type
	// TypeString renders DeclaredType relative to the declaring package.
	TypeString string
	Pos        token.Position

	Readable bool
	Writable bool

	ExplicitName    string
	HasExplicitName bool

	PerCapability [numCapabilities]Tristate

	// Default is Go expression source.
	Default          string
	HasDefault       bool
	DefaultIsFactory bool

	KwOnly Tristate

	Annotation    string
	HasAnnotation bool
}

// Field is a resolved field. It is immutable once built.
type Field struct {
	FieldConfig

	// External is the name the field is known by outside Go.
	External string
	// EffectiveKwOnly is true when this or an earlier field is keyword-only.
	EffectiveKwOnly bool

	eligible [numCapabilities]bool
}

// Eligible reports whether the field takes part in capability c.
func (f *Field) Eligible(c Capability) bool {
	if c < 0 || c >= numCapabilities {
		return false
	}

	return f.eligible[c]
}

// SharedDefault reports whether the default is a single value shared by
// reference: a plain default on a field the constructor does not accept.
func (f *Field) SharedDefault() bool {
	return f.HasDefault && !f.DefaultIsFactory && !f.Eligible(Construct)
}

// FeatureRequest is one feature named in a type directive.
type FeatureRequest struct {
	Name string
	Pos  token.Position
}
