package object

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotImplemented is returned by operator methods when the operand type
	// is not supported. Callers may try the reflected operation instead.
	ErrNotImplemented = errors.New("object: not implemented")
	// ErrTypeMismatch marks errors caused by incompatible operand types.
	ErrTypeMismatch = errors.New("object: type mismatch")
	// ErrConstruction marks errors raised while binding constructor arguments.
	ErrConstruction = errors.New("object: construction failed")
)

// TypeMismatchError is raised when an operation is applied to operands of
// incompatible types. It is distinct from an incomparable outcome between
// values of the same type.
type TypeMismatchError struct {
	Op    string
	Left  string
	Right string
}

// NewTypeMismatch builds a TypeMismatchError for the operands of op.
func NewTypeMismatch(op string, left, right any) *TypeMismatchError {
	return &TypeMismatchError{Op: op, Left: TypeName(left), Right: TypeName(right)}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("'%s' not supported between instances of '%s' and '%s'", e.Op, e.Left, e.Right)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ExtractError is returned when a dynamic value cannot be converted to the
// declared type of a field.
type ExtractError struct {
	Want string
	Got  string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

// Is reports whether target is ErrTypeMismatch.
func (e *ExtractError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ConstructionError describes a failed constructor call.
type ConstructionError struct {
	// Type is the external name of the type being constructed.
	Type string
	// Msg is the human-readable reason.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s(): %s: %v", e.Type, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s(): %s", e.Type, e.Msg)
}

// Is reports whether target is ErrConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// Unwrap returns the underlying cause.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// TypeName returns the host-facing type name of v.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}

	if n, ok := v.(interface{ TypeName() string }); ok {
		return n.TypeName()
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}
