package object

import (
	"bytes"
	"cmp"
	"math"
	"reflect"
	"strings"
)

//go:generate go tool stringer -type=Ordering -output=ordering_string.go

// Ordering is the outcome of a three-way comparison.
type Ordering int

const (
	// Incomparable means neither operand orders before the other and they
	// are not equal, as with NaN.
	Incomparable Ordering = iota
	Less
	Equal
	Greater
)

// CompareOp is one of the six rich comparison operators.
type CompareOp int

const (
	Lt CompareOp = iota
	Le
	Eq
	Ne
	Gt
	Ge
)

// String returns the operator symbol.
func (op CompareOp) String() string {
	switch op {
	case Lt:
		return "<"
	case Le:
		return "<="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Holds reports whether op is satisfied by the comparison outcome o.
// An incomparable outcome satisfies only Ne.
func (o Ordering) Holds(op CompareOp) bool {
	switch op {
	case Lt:
		return o == Less
	case Le:
		return o == Less || o == Equal
	case Eq:
		return o == Equal
	case Ne:
		return o != Equal
	case Gt:
		return o == Greater
	case Ge:
		return o == Greater || o == Equal
	default:
		return false
	}
}

// Comparer is implemented by values that define their own ordering.
// Generated records implement it when the ord feature is requested.
type Comparer interface {
	Compare(other any) (Ordering, error)
}

// CompareOrdered compares two ordered values. NaN operands are incomparable.
func CompareOrdered[T cmp.Ordered](a, b T) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	case a == b:
		return Equal
	default:
		return Incomparable
	}
}

// Compare compares two dynamic values. Numbers compare across
// representations, sequences compare lexicographically. Operands whose types
// cannot be ordered against each other yield a *TypeMismatchError.
func Compare(a, b any) (Ordering, error) {
	if c, ok := a.(Comparer); ok && !nilPointer(a) {
		return c.Compare(b)
	}

	return compareValues(reflect.ValueOf(a), reflect.ValueOf(b))
}

var comparerType = reflect.TypeFor[Comparer]()

func compareValues(a, b reflect.Value) (Ordering, error) {
	if a.IsValid() && a.CanInterface() && a.Type().Implements(comparerType) &&
		(a.Kind() != reflect.Pointer || !a.IsNil()) {
		return a.Interface().(Comparer).Compare(valueInterface(b))
	}

	a, b = indirect(a), indirect(b)
	ka, kb := KindOf(a), KindOf(b)

	if ka.IsNumber() && kb.IsNumber() {
		return compareNumbers(a, ka, b, kb), nil
	}

	if ka != kb {
		return Incomparable, mismatch(a, b)
	}

	switch ka {
	case KindNil:
		return Equal, nil
	case KindBool:
		return CompareOrdered(boolInt(a.Bool()), boolInt(b.Bool())), nil
	case KindString:
		return fromInt(strings.Compare(a.String(), b.String())), nil
	case KindBytes:
		return fromInt(bytes.Compare(a.Bytes(), b.Bytes())), nil
	case KindSequence:
		return compareSequences(a, b)
	case KindRecord:
		if c, ok := implementer(a, comparerType); ok {
			return c.(Comparer).Compare(valueInterface(b))
		}
	}

	return Incomparable, mismatch(a, b)
}

func compareSequences(a, b reflect.Value) (Ordering, error) {
	n := min(a.Len(), b.Len())
	for i := range n {
		c, err := compareValues(a.Index(i), b.Index(i))
		if err != nil || c != Equal {
			return c, err
		}
	}

	return CompareOrdered(a.Len(), b.Len()), nil
}

func compareNumbers(a reflect.Value, ka KindEnum, b reflect.Value, kb KindEnum) Ordering {
	switch {
	case ka == KindFloat || kb == KindFloat:
		fa, fb := toFloat(a, ka), toFloat(b, kb)
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return Incomparable
		}

		return CompareOrdered(fa, fb)
	case ka == KindInt && kb == KindInt:
		return CompareOrdered(a.Int(), b.Int())
	case ka == KindUint && kb == KindUint:
		return CompareOrdered(a.Uint(), b.Uint())
	case ka == KindInt:
		if a.Int() < 0 {
			return Less
		}

		return CompareOrdered(uint64(a.Int()), b.Uint())
	default:
		if b.Int() < 0 {
			return Greater
		}

		return CompareOrdered(a.Uint(), uint64(b.Int()))
	}
}

func toFloat(v reflect.Value, k KindEnum) float64 {
	switch k {
	case KindInt:
		return float64(v.Int())
	case KindUint:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

func fromInt(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// implementer returns v, or a pointer to v, as a value implementing iface.
// Values read through unexported fields cannot be converted back to
// interfaces and are never dispatched.
func implementer(v reflect.Value, iface reflect.Type) (any, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}

	if p := addressable(v); p.Type().Implements(iface) {
		return p.Interface(), true
	}

	return nil, false
}

// nilPointer reports whether v is a typed nil pointer. Protocol methods are
// not called on nil receivers; nil pointers take part as nil.
func nilPointer(v any) bool {
	rv := reflect.ValueOf(v)

	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// addressable returns a pointer to a copy of v so pointer-receiver methods
// are visible.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v.Addr()
	}

	p := reflect.New(v.Type())
	p.Elem().Set(v)

	return p
}

func valueInterface(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

func mismatch(a, b reflect.Value) error {
	return NewTypeMismatch("<", valueInterface(a), valueInterface(b))
}
