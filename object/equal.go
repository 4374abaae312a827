package object

import (
	"bytes"
	"reflect"
)

// Equaler is implemented by values that define their own equality.
// Generated records implement it when the eq feature is requested.
type Equaler interface {
	Eq(other any) bool
}

var equalerType = reflect.TypeFor[Equaler]()

// Equals reports whether a and b are equal under the host equality protocol.
// Numbers compare by value across representations, NaN is never equal, and
// values of unrelated types are unequal rather than an error.
func Equals(a, b any) bool {
	if e, ok := a.(Equaler); ok && !nilPointer(a) {
		return e.Eq(b)
	}

	return equalValues(reflect.ValueOf(a), reflect.ValueOf(b))
}

func equalValues(a, b reflect.Value) bool {
	a, b = indirect(a), indirect(b)
	ka, kb := KindOf(a), KindOf(b)

	if ka.IsNumber() && kb.IsNumber() {
		return compareNumbers(a, ka, b, kb) == Equal
	}

	if ka != kb {
		return false
	}

	switch ka {
	case KindNil:
		return true
	case KindBool:
		return a.Bool() == b.Bool()
	case KindString:
		return a.String() == b.String()
	case KindBytes:
		return bytes.Equal(a.Bytes(), b.Bytes())
	case KindComplex:
		return a.Complex() == b.Complex()
	case KindSequence:
		if a.Len() != b.Len() {
			return false
		}

		for i := range a.Len() {
			if !equalValues(a.Index(i), b.Index(i)) {
				return false
			}
		}

		return true
	case KindMapping:
		return equalMappings(a, b)
	case KindRecord:
		if e, ok := implementer(a, equalerType); ok {
			return e.(Equaler).Eq(valueInterface(b))
		}

		return equalRecords(a, b)
	}

	if a.CanInterface() && b.CanInterface() {
		return reflect.DeepEqual(a.Interface(), b.Interface())
	}

	return false
}

// equalRecords compares records of the same type field by field.
func equalRecords(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}

	for i := range a.NumField() {
		if !equalValues(a.Field(i), b.Field(i)) {
			return false
		}
	}

	return true
}

func equalMappings(a, b reflect.Value) bool {
	if a.Len() != b.Len() || a.Type().Key() != b.Type().Key() {
		return false
	}

	iter := a.MapRange()
	for iter.Next() {
		other := b.MapIndex(iter.Key())
		if !other.IsValid() || !equalValues(iter.Value(), other) {
			return false
		}
	}

	return true
}
