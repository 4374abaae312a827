package object

import (
	"reflect"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies dynamic values for the comparison, hashing and
// representation protocols.
type KindEnum int

const (
	KindNil KindEnum = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindString
	KindBytes
	KindSequence
	KindMapping
	KindRecord
	KindOther
)

// IsNumber reports whether values of the kind take part in numeric
// comparison across representations.
func (k KindEnum) IsNumber() bool {
	switch k {
	default:
		return false
	case KindInt, KindUint, KindFloat:
		return true
	}
}

// KindOf classifies v after dereferencing pointers and interfaces.
// A nil pointer classifies as KindNil.
func KindOf(v reflect.Value) KindEnum {
	v = indirect(v)
	if !v.IsValid() {
		return KindNil
	}

	switch v.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Complex64, reflect.Complex128:
		return KindComplex
	case reflect.String:
		return KindString
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return KindBytes
		}

		return KindSequence
	case reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMapping
	case reflect.Struct:
		return KindRecord
	default:
		return KindOther
	}
}

// indirect follows pointers and interfaces until it reaches a concrete value.
// It returns the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}
