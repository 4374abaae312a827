package object

import (
	"reflect"
)

// Extract converts a dynamic value to T.
//
// Values already of type T pass through. Nil is accepted for nilable types.
// Integers convert to other integer types when the value fits, and integers
// and floats convert to floating-point types. Everything else fails with an
// *ExtractError.
func Extract[T any](v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}

	var zero T

	want := reflect.TypeFor[T]()

	if v == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
			return zero, nil
		}

		return zero, &ExtractError{Want: want.String(), Got: "nil"}
	}

	rv := reflect.ValueOf(v)
	if out, ok := convertNumber(rv, want); ok {
		return out.Interface().(T), nil
	}

	return zero, &ExtractError{Want: want.String(), Got: TypeName(v)}
}

// As returns v as *T when v holds a T or a non-nil *T.
func As[T any](v any) (*T, bool) {
	switch t := v.(type) {
	case *T:
		return t, t != nil
	case T:
		return &t, true
	default:
		return nil, false
	}
}

// Flag returns a pointer to b.
func Flag(b bool) *bool {
	return &b
}

func convertNumber(rv reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		return reflect.Value{}, false
	}

	from := KindOf(rv)
	to := KindOf(reflect.Zero(want))

	switch {
	case to == KindInt && from == KindInt:
		if reflect.Zero(want).OverflowInt(rv.Int()) {
			return reflect.Value{}, false
		}
	case to == KindInt && from == KindUint:
		u := rv.Uint()
		if u > 1<<63-1 || reflect.Zero(want).OverflowInt(int64(u)) {
			return reflect.Value{}, false
		}
	case to == KindUint && from == KindUint:
		if reflect.Zero(want).OverflowUint(rv.Uint()) {
			return reflect.Value{}, false
		}
	case to == KindUint && from == KindInt:
		i := rv.Int()
		if i < 0 || reflect.Zero(want).OverflowUint(uint64(i)) {
			return reflect.Value{}, false
		}
	case to == KindFloat && from.IsNumber():
	default:
		return reflect.Value{}, false
	}

	return rv.Convert(want), true
}
