package object

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Representer is implemented by values with their own representation.
// Generated records implement it when the repr feature is requested.
type Representer interface {
	Repr() string
}

// Repr renders v through the representation protocol. Records and other
// values implementing Representer render themselves; containers render their
// elements recursively.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, reflect.ValueOf(v))

	return sb.String()
}

// Str renders v through the string-conversion protocol: strings render raw,
// fmt.Stringer values use String, everything else falls back to Repr.
func Str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return Repr(v)
	}
}

var representerType = reflect.TypeFor[Representer]()

func writeRepr(sb *strings.Builder, v reflect.Value) {
	if r, ok := representer(v); ok {
		sb.WriteString(r.Repr())

		return
	}

	v = indirect(v)
	if r, ok := representer(v); ok {
		sb.WriteString(r.Repr())

		return
	}

	switch KindOf(v) {
	case KindNil:
		sb.WriteString("nil")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindUint:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	case KindComplex:
		sb.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, v.Type().Bits()))
	case KindString:
		sb.WriteString(strconv.Quote(v.String()))
	case KindBytes:
		sb.WriteString("b")
		sb.WriteString(strconv.Quote(string(v.Bytes())))
	case KindSequence:
		writeSequence(sb, v)
	case KindMapping:
		writeMapping(sb, v)
	default:
		if v.CanInterface() {
			fmt.Fprintf(sb, "%+v", v.Interface())
		} else {
			sb.WriteString(v.String())
		}
	}
}

// representer returns the Representer behind v, taking the address of
// struct values so pointer-receiver implementations are found.
func representer(v reflect.Value) (Representer, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
	case reflect.Struct:
		if !v.Type().Implements(representerType) && reflect.PointerTo(v.Type()).Implements(representerType) {
			p := reflect.New(v.Type())
			p.Elem().Set(v)

			return p.Interface().(Representer), true
		}
	}

	r, ok := v.Interface().(Representer)

	return r, ok
}

func writeSequence(sb *strings.Builder, v reflect.Value) {
	sb.WriteByte('[')

	for i := range v.Len() {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeRepr(sb, v.Index(i))
	}

	sb.WriteByte(']')
}

// writeMapping renders entries sorted by key representation so the output
// is deterministic.
func writeMapping(sb *strings.Builder, v reflect.Value) {
	type entry struct{ key, value string }

	entries := make([]entry, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: reprValue(iter.Key()), value: reprValue(iter.Value())})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})

	sb.WriteByte('{')

	for i, e := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(e.key)
		sb.WriteString(": ")
		sb.WriteString(e.value)
	}

	sb.WriteByte('}')
}

func reprValue(v reflect.Value) string {
	var sb strings.Builder
	writeRepr(&sb, v)

	return sb.String()
}
