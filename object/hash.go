package object

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"reflect"
)

// Hashable is implemented by values that define their own hash.
// Generated records implement it when the hash feature is requested.
type Hashable interface {
	Hash() int64
}

var hashableType = reflect.TypeFor[Hashable]()

// Kind tags keep values of different kinds apart in the hash input.
const (
	tagNil      = 'z'
	tagBool     = 't'
	tagNumber   = 'n'
	tagFloat    = 'f'
	tagComplex  = 'c'
	tagString   = 's'
	tagBytes    = 'b'
	tagSequence = 'l'
	tagMapping  = 'm'
	tagRecord   = 'r'
)

// Hasher is the ordered hash combinator: each added value is hashed on its
// own and the results are folded, in order, into a running FNV-1a state.
// Swapping two added values changes the sum.
type Hasher struct {
	h   hash.Hash64
	buf [8]byte
}

// NewHasher returns an empty combinator.
func NewHasher() *Hasher {
	return &Hasher{h: fnv.New64a()}
}

// Add folds the hash of v into the combinator.
func (h *Hasher) Add(v any) *Hasher {
	return h.addHash(Hash(v))
}

func (h *Hasher) addHash(sum int64) *Hasher {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(sum))
	_, _ = h.h.Write(h.buf[:])

	return h
}

// Sum returns the combined hash.
func (h *Hasher) Sum() int64 {
	return int64(h.h.Sum64())
}

// Hash returns the hash of v. Values that are Equals hash equal.
func Hash(v any) int64 {
	if hv, ok := v.(Hashable); ok && !nilPointer(v) {
		return hv.Hash()
	}

	h := fnv.New64a()
	writeHash(h, reflect.ValueOf(v))

	return int64(h.Sum64())
}

func writeHash(h hash.Hash64, v reflect.Value) {
	v = indirect(v)

	var buf [8]byte

	putUint := func(tag byte, u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = h.Write([]byte{tag})
		_, _ = h.Write(buf[:])
	}

	switch KindOf(v) {
	case KindNil:
		_, _ = h.Write([]byte{tagNil})
	case KindBool:
		putUint(tagBool, uint64(boolInt(v.Bool())))
	case KindInt:
		putUint(tagNumber, uint64(v.Int()))
	case KindUint:
		putUint(tagNumber, v.Uint())
	case KindFloat:
		writeFloatHash(putUint, v.Float())
	case KindComplex:
		c := v.Complex()
		if imag(c) == 0 {
			writeFloatHash(putUint, real(c))

			return
		}

		putUint(tagComplex, math.Float64bits(real(c)))
		putUint(tagComplex, math.Float64bits(imag(c)))
	case KindString:
		putUint(tagString, uint64(v.Len()))
		_, _ = h.Write([]byte(v.String()))
	case KindBytes:
		putUint(tagBytes, uint64(v.Len()))
		_, _ = h.Write(v.Bytes())
	case KindSequence:
		putUint(tagSequence, uint64(v.Len()))

		for i := range v.Len() {
			putUint(tagSequence, uint64(hashValue(v.Index(i))))
		}
	case KindMapping:
		// Entry hashes are summed so iteration order does not matter.
		var sum uint64

		iter := v.MapRange()
		for iter.Next() {
			sum += uint64(NewHasher().addHash(hashValue(iter.Key())).addHash(hashValue(iter.Value())).Sum())
		}

		putUint(tagMapping, sum)
	case KindRecord:
		if hv, ok := implementer(v, hashableType); ok {
			putUint(tagRecord, uint64(hv.(Hashable).Hash()))

			return
		}

		putUint(tagRecord, uint64(v.NumField()))

		for i := range v.NumField() {
			putUint(tagRecord, uint64(hashValue(v.Field(i))))
		}
	default:
		putUint(tagNil, uint64(v.Kind()))
	}
}

// writeFloatHash hashes integral floats like the equal integer so that
// Equal numbers hash equal.
func writeFloatHash(putUint func(byte, uint64), f float64) {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		putUint(tagNumber, uint64(int64(f)))

		return
	}

	putUint(tagFloat, math.Float64bits(f))
}

func hashValue(v reflect.Value) int64 {
	if v.CanInterface() {
		return Hash(v.Interface())
	}

	h := fnv.New64a()
	writeHash(h, v)

	return int64(h.Sum64())
}
