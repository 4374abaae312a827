package object_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"derive-generator/object"
)

type equalByName struct {
	Name  string
	Extra int
}

func (e *equalByName) Eq(other any) bool {
	o, ok := object.As[equalByName](other)

	return ok && o.Name == e.Name
}

// link implements the protocols the way generated records do: the methods
// dereference their receiver.
type link struct {
	V    int
	Next *link
}

func (l *link) Eq(other any) bool {
	o, ok := object.As[link](other)

	return ok && l.V == o.V && object.Equals(l.Next, o.Next)
}

func (l *link) Hash() int64 {
	return object.NewHasher().Add(l.V).Add(l.Next).Sum()
}

func (l *link) Compare(other any) (object.Ordering, error) {
	o, ok := object.As[link](other)
	if !ok {
		return object.Incomparable, object.NewTypeMismatch("<", l, other)
	}

	if c := object.CompareOrdered(l.V, o.V); c != object.Equal {
		return c, nil
	}

	return object.Compare(l.Next, o.Next)
}

type point struct{ X, Y int }

func (p *point) Eq(other any) bool {
	o, ok := object.As[point](other)

	return ok && *p == *o
}

func (p *point) Hash() int64 { return int64(p.X*31 + p.Y) }

// located keeps a protocol-implementing record in an unexported field.
type located struct {
	Name string
	at   point
	tags []string
}

func TestEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints", 1, 1, true},
		{"int and float", 1, 1.0, true},
		{"int and uint", 7, uint8(7), true},
		{"nan", math.NaN(), math.NaN(), false},
		{"strings", "a", "a", true},
		{"foreign types", 1, "1", false},
		{"nested slices", [][]int{{1}, {2}}, [][]int{{1}, {2}}, true},
		{"slices differ", []any{1, "a"}, []any{1, "b"}, false},
		{"maps", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"maps differ", map[string]int{"a": 1}, map[string]int{"a": 2}, false},
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"custom equality", equalByName{Name: "x", Extra: 1}, equalByName{Name: "x", Extra: 2}, true},
		{"custom equality pointer", &equalByName{Name: "x"}, &equalByName{Name: "y"}, false},
		{"nil implementers", (*link)(nil), (*link)(nil), true},
		{"nil implementer and value", (*link)(nil), &link{V: 1}, false},
		{"value and nil implementer", &link{V: 1}, (*link)(nil), false},
		{"leaves", &link{V: 1}, &link{V: 1}, true},
		{"chains", &link{V: 1, Next: &link{V: 2}}, &link{V: 1, Next: &link{V: 2}}, true},
		{"leaf and chain", &link{V: 1}, &link{V: 1, Next: &link{V: 2}}, false},
		{"unexported record", located{Name: "a", at: point{1, 2}}, located{Name: "a", at: point{1, 2}}, true},
		{"unexported record differs", located{Name: "a", at: point{1, 2}}, located{Name: "a", at: point{2, 1}}, false},
		{"unexported slice", located{tags: []string{"x"}}, located{tags: []string{"x"}}, true},
		{"records of different types", point{1, 2}, struct{ X, Y int }{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, object.Equals(tt.a, tt.b))
		})
	}
}
