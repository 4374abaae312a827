package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"derive-generator/object"
)

type reprPoint struct{ X, Y int }

func (p *reprPoint) Repr() string { return "P" }

type stringerOnly struct{}

func (stringerOnly) String() string { return "stringer" }

func TestRepr(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"nil", nil, "nil"},
		{"int", -3, "-3"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"string", "a\"b", `"a\"b"`},
		{"bytes", []byte("hi"), `b"hi"`},
		{"slice", []any{1, "x", nil}, `[1, "x", nil]`},
		{"map sorted", map[string]int{"b": 2, "a": 1}, `{"a": 1, "b": 2}`},
		{"representer value", reprPoint{}, "P"},
		{"representer pointer", &reprPoint{}, "P"},
		{"nested representer", []reprPoint{{}, {}}, "[P, P]"},
		{"nil pointer", (*reprPoint)(nil), "nil"},
		{"record falls back to fmt", stringerOnly{}, "stringer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, object.Repr(tt.v))
		})
	}
}

func TestStr(t *testing.T) {
	assert.Equal(t, "raw", object.Str("raw"))
	assert.Equal(t, "stringer", object.Str(stringerOnly{}))
	assert.Equal(t, "[1, 2]", object.Str([]int{1, 2}))
	assert.Equal(t, "MISSING", object.Str(object.Missing))
}
