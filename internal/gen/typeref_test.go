package gen

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
)

func TestTypeRef_Code(t *testing.T) {
	local := types.NewPackage("example.com/app", "app")
	other := types.NewPackage("example.com/geo", "geo")

	point := types.NewNamed(types.NewTypeName(token.NoPos, local, "Point", nil), types.NewStruct(nil, nil), nil)
	coord := types.NewNamed(types.NewTypeName(token.NoPos, other, "Coord", nil), types.Typ[types.Float64], nil)

	r := typeRef{pkgPath: "example.com/app"}

	tests := []struct {
		name string
		typ  types.Type
		want string
	}{
		{"basic", types.Typ[types.Int], "int"},
		{"local named", point, "Point"},
		{"pointer", types.NewPointer(point), "*Point"},
		{"slice", types.NewSlice(types.Typ[types.String]), "[]string"},
		{"array", types.NewArray(types.Typ[types.Byte], 4), "[4]uint8"},
		{"map", types.NewMap(types.Typ[types.String], types.NewSlice(point)), "map[string][]Point"},
		{"empty interface", types.NewInterfaceType(nil, nil), "any"},
		{"error", types.Universe.Lookup("error").Type(), "error"},
		{"foreign named", coord, "geo.Coord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jen.Add(r.code(tt.typ)).GoString())
		})
	}
}

func TestTypeRef_Zero(t *testing.T) {
	local := types.NewPackage("example.com/app", "app")
	point := types.NewNamed(types.NewTypeName(token.NoPos, local, "Point", nil), types.NewStruct(nil, nil), nil)
	celsius := types.NewNamed(types.NewTypeName(token.NoPos, local, "Celsius", nil), types.Typ[types.Float64], nil)

	r := typeRef{pkgPath: "example.com/app"}

	tests := []struct {
		name string
		typ  types.Type
		want string
	}{
		{"int", types.Typ[types.Int], "0"},
		{"named float", celsius, "0"},
		{"string", types.Typ[types.String], `""`},
		{"bool", types.Typ[types.Bool], "false"},
		{"slice", types.NewSlice(types.Typ[types.Int]), "nil"},
		{"pointer", types.NewPointer(point), "nil"},
		{"struct", point, "Point{}"},
		{"array", types.NewArray(types.Typ[types.Int], 2), "[2]int{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jen.Add(r.zero(tt.typ)).GoString())
		})
	}
}

func TestOrderedAndScalar(t *testing.T) {
	assert.True(t, ordered(types.Typ[types.Float64]))
	assert.True(t, ordered(types.Typ[types.String]))
	assert.False(t, ordered(types.Typ[types.Bool]))
	assert.False(t, ordered(types.NewSlice(types.Typ[types.Int])))

	assert.True(t, scalar(types.Typ[types.Bool]))
	assert.True(t, scalar(types.Typ[types.Complex128]))
	assert.False(t, scalar(types.NewPointer(types.Typ[types.Int])))
}
