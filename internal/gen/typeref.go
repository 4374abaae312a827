package gen

import (
	"go/types"

	"github.com/dave/jennifer/jen"
)

// typeRef renders go/types types as jennifer code for the package at
// pkgPath. Named types of other packages become qualified references so
// that the file imports them.
type typeRef struct {
	pkgPath string
}

// code returns t as a type expression.
func (r typeRef) code(t types.Type) jen.Code {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}

		return jen.Id(t.Name())
	case *types.Alias:
		return r.object(t.Obj())
	case *types.Named:
		obj := r.object(t.Obj())

		args := t.TypeArgs()
		if args == nil || args.Len() == 0 {
			return obj
		}

		params := make([]jen.Code, 0, args.Len())
		for i := range args.Len() {
			params = append(params, r.code(args.At(i)))
		}

		return jen.Add(obj).Types(params...)
	case *types.Pointer:
		return jen.Op("*").Add(r.code(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(r.code(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(r.code(t.Elem()))
	case *types.Map:
		return jen.Map(r.code(t.Key())).Add(r.code(t.Elem()))
	case *types.Interface:
		if t.Empty() {
			return jen.Any()
		}
	}

	return jen.Id(types.TypeString(t, r.qualifier))
}

func (r typeRef) object(obj *types.TypeName) jen.Code {
	if obj.Pkg() == nil || obj.Pkg().Path() == r.pkgPath {
		return jen.Id(obj.Name())
	}

	return jen.Qual(obj.Pkg().Path(), obj.Name())
}

func (r typeRef) qualifier(p *types.Package) string {
	if p.Path() == r.pkgPath {
		return ""
	}

	return p.Name()
}

// zero returns the zero value of t as an expression assignable to t.
func (r typeRef) zero(t types.Type) jen.Code {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		switch {
		case u.Info()&types.IsBoolean != 0:
			return jen.False()
		case u.Info()&types.IsString != 0:
			return jen.Lit("")
		case u.Info()&types.IsNumeric != 0:
			return jen.Lit(0)
		default:
			return jen.Nil()
		}
	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return jen.Nil()
	}

	return jen.Add(r.code(t)).Values()
}

// ordered reports whether values of t support the < operator.
func ordered(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsOrdered != 0
}

// scalar reports whether values of t compare with == without reflection.
func scalar(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&(types.IsBoolean|types.IsNumeric|types.IsString) != 0
}
