package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

func genRepr(tg *typeGen) error {
	tg.add("Repr returns the host representation of x.",
		tg.method("Repr").Params().String().Block(
			jen.Return(tg.render(tg.t.Eligible(resolve.Represent), "Repr")),
		))

	return nil
}

func genStr(tg *typeGen) error {
	tg.add("String returns the string form of x.",
		tg.method("String").Params().String().Block(
			jen.Return(tg.render(tg.t.Eligible(resolve.Stringify), "Str")),
		))

	return nil
}

// render builds the concatenation Name(k1=v1, k2=v2) where each value is
// rendered by the object function fn.
func (tg *typeGen) render(fields []*resolve.Field, fn string) jen.Code {
	if len(fields) == 0 {
		return jen.Lit(tg.t.External() + "()")
	}

	var expr *jen.Statement

	for _, f := range fields {
		if expr == nil {
			expr = jen.Lit(tg.t.External() + "(" + f.External + "=")
		} else {
			expr.Op("+").Lit(", " + f.External + "=")
		}

		expr.Op("+").Add(obj(fn)).Call(field("x", f))
	}

	return expr.Op("+").Lit(")")
}
