package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

func genEq(tg *typeGen) error {
	equal := tg.equalHelper()

	tg.add("Eq reports whether other is a "+tg.t.Name()+" with equal fields.",
		tg.method("Eq").Params(jen.Id("other").Any()).Bool().Block(
			jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
			jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.False())),
			jen.Return(jen.Id(equal).Call(jen.Id("x"), jen.Id("o"))),
		))

	tg.add("Ne is the negation of Eq.",
		tg.method("Ne").Params(jen.Id("other").Any()).Bool().Block(
			jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
			jen.Return(jen.Op("!").Id("ok").Op("||").Op("!").Id(equal).Call(jen.Id("x"), jen.Id("o"))),
		))

	return nil
}

func genOrd(tg *typeGen) error {
	compare := tg.compareHelper()
	compareOp := tg.compareOpHelper()

	tg.add("Compare orders x and other field by field.",
		tg.method("Compare").Params(jen.Id("other").Any()).Params(obj("Ordering"), jen.Error()).Block(
			jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Return(obj("Incomparable"), obj("NewTypeMismatch").Call(jen.Lit("<"), jen.Id("x"), jen.Id("other"))),
			),
			jen.Return(jen.Id(compare).Call(jen.Id("x"), jen.Id("o"))),
		))

	for _, op := range []struct{ method, doc string }{
		{"Lt", "Lt reports whether x orders before other."},
		{"Le", "Le reports whether x orders before or equal to other."},
		{"Gt", "Gt reports whether x orders after other."},
		{"Ge", "Ge reports whether x orders after or equal to other."},
	} {
		tg.add(op.doc,
			tg.method(op.method).Params(jen.Id("other").Any()).Params(jen.Bool(), jen.Error()).Block(
				jen.Return(jen.Id(compareOp).Call(jen.Id("x"), jen.Id("other"), obj(op.method))),
			))
	}

	return nil
}

func genRichCompare(tg *typeGen) error {
	equal := tg.equalHelper()
	compareOp := tg.compareOpHelper()

	tg.add("RichCompare evaluates x op other.",
		tg.method("RichCompare").Params(jen.Id("other").Any(), jen.Id("op").Add(obj("CompareOp"))).
			Params(jen.Bool(), jen.Error()).Block(
			jen.If(jen.Id("op").Op("==").Add(obj("Eq")).Op("||").Id("op").Op("==").Add(obj("Ne"))).Block(
				jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
				jen.If(jen.Op("!").Id("ok")).Block(
					jen.Return(jen.Id("op").Op("==").Add(obj("Ne")), jen.Nil()),
				),
				jen.Return(jen.Id(equal).Call(jen.Id("x"), jen.Id("o")).Op("==").Parens(jen.Id("op").Op("==").Add(obj("Eq"))), jen.Nil()),
			),
			jen.Return(jen.Id(compareOp).Call(jen.Id("x"), jen.Id("other"), jen.Id("op"))),
		))

	return nil
}

func genHash(tg *typeGen) error {
	expr := obj("NewHasher").Call()
	for _, f := range tg.t.Fields {
		expr.Dot("Add").Call(field("x", f))
	}

	tg.add("Hash combines the hashes of the fields of x in declaration order.",
		tg.method("Hash").Params().Int64().Block(
			jen.Return(expr.Dot("Sum").Call()),
		))

	return nil
}

// equalHelper registers the field-by-field equality of two records.
func (tg *typeGen) equalHelper() string {
	return tg.helper("Equal", func(name string) jen.Code {
		var expr *jen.Statement

		for _, f := range tg.t.Fields {
			cond := tg.fieldEqual(f)
			if expr == nil {
				expr = jen.Add(cond)
			} else {
				expr.Op("&&").Add(cond)
			}
		}

		if expr == nil {
			expr = jen.True()
		}

		return jen.Func().Id(name).Params(jen.List(jen.Id("x"), jen.Id("o")).Op("*").Add(tg.self())).Bool().Block(
			jen.Return(expr),
		)
	})
}

func (tg *typeGen) fieldEqual(f *resolve.Field) jen.Code {
	if f.DeclaredType != nil && scalar(f.DeclaredType) {
		return field("x", f).Op("==").Add(field("o", f))
	}

	return obj("Equals").Call(field("x", f), field("o", f))
}

// compareHelper registers the lexicographic comparison of two records. The
// first field that is not equal decides the outcome, which may be
// Incomparable.
func (tg *typeGen) compareHelper() string {
	return tg.helper("Compare", func(name string) jen.Code {
		body := make([]jen.Code, 0, len(tg.t.Fields)+1)

		for _, f := range tg.t.Fields {
			if f.DeclaredType != nil && ordered(f.DeclaredType) {
				body = append(body, jen.If(
					jen.Id("c").Op(":=").Add(obj("CompareOrdered")).Call(field("x", f), field("o", f)),
					jen.Id("c").Op("!=").Add(obj("Equal")),
				).Block(jen.Return(jen.Id("c"), jen.Nil())))

				continue
			}

			body = append(body, jen.If(
				jen.List(jen.Id("c"), jen.Err()).Op(":=").Add(obj("Compare")).Call(field("x", f), field("o", f)),
				jen.Err().Op("!=").Nil().Op("||").Id("c").Op("!=").Add(obj("Equal")),
			).Block(jen.Return(jen.Id("c"), jen.Err())))
		}

		body = append(body, jen.Return(obj("Equal"), jen.Nil()))

		return jen.Func().Id(name).Params(jen.List(jen.Id("x"), jen.Id("o")).Op("*").Add(tg.self())).
			Params(obj("Ordering"), jen.Error()).Block(body...)
	})
}

// compareOpHelper registers the evaluation of one ordering operator against
// a dynamic operand.
func (tg *typeGen) compareOpHelper() string {
	compare := tg.compareHelper()

	return tg.helper("CompareOp", func(name string) jen.Code {
		return jen.Func().Id(name).Params(
			jen.Id("x").Op("*").Add(tg.self()),
			jen.Id("other").Any(),
			jen.Id("op").Add(obj("CompareOp")),
		).Params(jen.Bool(), jen.Error()).Block(
			jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Return(jen.False(), obj("NewTypeMismatch").Call(jen.Id("op").Dot("String").Call(), jen.Id("x"), jen.Id("other"))),
			),
			jen.List(jen.Id("c"), jen.Err()).Op(":=").Id(compare).Call(jen.Id("x"), jen.Id("o")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.False(), jen.Err())),
			jen.Return(jen.Id("c").Dot("Holds").Call(jen.Id("op")), jen.Nil()),
		)
	})
}
