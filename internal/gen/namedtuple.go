package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

func genAsDict(tg *typeGen) error {
	tg.add("AsDict maps the external names of readable fields to their values.",
		tg.method("AsDict").Params().Map(jen.String()).Any().Block(
			jen.Return(jen.Map(jen.String()).Any().Values(jen.DictFunc(func(d jen.Dict) {
				for _, f := range tg.t.Readable() {
					d[jen.Lit(f.External)] = field("x", f)
				}
			}))),
		))

	return nil
}

func genFieldNames(tg *typeGen) error {
	tg.add("FieldNames returns the external names of readable fields.",
		tg.method("FieldNames").Params().Index().String().Block(
			jen.Return(names(tg.t.Readable())),
		))

	return nil
}

// genFieldDefaults emits the values readable fields get when they are not
// passed to the constructor.
func genFieldDefaults(tg *typeGen) error {
	tg.add("FieldDefaults maps readable fields to the value they get when omitted.",
		tg.method("FieldDefaults").Params().Map(jen.String()).Any().Block(
			jen.Return(jen.Map(jen.String()).Any().Values(jen.DictFunc(func(d jen.Dict) {
				for _, f := range tg.t.Readable() {
					switch {
					case f.HasDefault:
						d[jen.Lit(f.External)] = tg.defaultValue(f)
					case !f.Eligible(resolve.Construct):
						d[jen.Lit(f.External)] = tg.typedZero(f)
					}
				}
			}))),
		))

	return nil
}

func genMake(tg *typeGen) error {
	fields := tg.t.Readable()

	body := []jen.Code{
		jen.If(jen.Len(jen.Id("values")).Op("!=").Lit(len(fields))).Block(
			jen.Return(tg.constructionError(
				jen.Qual("fmt", "Sprintf").Call(jen.Lit(fmt.Sprintf("expected %d values, got %%d", len(fields))), jen.Len(jen.Id("values"))),
				nil,
			)),
		),
	}

	for i, f := range fields {
		v := fmt.Sprintf("v%d", i)
		body = append(body,
			jen.List(jen.Id(v), jen.Err()).Op(":=").Add(obj("Extract")).Types(tg.fieldType(f)).Call(jen.Id("values").Index(jen.Lit(i))),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(tg.constructionError(jen.Lit("value '"+f.External+"'"), jen.Err())),
			),
		)
	}

	for i, f := range fields {
		body = append(body, field("x", f).Op("=").Id(fmt.Sprintf("v%d", i)))
	}

	body = append(body, jen.Return(jen.Nil()))

	tg.add("Make fills the readable fields of x from values, in declaration order.",
		tg.method("Make").Params(jen.Id("values").Index().Any()).Error().Block(body...))

	return nil
}

func genReplace(tg *typeGen) error {
	cases := make([]jen.Code, 0, len(tg.t.Readable())+1)

	for _, f := range tg.t.Readable() {
		cases = append(cases, jen.Case(jen.Lit(f.External)).Block(
			jen.List(field("c", f), jen.Err()).Op("=").Add(obj("Extract")).Types(tg.fieldType(f)).Call(
				jen.Id("changes").Index(jen.Id("name")),
			),
		))
	}

	cases = append(cases, jen.Default().Block(
		jen.Id("unknown").Op("=").Append(jen.Id("unknown"), jen.Id("name")),
		jen.Continue(),
	))

	tg.add("Replace returns a copy of x with the named readable fields replaced.",
		tg.method("Replace").Params(jen.Id("changes").Map(jen.String()).Any()).
			Params(jen.Op("*").Add(tg.self()), jen.Error()).Block(
			jen.Id("c").Op(":=").Op("*").Id("x"),
			jen.Var().Id("unknown").Index().String(),
			jen.Line(),
			jen.For(jen.List(jen.Id("_"), jen.Id("name")).Op(":=").Range().Qual("slices", "Sorted").Call(
				jen.Qual("maps", "Keys").Call(jen.Id("changes")),
			)).Block(
				jen.Var().Err().Error(),
				jen.Line(),
				jen.Switch(jen.Id("name")).Block(cases...),
				jen.Line(),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Return(jen.Nil(), tg.constructionError(jen.Lit("value '").Op("+").Id("name").Op("+").Lit("'"), jen.Err())),
				),
			),
			jen.Line(),
			jen.If(jen.Len(jen.Id("unknown")).Op(">").Lit(0)).Block(
				jen.Return(jen.Nil(), tg.constructionError(
					jen.Lit("unexpected field names: ").Op("+").Qual("strings", "Join").Call(jen.Id("unknown"), jen.Lit(", ")),
					nil,
				)),
			),
			jen.Line(),
			jen.Return(jen.Op("&").Id("c"), jen.Nil()),
		))

	return nil
}

// constructionError builds &object.ConstructionError{...} for the type.
func (tg *typeGen) constructionError(msg, cause jen.Code) jen.Code {
	return jen.Op("&").Add(obj("ConstructionError")).Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Id("Type")] = jen.Lit(tg.t.External())
		d[jen.Id("Msg")] = msg

		if cause != nil {
			d[jen.Id("Err")] = cause
		}
	}))
}

// typedZero is the zero value of f's type as a dynamic value.
func (tg *typeGen) typedZero(f *resolve.Field) jen.Code {
	return jen.Op("*").New(tg.fieldType(f))
}
