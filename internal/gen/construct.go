package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

// genConstruct emits the constructor signature and Init. Construction
// eligible fields become parameters in declaration order; the keyword-only
// fold has already placed every keyword-only parameter after the positional
// ones. Excluded fields take their default, or the zero value.
func genConstruct(tg *typeGen) error {
	params := tg.t.Eligible(resolve.Construct)
	sig := tg.signature(params)

	tg.add("Signature returns the constructor signature of "+tg.t.Name()+".",
		tg.method("Signature").Params().Op("*").Add(obj("Signature")).Block(
			jen.Return(jen.Id(sig)),
		))

	slots := jen.Id("slots")
	if len(params) == 0 {
		slots = jen.Id("_")
	}

	body := []jen.Code{
		jen.List(slots, jen.Err()).Op(":=").Id(sig).Dot("Bind").Call(jen.Id("args")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
	}

	slot := 0

	for _, f := range tg.t.Fields {
		if !f.Eligible(resolve.Construct) {
			body = append(body, field("x", f).Op("=").Add(tg.initialValue(f)))

			continue
		}

		body = append(body, tg.bindParam(sig, slot, f))
		slot++
	}

	body = append(body, jen.Return(jen.Nil()))

	tg.add("Init binds args to the fields of x.",
		tg.method("Init").Params(jen.Id("args").Add(obj("Args"))).Error().Block(body...))

	return nil
}

// signature registers the package-level signature variable.
func (tg *typeGen) signature(params []*resolve.Field) string {
	return tg.helper("Signature", func(name string) jen.Code {
		return jen.Var().Id(name).Op("=").Add(obj("NewSignature")).CallFunc(func(g *jen.Group) {
			g.Lit(tg.t.External())

			for _, f := range params {
				g.Add(obj("Param").Values(jen.DictFunc(func(d jen.Dict) {
					d[jen.Id("Name")] = jen.Lit(f.External)

					if f.EffectiveKwOnly {
						d[jen.Id("KwOnly")] = jen.True()
					}

					if f.HasDefault {
						d[jen.Id("Optional")] = jen.True()
					}
				})))
			}
		})
	})
}

// bindParam extracts slot i into f, applying the default when the argument
// was omitted.
func (tg *typeGen) bindParam(sig string, i int, f *resolve.Field) jen.Code {
	slot := func() *jen.Statement {
		return jen.Id("slots").Index(jen.Lit(i))
	}

	extract := jen.List(field("x", f), jen.Err()).Op("=").Add(obj("Extract")).Types(tg.fieldType(f)).Call(slot())
	fail := jen.Return(jen.Id(sig).Dot("ArgError").Call(jen.Lit(f.External), jen.Err()))

	if !f.HasDefault {
		return jen.If(extract, jen.Err().Op("!=").Nil()).Block(fail)
	}

	return jen.If(slot().Op("==").Add(obj("Missing"))).Block(
		field("x", f).Op("=").Add(tg.defaultValue(f)),
	).Else().If(extract, jen.Err().Op("!=").Nil()).Block(fail)
}

// initialValue is the value a construction-excluded field starts with.
func (tg *typeGen) initialValue(f *resolve.Field) jen.Code {
	if f.HasDefault {
		return tg.defaultValue(f)
	}

	return tg.zero(f)
}

// defaultValue returns an expression yielding the default of f. Factory
// defaults and defaults of parameters are evaluated on every use; a plain
// default of an excluded field is one shared value.
func (tg *typeGen) defaultValue(f *resolve.Field) jen.Code {
	switch {
	case f.DefaultIsFactory:
		return jen.Id(tg.factory(f)).Call()
	case f.SharedDefault():
		return jen.Id(tg.sharedDefault(f))
	default:
		return jen.Id(tg.freshDefault(f)).Call()
	}
}

func (tg *typeGen) factory(f *resolve.Field) string {
	return tg.helper("New"+f.DeclaredName, func(name string) jen.Code {
		return jen.Func().Id(name).Params().Add(tg.fieldType(f)).Block(
			jen.Return(jen.Id(f.Default)),
		)
	})
}

func (tg *typeGen) freshDefault(f *resolve.Field) string {
	return tg.helper("Default"+f.DeclaredName, func(name string) jen.Code {
		return jen.Func().Id(name).Params().Add(tg.fieldType(f)).Block(
			jen.Return(jen.Id(f.Default)),
		)
	})
}

func (tg *typeGen) sharedDefault(f *resolve.Field) string {
	return tg.helper("Default"+f.DeclaredName, func(name string) jen.Code {
		return jen.Var().Id(name).Add(tg.fieldType(f)).Op("=").Id(f.Default)
	})
}

// zero returns the zero value of f's type.
func (tg *typeGen) zero(f *resolve.Field) jen.Code {
	if f.DeclaredType == nil {
		return jen.Op("*").New(jen.Id(f.TypeString))
	}

	return tg.ref.zero(f.DeclaredType)
}
