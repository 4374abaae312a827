package gen

import (
	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

func genMatchArgs(tg *typeGen) error {
	fields := tg.t.Eligible(resolve.MatchPattern)

	var ret jen.Code = jen.Nil()
	if len(fields) > 0 {
		ret = names(fields)
	}

	tg.add("MatchArgs returns the external names matched by position.",
		tg.method("MatchArgs").Params().Index().String().Block(jen.Return(ret)))

	return nil
}

// genFieldDescriptors emits FieldDescriptors. The host version is checked
// once; older hosts never receive the keyword-only flag.
func genFieldDescriptors(tg *typeGen) error {
	fields := tg.t.Eligible(resolve.FieldMetadata)
	if len(fields) == 0 {
		tg.add("FieldDescriptors returns no descriptors: "+tg.t.Name()+" exposes no fields.",
			tg.method("FieldDescriptors").Params(jen.Id("h").Add(obj("Host"))).
				Params(jen.Index().Op("*").Add(obj("Field")), jen.Error()).Block(jen.Return(jen.Nil(), jen.Nil())))

		return nil
	}

	body := []jen.Code{
		jen.Id("kw").Op(":=").Id("h").Dot("Version").Call().Dot("AtLeast").Call(obj("KwOnlySince")),
		jen.Id("owner").Op(":=").Qual("reflect", "TypeFor").Types(tg.self()).Call(),
		jen.Id("fields").Op(":=").Make(jen.Index().Op("*").Add(obj("Field")), jen.Lit(0), jen.Lit(len(fields))),
		jen.Line(),
		jen.Id("add").Op(":=").Func().Params(
			jen.Id("name").String(),
			jen.Id("spec").Add(obj("DescriptorSpec")),
			jen.Id("kwOnly").Bool(),
		).Error().Block(
			jen.If(jen.Id("kw")).Block(
				jen.Id("spec").Dot("KwOnly").Op("=").Add(obj("Flag")).Call(jen.Id("kwOnly")),
			),
			jen.Line(),
			jen.List(jen.Id("f"), jen.Err()).Op(":=").Id("h").Dot("MakeDescriptor").Call(jen.Id("spec")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("field %s: %w"), jen.Id("name"), jen.Err())),
			),
			jen.Line(),
			jen.If(jen.Err().Op(":=").Id("h").Dot("RegisterField").Call(jen.Id("owner"), jen.Id("name"), jen.Id("f")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("field %s: %w"), jen.Id("name"), jen.Err())),
			),
			jen.Line(),
			jen.Id("fields").Op("=").Append(jen.Id("fields"), jen.Id("f")),
			jen.Line(),
			jen.Return(jen.Nil()),
		),
		jen.Line(),
	}

	for _, f := range fields {
		body = append(body, jen.If(
			jen.Err().Op(":=").Id("add").Call(jen.Lit(f.External), tg.descriptorSpec(f), jen.Lit(f.EffectiveKwOnly)),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())))
	}

	body = append(body, jen.Line(), jen.Return(jen.Id("fields"), jen.Nil()))

	tg.add("FieldDescriptors builds and registers a host descriptor for each field.",
		tg.method("FieldDescriptors").Params(jen.Id("h").Add(obj("Host"))).
			Params(jen.Index().Op("*").Add(obj("Field")), jen.Error()).Block(body...))

	return nil
}

// descriptorSpec is the composite literal describing f.
func (tg *typeGen) descriptorSpec(f *resolve.Field) jen.Code {
	return obj("DescriptorSpec").Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Id("Default")] = obj("Missing")
		d[jen.Id("DefaultFactory")] = obj("Missing")

		switch {
		case f.HasDefault && f.DefaultIsFactory:
			d[jen.Id("DefaultFactory")] = obj("Factory").Call(jen.Func().Params().Any().Block(
				jen.Return(jen.Id(tg.factory(f)).Call()),
			))
		case f.HasDefault:
			d[jen.Id("Default")] = tg.defaultValue(f)
		}

		construct := f.Eligible(resolve.Construct)

		d[jen.Id("Init")] = jen.Lit(construct)
		d[jen.Id("Repr")] = jen.Lit(f.PerCapability[resolve.Represent].Get(true))

		if construct {
			d[jen.Id("Kind")] = obj("FieldInstance")
		} else {
			d[jen.Id("Kind")] = obj("FieldClassVar")
		}

		if f.HasAnnotation {
			d[jen.Id("Annotation")] = jen.Lit(f.Annotation)
		}
	}))
}

func genAnnotations(tg *typeGen) error {
	tg.add("Annotations maps external field names to their annotations.",
		tg.method("Annotations").Params().Map(jen.String()).String().Block(
			jen.Return(jen.Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
				for _, f := range tg.t.Fields {
					if f.HasAnnotation {
						d[jen.Lit(f.External)] = jen.Lit(f.Annotation)
					}
				}
			}))),
		))

	return nil
}

// names returns a string slice literal of the external names of fields.
func names(fields []*resolve.Field) jen.Code {
	return jen.Index().String().ValuesFunc(func(g *jen.Group) {
		for _, f := range fields {
			g.Lit(f.External)
		}
	})
}
