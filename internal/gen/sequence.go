package gen

import (
	"slices"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/resolve"
)

func genIter(tg *typeGen) error {
	tg.add("Iter yields the iterable field values of x.",
		tg.method("Iter").Params().Qual("iter", "Seq").Types(jen.Any()).Block(
			jen.Return(tg.values(tg.t.Eligible(resolve.SequenceIter))),
		))

	return nil
}

func genReversed(tg *typeGen) error {
	fields := slices.Clone(tg.t.Eligible(resolve.SequenceIter))
	slices.Reverse(fields)

	tg.add("Reversed yields the iterable field values of x in reverse order.",
		tg.method("Reversed").Params().Qual("iter", "Seq").Types(jen.Any()).Block(
			jen.Return(tg.values(fields)),
		))

	return nil
}

func genLen(tg *typeGen) error {
	tg.add("Len returns the number of fields in the sequence view of x.",
		tg.method("Len").Params().Int().Block(
			jen.Return(jen.Lit(len(tg.t.Eligible(resolve.Length)))),
		))

	return nil
}

// values returns an iterator over a snapshot of fields taken at call time.
func (tg *typeGen) values(fields []*resolve.Field) jen.Code {
	return jen.Qual("slices", "Values").Call(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
		for _, f := range fields {
			g.Add(field("x", f))
		}
	}))
}
