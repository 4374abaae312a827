package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"derive-generator/internal/analyze"
)

// opFamily is the calling convention shared by a group of operator
// features.
type opFamily int

const (
	familyUnary opFamily = iota
	familyBinary
	familyReflected
	familyAssign
	familyDivMod
	familyReflectedDivMod
	familyConversion
)

// opRow is one operator feature: the host method generated on the type and
// the user-written method it delegates to.
type opRow struct {
	feature    string
	method     string
	underlying string
	family     opFamily
	// result is the Go type conversions return.
	result string
}

// binaryOps are the binary operators; each also has a reflected and an
// in-place form.
var binaryOps = []struct{ feature, name, underlying string }{
	{"add", "Add", "Add"},
	{"sub", "Sub", "Sub"},
	{"mul", "Mul", "Mul"},
	{"truediv", "TrueDiv", "Div"},
	{"floordiv", "FloorDiv", "Div"},
	{"mod", "Mod", "Rem"},
	{"matmul", "MatMul", "Mul"},
	{"lshift", "LShift", "Shl"},
	{"rshift", "RShift", "Shr"},
	{"and", "And", "And"},
	{"or", "Or", "Or"},
	{"xor", "Xor", "Xor"},
}

var opTable = buildOpTable()

func buildOpTable() []opRow {
	rows := []opRow{
		{feature: "pos", method: "OpPos", family: familyUnary},
		{feature: "neg", method: "OpNeg", underlying: "Neg", family: familyUnary},
		{feature: "invert", method: "OpInvert", underlying: "Not", family: familyUnary},
	}

	for _, op := range binaryOps {
		rows = append(rows, opRow{feature: op.feature, method: "Op" + op.name, underlying: op.underlying, family: familyBinary})
	}

	for _, op := range binaryOps {
		rows = append(rows, opRow{feature: "r" + op.feature, method: "OpR" + op.name, underlying: op.underlying, family: familyReflected})
	}

	for _, op := range binaryOps {
		rows = append(rows, opRow{feature: "i" + op.feature, method: "OpI" + op.name, underlying: op.underlying + "Assign", family: familyAssign})
	}

	return append(rows,
		opRow{feature: "divmod", method: "OpDivMod", family: familyDivMod},
		opRow{feature: "rdivmod", method: "OpRDivMod", family: familyReflectedDivMod},
		opRow{feature: "bool", method: "AsBool", underlying: "ToBool", family: familyConversion, result: "bool"},
		opRow{feature: "int", method: "AsInt", underlying: "ToInt", family: familyConversion, result: "int64"},
		opRow{feature: "index", method: "AsIndex", underlying: "ToIndex", family: familyConversion, result: "int"},
		opRow{feature: "float", method: "AsFloat", underlying: "ToFloat", family: familyConversion, result: "float64"},
		opRow{feature: "bytes", method: "AsBytes", underlying: "ToBytes", family: familyConversion, result: "[]byte"},
		opRow{feature: "complex", method: "AsComplex", underlying: "ToComplex", family: familyConversion, result: "complex128"},
	)
}

// operatorFeatures turns the operator table into features.
func operatorFeatures() []*Feature {
	features := make([]*Feature, 0, len(opTable))

	for _, row := range opTable {
		features = append(features, &Feature{
			Name:        row.feature,
			Description: row.description(),
			Methods:     []string{row.method},
			generate: func(tg *typeGen) error {
				return tg.operator(row)
			},
		})
	}

	return features
}

func (r opRow) description() string {
	switch r.family {
	case familyUnary:
		if r.underlying == "" {
			return r.method + " returns the receiver"
		}

		return r.method + " delegates to " + r.underlying
	case familyDivMod:
		return r.method + " returns Div and Rem of the receiver and the operand"
	case familyReflectedDivMod:
		return r.method + " returns Div and Rem of the operand and the receiver"
	case familyReflected:
		return r.method + " delegates to " + r.underlying + " with swapped operands"
	default:
		return r.method + " delegates to " + r.underlying
	}
}

// operator emits the host method of row. It fails when the underlying
// method is absent or has a shape the calling convention cannot use.
func (tg *typeGen) operator(row opRow) error {
	switch row.family {
	case familyUnary:
		return tg.unaryOp(row)
	case familyBinary, familyReflected:
		return tg.binaryOp(row)
	case familyAssign:
		return tg.assignOp(row)
	case familyDivMod, familyReflectedDivMod:
		return tg.divModOp(row)
	case familyConversion:
		return tg.conversionOp(row)
	default:
		return fmt.Errorf("unknown operator family %d", row.family)
	}
}

// underlying looks up the delegate of an operator.
func (tg *typeGen) underlying(feature, name string, params int, check func(analyze.MethodInfo) bool, shape string) (analyze.MethodInfo, error) {
	m, ok := tg.t.Info.Method(name)
	if !ok {
		return m, fmt.Errorf("feature %s requires method %s", feature, name)
	}

	if m.NumParams != params || !check(m) {
		return m, fmt.Errorf("feature %s requires method %s to have the form %s", feature, name, shape)
	}

	return m, nil
}

// binaryShape accepts Method(T|*T) R and Method(T|*T) (R, error).
func binaryShape(m analyze.MethodInfo) bool {
	return m.FirstParam != analyze.SelfNone && returnsValue(m)
}

func returnsValue(m analyze.MethodInfo) bool {
	return (m.NumResults == 1 && !m.ReturnsError) || (m.NumResults == 2 && m.ReturnsError)
}

// operand passes v to a parameter of the method's self kind.
func operand(m analyze.MethodInfo, v string) jen.Code {
	if m.FirstParam == analyze.SelfValue {
		return jen.Op("*").Id(v)
	}

	return jen.Id(v)
}

// result returns call as the (any, error) pair of a host operator.
func result(m analyze.MethodInfo, call jen.Code) jen.Code {
	if m.ReturnsError {
		return jen.Return(call)
	}

	return jen.Return(call, jen.Nil())
}

// asOther binds o to the operand or returns ErrNotImplemented.
func (tg *typeGen) asOther() []jen.Code {
	return []jen.Code{
		jen.List(jen.Id("o"), jen.Id("ok")).Op(":=").Add(obj("As")).Types(tg.self()).Call(jen.Id("other")),
		jen.If(jen.Op("!").Id("ok")).Block(jen.Return(jen.Nil(), obj("ErrNotImplemented"))),
	}
}

func (tg *typeGen) unaryOp(row opRow) error {
	var body jen.Code

	if row.underlying == "" {
		body = jen.Return(jen.Id("x"), jen.Nil())
	} else {
		m, err := tg.underlying(row.feature, row.underlying, 0, returnsValue, "func() R or func() (R, error)")
		if err != nil {
			return err
		}

		body = result(m, jen.Id("x").Dot(row.underlying).Call())
	}

	tg.add(row.description()+".",
		tg.method(row.method).Params().Params(jen.Any(), jen.Error()).Block(body))

	return nil
}

func (tg *typeGen) binaryOp(row opRow) error {
	m, err := tg.underlying(row.feature, row.underlying, 1, binaryShape, "func(T) R or func(*T) (R, error)")
	if err != nil {
		return err
	}

	call := jen.Id("x").Dot(row.underlying).Call(operand(m, "o"))
	if row.family == familyReflected {
		call = jen.Id("o").Dot(row.underlying).Call(operand(m, "x"))
	}

	body := append(tg.asOther(), result(m, call))

	tg.add(row.description()+". Operands of other types yield object.ErrNotImplemented.",
		tg.method(row.method).Params(jen.Id("other").Any()).Params(jen.Any(), jen.Error()).Block(body...))

	return nil
}

func (tg *typeGen) assignOp(row opRow) error {
	m, err := tg.underlying(row.feature, row.underlying, 1, func(m analyze.MethodInfo) bool {
		return m.FirstParam != analyze.SelfNone &&
			(m.NumResults == 0 || (m.NumResults == 1 && m.ReturnsError))
	}, "func(T) or func(*T) error")
	if err != nil {
		return err
	}

	call := jen.Id("x").Dot(row.underlying).Call(operand(m, "o"))

	body := tg.asOther()
	if m.ReturnsError {
		body = append(body, jen.If(jen.Err().Op(":=").Add(call), jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), jen.Err()),
		))
	} else {
		body = append(body, call)
	}

	body = append(body, jen.Return(jen.Id("x"), jen.Nil()))

	tg.add(row.description()+" and returns the updated receiver.",
		tg.method(row.method).Params(jen.Id("other").Any()).Params(jen.Any(), jen.Error()).Block(body...))

	return nil
}

func (tg *typeGen) divModOp(row opRow) error {
	recv, arg := "x", "o"
	if row.family == familyReflectedDivMod {
		recv, arg = "o", "x"
	}

	body := tg.asOther()

	for _, part := range []struct{ name, v string }{{"Div", "q"}, {"Rem", "r"}} {
		m, err := tg.underlying(row.feature, part.name, 1, binaryShape, "func(T) R or func(*T) (R, error)")
		if err != nil {
			return err
		}

		call := jen.Id(recv).Dot(part.name).Call(operand(m, arg))

		if !m.ReturnsError {
			body = append(body, jen.Id(part.v).Op(":=").Add(call))

			continue
		}

		body = append(body,
			jen.List(jen.Id(part.v), jen.Err()).Op(":=").Add(call),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		)
	}

	body = append(body, jen.Return(jen.Index().Any().Values(jen.Id("q"), jen.Id("r")), jen.Nil()))

	tg.add(row.description()+".",
		tg.method(row.method).Params(jen.Id("other").Any()).Params(jen.Any(), jen.Error()).Block(body...))

	return nil
}

func (tg *typeGen) conversionOp(row opRow) error {
	m, err := tg.underlying(row.feature, row.underlying, 0, func(m analyze.MethodInfo) bool {
		return returnsValue(m) && m.FirstResult == row.result
	}, fmt.Sprintf("func() %[1]s or func() (%[1]s, error)", row.result))
	if err != nil {
		return err
	}

	call := jen.Id("x").Dot(row.underlying).Call()

	var body jen.Code = jen.Return(call, jen.Nil())
	if m.ReturnsError {
		body = jen.Return(call)
	}

	tg.add(row.description()+".",
		tg.method(row.method).Params().Params(jen.Id(row.result), jen.Error()).Block(body))

	return nil
}
