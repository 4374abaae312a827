package gen

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/analyze"
	"derive-generator/internal/diagnostic"
)

func testConfig() GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg.Workers = 2

	return cfg
}

func loadPackage(t *testing.T, src string) *analyze.PackageInfo {
	t.Helper()

	pkg, err := analyze.NewAnalyzer().LoadSource(filepath.Join(t.TempDir(), "p.go"), src)
	require.NoError(t, err)

	return pkg
}

// generateSource generates the file of a single-file package.
func generateSource(t *testing.T, src string) (string, diagnostic.Diagnostics) {
	t.Helper()

	file, diags, err := NewGenerator(testConfig()).GeneratePackage(loadPackage(t, src))
	require.NoError(t, err)

	if file == nil {
		return "", diags
	}

	return string(file.Content), diags
}

func kinds(list []diagnostic.Diagnostic) []diagnostic.Kind {
	out := make([]diagnostic.Kind, 0, len(list))
	for _, d := range list {
		out = append(out, d.Kind)
	}

	return out
}

func TestGenerator_Generate_Header(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:len
type P struct{ A int }
`)

	require.False(t, diags.HasErrors())
	assert.True(t, strings.HasPrefix(code, "// Code generated by derive-generator. DO NOT EDIT.\n"))
	assert.Contains(t, code, "//go:build !derivegen")
	assert.Contains(t, code, "package p")
}

func TestGenerator_Generate_Repr(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:repr,str
//derive:class get_all,rename_all=snake_case
type Pair struct {
	FirstItem  int
	SecondItem string
	hidden     bool `+"`derive:\"repr=false\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, "func (x *Pair) Repr() string {")
	assert.Contains(t, code,
		`return "Pair(first_item=" + object.Repr(x.FirstItem) + ", second_item=" + object.Repr(x.SecondItem) + ")"`)
	assert.Contains(t, code, "func (x *Pair) String() string {")
	assert.Contains(t, code,
		`return "Pair(first_item=" + object.Str(x.FirstItem) + ", second_item=" + object.Str(x.SecondItem) + ", hidden=" + object.Str(x.hidden) + ")"`)
}

func TestGenerator_Generate_ReprWithoutFields(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:repr
//derive:class name=Empty
type E struct{ a int }
`)

	require.False(t, diags.HasErrors())
	assert.Contains(t, code, `return "Empty()"`)
}

func TestGenerator_Generate_KwOnlyFold(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:new
type K struct {
	A int
	//derive:kw_only
	B int
	C int `+"`derive:\"kw_only=false,default=3\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, "var kSignature = object.NewSignature(")
	assert.Len(t, regexp.MustCompile(`KwOnly:\s+true`).FindAllString(code, -1), 2, "kw_only is sticky for later fields")
	assert.Len(t, regexp.MustCompile(`Optional:\s+true`).FindAllString(code, -1), 1)
	assert.Contains(t, code, "func (x *K) Init(args object.Args) error {")
	assert.Contains(t, code, "slots, err := kSignature.Bind(args)")
	assert.Contains(t, code, "if x.A, err = object.Extract[int](slots[0]); err != nil {")
	assert.Contains(t, code, `return kSignature.ArgError("A", err)`)
	assert.Contains(t, code, "if slots[2] == object.Missing {")
	assert.Contains(t, code, "x.C = kDefaultC()")
	assert.Contains(t, code, "func kDefaultC() int {")
}

func TestGenerator_Generate_Defaults(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:new,fields,fielddefaults
//derive:class get_all
type D struct {
	Tags   []string `+"`derive:\"default=[]string{},default_factory\"`"+`
	Shared []string `+"`derive:\"new=false,default=[]string{\\\"x\\\"}\"`"+`
	Zero   float64  `+"`derive:\"new=false\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)

	// factory defaults are built on every use
	assert.Contains(t, code, "func dNewTags() []string {")
	assert.Contains(t, code, "x.Tags = dNewTags()")
	assert.Contains(t, code, "object.Factory(func() any {")

	// excluded plain defaults are one shared value
	assert.Contains(t, code, `var dDefaultShared []string = []string{"x"}`)
	assert.Contains(t, code, "x.Shared = dDefaultShared")
	assert.Contains(t, code, "x.Zero = 0")

	assert.Contains(t, code, "object.FieldClassVar")
	assert.Contains(t, code, "object.FieldInstance")
	assert.Regexp(t, `"Zero":\s+\*new\(float64\)`, code)
}

func TestGenerator_Generate_FieldDescriptors(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:fields
type F struct {
	A int `+"`derive:\"annotation=int\"`"+`
	//derive:kw_only
	B string
	c bool `+"`derive:\"dataclass_field=false\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, "func (x *F) FieldDescriptors(h object.Host) ([]*object.Field, error) {")
	assert.Contains(t, code, "kw := h.Version().AtLeast(object.KwOnlySince)")
	assert.Contains(t, code, "owner := reflect.TypeFor[F]()")
	assert.Contains(t, code, "spec.KwOnly = object.Flag(kwOnly)")
	assert.Contains(t, code, `h.RegisterField(owner, name, f)`)
	assert.Regexp(t, `Annotation:\s+"int"`, code)
	assert.Contains(t, code, `}, true); err != nil {`)
	assert.NotContains(t, code, `add("c"`)
}

func TestGenerator_Generate_Comparison(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:eq,ord,hash,richcmp
type C struct {
	N    float64
	Tags []string
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, "func (x *C) Eq(other any) bool {")
	assert.Contains(t, code, "return x.N == o.N && object.Equals(x.Tags, o.Tags)")
	assert.Contains(t, code, "func (x *C) Lt(other any) (bool, error) {")
	assert.Contains(t, code, "return cCompareOp(x, other, object.Lt)")
	assert.Contains(t, code, "if c := object.CompareOrdered(x.N, o.N); c != object.Equal {")
	assert.Contains(t, code, "if c, err := object.Compare(x.Tags, o.Tags); err != nil || c != object.Equal {")
	assert.Contains(t, code, `return object.Incomparable, object.NewTypeMismatch("<", x, other)`)
	assert.Contains(t, code, "return object.NewHasher().Add(x.N).Add(x.Tags).Sum()")
	assert.Contains(t, code, "func (x *C) RichCompare(other any, op object.CompareOp) (bool, error) {")

	// shared helpers are emitted once
	assert.Equal(t, 1, strings.Count(code, "func cEqual("))
	assert.Equal(t, 1, strings.Count(code, "func cCompare("))
	assert.Equal(t, 1, strings.Count(code, "func cCompareOp("))
}

func TestGenerator_Generate_SequenceAndMatchArgs(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:iter,reversed,len,match_args
//derive:class get_all
type S struct {
	A int
	B int `+"`derive:\"iter=false\"`"+`
	C int `+"`derive:\"get=false,set\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, "return slices.Values([]any{x.A, x.C})")
	assert.Contains(t, code, "return slices.Values([]any{x.C, x.A})")
	assert.Contains(t, code, "return 3")
	assert.Contains(t, code, `return []string{"A", "B"}`)
}

func TestGenerator_Generate_MatchArgsEmpty(t *testing.T) {
	code, _ := generateSource(t, `package p

//derive:match_args
type M struct{ A int }
`)

	assert.Contains(t, code, "func (x *M) MatchArgs() []string {\n\treturn nil\n}")
}

func TestGenerator_Generate_NamedTupleHelpers(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:asdict,fieldnames,make,replace,annotations
//derive:class get_all
type T struct {
	A int    `+"`derive:\"name=a,annotation=int\"`"+`
	B string `+"`derive:\"name=b\"`"+`
}
`)

	require.False(t, diags.HasErrors(), diags.Errors)
	assert.Contains(t, code, `return []string{"a", "b"}`)
	assert.Contains(t, code, `"a": x.A,`)
	assert.Contains(t, code, "func (x *T) Make(values []any) error {")
	assert.Contains(t, code, `fmt.Sprintf("expected 2 values, got %d", len(values))`)
	assert.Contains(t, code, "v1, err := object.Extract[string](values[1])")
	assert.Contains(t, code, "func (x *T) Replace(changes map[string]any) (*T, error) {")
	assert.Contains(t, code, "for _, name := range slices.Sorted(maps.Keys(changes)) {")
	assert.Contains(t, code, `case "b":`)
	assert.Regexp(t, `return map\[string\]string\{\s+"a": "int",\s+\}`, code)
}

func TestGenerator_Generate_FeatureIndependence(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:new,repr,hash
//derive:class get_all
type P struct {
	A int `+"`derive:\"kw_only,kw_only\"`"+`
}
`)

	require.Len(t, diags.Errors, 1, "each violation is reported once")
	assert.Equal(t, diagnostic.KindDuplicateOption, diags.Errors[0].Kind)
	assert.NotContains(t, code, "Init(")
	assert.Contains(t, code, "func (x *P) Repr() string {")
	assert.Contains(t, code, "func (x *P) Hash() int64 {")
}

func TestGenerator_Generate_UnsupportedShape(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:repr
type Color int
`)

	assert.Empty(t, code)
	assert.Equal(t, []diagnostic.Kind{diagnostic.KindUnsupportedShape}, kinds(diags.Errors))
}

func TestGenerator_Generate_UnknownFeature(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:repr,sparkle
//derive:class get_all
type P struct{ A int }
`)

	assert.Equal(t, []diagnostic.Kind{diagnostic.KindMalformedLiteral}, kinds(diags.Errors))
	assert.Contains(t, diags.Errors[0].Message, `"sparkle"`)
	assert.Contains(t, code, "Repr()")
	assert.NotContains(t, diags.Errors[0].Message, "did you mean")
}

func TestGenerator_Generate_UnknownFeatureHint(t *testing.T) {
	_, diags := generateSource(t, `package p

//derive:lenn
type P struct{ A int }
`)

	require.Len(t, diags.Errors, 1)
	assert.Equal(t, `unknown feature "lenn" (did you mean "len"?)`, diags.Errors[0].Message)
}

func TestHelperPrefix(t *testing.T) {
	taken := make(map[string]bool)

	tests := []struct {
		name string
		want string
	}{
		{"Pair", "pair"},
		{"pair", "pair2"},
		{"Pair2", "pair22"},
		{"PAIR", "pAIR"},
		{"Ébène", "ébène"},
		{"_hidden", "_hidden"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, helperPrefix(tt.name, taken), tt.name)
	}
}

func TestGenerator_Generate_HelperPrefixesDistinct(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:eq
type Pair struct{ A int }

//derive:eq
type pair struct{ B int }
`)

	assert.Empty(t, diags.Errors)
	assert.Contains(t, code, "func pairEqual(x, o *Pair) bool {")
	assert.Contains(t, code, "func pair2Equal(x, o *pair) bool {")
	assert.Contains(t, code, "return pair2Equal(x, o)")
}

func TestGenerator_Generate_MethodCollision(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:repr,len
type P struct{ A int }

func (p *P) Repr() string { return "mine" }
`)

	assert.Equal(t, []diagnostic.Kind{diagnostic.KindInvalidCombination}, kinds(diags.Errors))
	assert.NotContains(t, code, "func (x *P) Repr()")
	assert.Contains(t, code, "func (x *P) Len() int {")
}

func TestGenerator_Generate_DuplicateFeature(t *testing.T) {
	code, diags := generateSource(t, `package p

//derive:len,len,hash
type P struct{ A int }
`)

	assert.Equal(t, []diagnostic.Kind{diagnostic.KindDuplicateOption}, kinds(diags.Errors))
	assert.NotContains(t, code, "Len()")
	assert.Contains(t, code, "Hash()")
}

func TestGenerator_Generate_ConfiguredFeatures(t *testing.T) {
	cfg := testConfig()
	cfg.Features = []string{"hash", "nope"}

	g := NewGenerator(cfg)

	file, diags, err := g.GeneratePackage(loadPackage(t, `package p

//derive:len
type P struct{ A int }
`))
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "Hash()")
	assert.False(t, diags.HasErrors(), "configured features are validated once, not per type")

	v := g.Validate()
	assert.Equal(t, []diagnostic.Kind{diagnostic.KindMalformedLiteral}, kinds(v.Errors))
}

func TestGenerator_Generate_Packages(t *testing.T) {
	pkgs := []*analyze.PackageInfo{
		loadPackage(t, "package a\n\n//derive:len\ntype A struct{ X int }\n"),
		loadPackage(t, "package b\n\ntype B struct{ X int }\n"),
		loadPackage(t, "package c\n\n//derive:hash\ntype C struct{ X int }\n"),
	}

	files, diags, err := NewGenerator(testConfig()).Generate(context.Background(), pkgs)
	require.NoError(t, err)
	assert.False(t, diags.HasErrors())
	require.Len(t, files, 2)
	assert.Equal(t, pkgs[0].Dir, files[0].Dir)
	assert.Equal(t, "derive_gen.go", files[0].Filename)
	assert.Contains(t, string(files[1].Content), "package c")
}

func TestGenerator_Generate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewGenerator(testConfig()).Generate(ctx, []*analyze.PackageInfo{
		loadPackage(t, "package a\n\n//derive:len\ntype A struct{ X int }\n"),
	})
	require.ErrorIs(t, err, context.Canceled)
}
