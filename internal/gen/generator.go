package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"derive-generator/internal/analyze"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/resolve"
)

// objectPkg is the import path of the runtime package generated code
// targets.
const objectPkg = "derive-generator/object"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file written into each package directory.
	Filename string
	// BuildTag is excluded by the generated file's build constraint so that
	// re-analysis never sees previous output.
	BuildTag string
	// Header is an optional comment placed under the generated-code marker.
	Header string
	// Features are requested for every annotated type on top of its own
	// directives.
	Features []string
	// Workers bounds the number of packages generated concurrently.
	Workers int
	// DebugDir receives unformatted sources when formatting fails. Empty
	// means the package directory.
	DebugDir string
	// Logger receives progress and skipped-feature messages.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename: "derive_gen.go",
		BuildTag: analyze.BuildTag,
		Workers:  runtime.GOMAXPROCS(0),
		Logger:   slog.Default(),
	}
}

// Generator turns resolved record types into Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()

	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.BuildTag == "" {
		config.BuildTag = def.BuildTag
	}

	if config.Workers <= 0 {
		config.Workers = def.Workers
	}

	if config.Logger == nil {
		config.Logger = def.Logger
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "derive_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the destination of the file.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Validate reports configured features that do not exist.
func (g *Generator) Validate() diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, name := range g.config.Features {
		if !Known(name) {
			diags.AddError(diagnostic.KindMalformedLiteral, token.Position{}, "", "",
				fmt.Sprintf("unknown feature %q in configuration%s", name, match.Hint(name, Names())))
		}
	}

	return diags
}

// Generate generates one file per package, in parallel. Packages without
// generated code produce no file. Generation problems are returned as
// diagnostics; the error is reserved for failures to render output.
func (g *Generator) Generate(ctx context.Context, pkgs []*analyze.PackageInfo) ([]GeneratedFile, diagnostic.Diagnostics, error) {
	files := make([]*GeneratedFile, len(pkgs))
	diags := make([]diagnostic.Diagnostics, len(pkgs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.Workers)

	for i, pkg := range pkgs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var err error

			files[i], diags[i], err = g.GeneratePackage(pkg)

			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	all := g.Validate()

	var out []GeneratedFile

	for i := range pkgs {
		all.Merge(diags[i])

		if files[i] != nil {
			out = append(out, *files[i])
		}
	}

	all.Sort()

	return out, all, nil
}

// GeneratePackage generates the file of one package. It returns a nil file
// when no type of the package produced code.
func (g *Generator) GeneratePackage(pkg *analyze.PackageInfo) (*GeneratedFile, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	f := jen.NewFilePathName(pkg.Path, pkg.Name)
	f.HeaderComment("Code generated by derive-generator. DO NOT EDIT.")

	if g.config.Header != "" {
		f.HeaderComment(g.config.Header)
	}

	f.HeaderComment("//go:build !" + g.config.BuildTag)
	f.ImportName(objectPkg, "object")

	emitted := 0
	prefixes := make(map[string]bool)

	for _, info := range pkg.Types {
		t := resolve.Resolve(info)
		diags.Merge(t.Diagnostics())

		tg := newTypeGen(t, pkg.Path, helperPrefix(t.Name(), prefixes), g.config.Logger)
		tg.run(g.requests(t))
		diags.Merge(tg.diags)

		if len(tg.decls) == 0 {
			continue
		}

		for _, d := range tg.decls {
			f.Add(d)
			f.Line()
		}

		for _, h := range tg.helpers {
			f.Add(h.code)
			f.Line()
		}

		emitted++
	}

	g.config.Logger.Debug("generated package", "package", pkg.Path, "types", emitted)

	if emitted == 0 {
		return nil, diags, nil
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, diags, fmt.Errorf("rendering %s: %w", pkg.Path, err)
	}

	out := &GeneratedFile{Dir: pkg.Dir, Filename: g.config.Filename}

	content, err := formatSource(out.Path(), buf.Bytes())
	if err != nil {
		debugDir := g.config.DebugDir
		if debugDir == "" {
			debugDir = pkg.Dir
		}

		_ = writeDebugUnformatted(debugDir, out.Filename, buf.Bytes())

		return nil, diags, fmt.Errorf("formatting %s: %w", out.Path(), err)
	}

	out.Content = content

	return out, diags, nil
}

// requests returns the feature names requested for t: configured features
// first, then the type's own directives.
func (g *Generator) requests(t *resolve.Type) []string {
	names := make([]string, 0, len(g.config.Features)+len(t.Features))
	names = append(names, g.config.Features...)

	for _, r := range t.Features {
		names = append(names, r.Name)
	}

	return names
}

// typeGen emits the code of one type.
type typeGen struct {
	t      *resolve.Type
	ref    typeRef
	logger *slog.Logger
	// prefix names package-level helpers of the type.
	prefix string

	decls   []jen.Code
	helpers []helper
	diags   diagnostic.Diagnostics
}

type helper struct {
	name string
	code jen.Code
}

func newTypeGen(t *resolve.Type, pkgPath, prefix string, logger *slog.Logger) *typeGen {
	return &typeGen{
		t:      t,
		ref:    typeRef{pkgPath: pkgPath},
		logger: logger,
		prefix: prefix,
	}
}

// helperPrefix returns the helper prefix of the type called name: the name
// with its first rune lowered, numbered when another type of the package
// already uses it. The prefix is recorded in taken.
func helperPrefix(name string, taken map[string]bool) string {
	r, size := utf8.DecodeRuneInString(name)
	base := string(unicode.ToLower(r)) + name[size:]

	prefix := base
	for n := 2; taken[prefix]; n++ {
		prefix = base + strconv.Itoa(n)
	}

	taken[prefix] = true

	return prefix
}

// run generates every requested feature that is not broken by a problem.
func (tg *typeGen) run(names []string) {
	reqs, unknown := expand(names)

	for _, name := range unknown {
		if !tg.t.Requested(name) {
			continue
		}

		tg.error(diagnostic.KindMalformedLiteral, tg.requestPos(name), fmt.Sprintf("unknown feature %q%s", name, match.Hint(name, Names())))
	}

	for _, r := range reqs {
		if blocking := tg.t.Blocking(r.keys()...); len(blocking) > 0 {
			tg.logger.Warn("skipping feature",
				"type", tg.t.ID.String(), "feature", r.feature.Name, "problems", len(blocking))

			continue
		}

		if tg.collides(r) {
			continue
		}

		if err := r.feature.generate(tg); err != nil {
			tg.error(diagnostic.KindMissingMethod, tg.requestPos(r.origin), err.Error())
			tg.logger.Warn("skipping feature", "type", tg.t.ID.String(), "feature", r.feature.Name, "error", err)
		}
	}
}

// collides reports, once per method, feature methods already declared on
// the type.
func (tg *typeGen) collides(r request) bool {
	if tg.t.Info == nil {
		return false
	}

	found := false

	for _, m := range r.feature.Methods {
		if tg.t.Info.HasMethod(m) {
			tg.error(diagnostic.KindInvalidCombination, tg.requestPos(r.origin),
				fmt.Sprintf("feature %s generates method %s, which %s already declares", r.feature.Name, m, tg.t.Name()))

			found = true
		}
	}

	return found
}

func (tg *typeGen) requestPos(name string) token.Position {
	for _, r := range tg.t.Features {
		if r.Name == name {
			return r.Pos
		}
	}

	return tg.t.Pos
}

func (tg *typeGen) error(kind diagnostic.Kind, pos token.Position, msg string) {
	tg.diags.AddError(kind, pos, tg.t.Name(), "", msg)
}

// add appends a declaration, preceded by its doc comment.
func (tg *typeGen) add(doc string, decl jen.Code) {
	if doc != "" {
		tg.decls = append(tg.decls, jen.Comment(doc).Line().Add(decl))

		return
	}

	tg.decls = append(tg.decls, decl)
}

// helper registers a package-level declaration once and returns its name.
func (tg *typeGen) helper(suffix string, build func(name string) jen.Code) string {
	name := tg.prefix + suffix

	for _, h := range tg.helpers {
		if h.name == name {
			return name
		}
	}

	tg.helpers = append(tg.helpers, helper{name: name, code: build(name)})

	return name
}

// method starts a pointer-receiver method declaration on the type.
func (tg *typeGen) method(name string) *jen.Statement {
	return jen.Func().Params(jen.Id("x").Op("*").Id(tg.t.Name())).Id(name)
}

// self returns a reference to the type.
func (tg *typeGen) self() *jen.Statement {
	return jen.Id(tg.t.Name())
}

// field returns x.<Field>.
func field(recv string, f *resolve.Field) *jen.Statement {
	return jen.Id(recv).Dot(f.DeclaredName)
}

// fieldType returns the declared type of f.
func (tg *typeGen) fieldType(f *resolve.Field) jen.Code {
	if f.DeclaredType == nil {
		return jen.Id(f.TypeString)
	}

	return tg.ref.code(f.DeclaredType)
}

func obj(name string) *jen.Statement {
	return jen.Qual(objectPkg, name)
}
