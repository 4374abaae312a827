package analyze

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"

	"derive-generator/internal/options"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// BuildTag is set while loading so previously generated files, which are
// constrained with "!BuildTag", are left out of the analysis.
const BuildTag = "derivegen"

// Analyzer loads Go packages and collects annotated types.
type Analyzer struct {
	graph *TypeGraph
	// Dir is the working directory for package patterns.
	Dir string
	// BuildTag overrides the tag used to exclude generated files.
	BuildTag string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:    NewTypeGraph(),
		BuildTag: BuildTag,
	}
}

// LoadPackages loads the specified packages and collects annotated types.
// Patterns are standard Go package patterns (e.g., "./examples/basic").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	if a.BuildTag != "" {
		cfg.BuildFlags = []string{"-tags=" + a.BuildTag}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}

		a.processPackage(pkg.Fset, pkg.Syntax, pkg.Types, pkg.TypesInfo, dir)
	}

	return a.graph, nil
}

// LoadSource type-checks a single file given as source text. Imports are
// resolved from source. It is meant for tools and tests that have no module
// on disk.
func (a *Analyzer) LoadSource(filename, src string) (*PackageInfo, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	info := &types.Info{
		Defs:  make(map[*ast.Ident]types.Object),
		Types: make(map[ast.Expr]types.TypeAndValue),
		Uses:  make(map[*ast.Ident]types.Object),
	}

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}

	pkg, err := conf.Check(file.Name.Name, fset, []*ast.File{file}, info)
	if err != nil {
		return nil, fmt.Errorf("type-checking %s: %w", filename, err)
	}

	return a.processPackage(fset, []*ast.File{file}, pkg, info, filepath.Dir(filename)), nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts annotated types from a type-checked package.
func (a *Analyzer) processPackage(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info, dir string) *PackageInfo {
	pkgInfo := &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
		Dir:  dir,
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				directives := options.Directives(doc, fset)
				if len(directives) == 0 {
					continue
				}

				typeInfo := a.analyzeType(fset, ts, info, pkg)
				typeInfo.Directives = directives

				a.graph.Types[typeInfo.ID] = typeInfo
				pkgInfo.Types = append(pkgInfo.Types, typeInfo)
			}
		}
	}

	a.graph.Packages[pkg.Path()] = pkgInfo

	return pkgInfo
}

// analyzeType builds the TypeInfo of one annotated type declaration.
func (a *Analyzer) analyzeType(fset *token.FileSet, ts *ast.TypeSpec, info *types.Info, pkg *types.Package) *TypeInfo {
	typeInfo := &TypeInfo{
		ID:      TypeID{PkgPath: pkg.Path(), Name: ts.Name.Name},
		Pos:     fset.Position(ts.Name.Pos()),
		Methods: make(map[string]MethodInfo),
	}

	obj, _ := info.Defs[ts.Name].(*types.TypeName)
	if obj == nil || ts.Assign.IsValid() {
		typeInfo.Shape = ShapeUnsupported
		typeInfo.ShapeReason = "type aliases cannot be annotated"

		return typeInfo
	}

	named, _ := obj.Type().(*types.Named)
	if named == nil {
		typeInfo.Shape = ShapeUnsupported
		typeInfo.ShapeReason = "not a named type"

		return typeInfo
	}

	typeInfo.GoType = named
	typeInfo.Methods = methodSet(named)

	if named.TypeParams().Len() > 0 {
		typeInfo.Shape = ShapeUnsupported
		typeInfo.ShapeReason = "generic types are not supported"

		return typeInfo
	}

	st, ok := named.Underlying().(*types.Struct)
	astStruct, astOK := ts.Type.(*ast.StructType)

	if !ok || !astOK {
		typeInfo.Shape = ShapeUnsupported
		typeInfo.ShapeReason = fmt.Sprintf("%s is not a struct type", types.TypeString(named.Underlying(), types.RelativeTo(pkg)))

		return typeInfo
	}

	typeInfo.Fields = analyzeFields(fset, st, astStruct, pkg)

	for _, f := range typeInfo.Fields {
		if f.Embedded {
			typeInfo.Shape = ShapeUnsupported
			typeInfo.ShapeReason = "embedded field " + f.Name + " is not supported"

			break
		}
	}

	return typeInfo
}

// analyzeFields pairs go/types fields with their AST declarations so that
// doc-comment directives and positions are kept. Blank fields are skipped.
func analyzeFields(fset *token.FileSet, st *types.Struct, astStruct *ast.StructType, pkg *types.Package) []FieldInfo {
	var fields []FieldInfo

	index := 0

	for _, astField := range astStruct.Fields.List {
		names := astField.Names
		if len(names) == 0 {
			// Embedded fields have no names but still occupy one slot.
			names = []*ast.Ident{nil}
		}

		directives := options.Directives(astField.Doc, fset)

		for _, ident := range names {
			field := st.Field(index)

			pos := fset.Position(astField.Pos())
			if ident != nil {
				pos = fset.Position(ident.Pos())
			}

			if field.Name() != "_" {
				fields = append(fields, FieldInfo{
					Name:       field.Name(),
					Type:       field.Type(),
					TypeString: types.TypeString(field.Type(), types.RelativeTo(pkg)),
					Tag:        reflect.StructTag(st.Tag(index)),
					Exported:   field.Exported(),
					Embedded:   field.Embedded(),
					Index:      index,
					Pos:        pos,
					Directives: directives,
				})
			}

			index++
		}
	}

	return fields
}

// methodSet summarises the method set of *T, which includes value methods.
func methodSet(named *types.Named) map[string]MethodInfo {
	methods := make(map[string]MethodInfo)

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := range mset.Len() {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok {
			continue
		}

		m := MethodInfo{
			Name:       fn.Name(),
			NumParams:  sig.Params().Len(),
			NumResults: sig.Results().Len(),
		}

		if recv := sig.Recv(); recv != nil {
			_, m.PointerRecv = recv.Type().(*types.Pointer)
		}

		if m.NumParams > 0 {
			m.FirstParam = selfKind(sig.Params().At(0).Type(), named)
		}

		if m.NumResults > 0 {
			last := sig.Results().At(m.NumResults - 1).Type()
			m.ReturnsError = types.Identical(last, types.Universe.Lookup("error").Type())
			m.FirstResult = types.TypeString(sig.Results().At(0).Type(), nil)
		}

		methods[m.Name] = m
	}

	return methods
}

func selfKind(t types.Type, named *types.Named) SelfKind {
	if types.Identical(t, named) {
		return SelfValue
	}

	if p, ok := t.(*types.Pointer); ok && types.Identical(p.Elem(), named) {
		return SelfPointer
	}

	return SelfNone
}

// GetRecord returns the TypeInfo of an annotated record by package path and
// name.
func (a *Analyzer) GetRecord(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Shape != ShapeRecord {
		return nil, fmt.Errorf("type %s is not a record: %s", id, info.ShapeReason)
	}

	return info, nil
}
