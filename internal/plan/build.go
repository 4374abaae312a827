package plan

import (
	"derive-generator/internal/analyze"
	"derive-generator/internal/rename"
	"derive-generator/internal/resolve"
)

// Build resolves every annotated type of pkgs.
func Build(pkgs []*analyze.PackageInfo) *Plan {
	p := &Plan{Packages: make([]Package, 0, len(pkgs))}

	for _, pkg := range pkgs {
		out := Package{Path: pkg.Path, Name: pkg.Name}

		for _, info := range pkg.Types {
			out.Types = append(out.Types, exportType(resolve.Resolve(info)))
		}

		p.Packages = append(p.Packages, out)
	}

	return p
}

func exportType(t *resolve.Type) Type {
	out := Type{
		Name:     t.Name(),
		External: t.External(),
		Shape:    t.Info.Shape.String(),
		GetAll:   t.Config.ReadDefault,
		SetAll:   t.Config.WriteDefault,
	}

	if t.Config.Rule != rename.Identity {
		out.RenameAll = t.Config.Rule.String()
	}

	for _, r := range t.Features {
		out.Features = append(out.Features, r.Name)
	}

	for _, f := range t.Fields {
		out.Fields = append(out.Fields, exportField(f))
	}

	for _, p := range t.Problems {
		d := p.Diagnostic

		problem := Problem{
			Severity: d.Severity.String(),
			Kind:     d.Kind.String(),
			Field:    d.Field,
			Message:  d.Message,
		}

		if d.Pos.IsValid() {
			problem.Position = d.Pos.String()
		}

		out.Problems = append(out.Problems, problem)
	}

	return out
}

func exportField(f *resolve.Field) Field {
	out := Field{
		Name:         f.DeclaredName,
		External:     f.External,
		Type:         f.TypeString,
		Get:          f.Readable,
		Set:          f.Writable,
		KwOnly:       f.EffectiveKwOnly,
		Capabilities: []string{},
	}

	if f.HasDefault {
		out.Default = f.Default
		out.DefaultFactory = f.DefaultIsFactory
	}

	if f.HasAnnotation {
		out.Annotation = f.Annotation
	}

	for _, c := range resolve.Capabilities {
		if f.Eligible(c) {
			out.Capabilities = append(out.Capabilities, c.String())
		}
	}

	return out
}
