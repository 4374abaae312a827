package resolve

import (
	"fmt"
	"go/parser"

	"derive-generator/internal/analyze"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/options"
	"derive-generator/internal/rename"
)

// ResolveFields resolves every field of typeName in declaration order. The
// keyword-only flag is threaded through the fields as a fold: once a field
// is keyword-only, all later fields are too.
func ResolveFields(typeName string, tc TypeConfig, infos []analyze.FieldInfo) ([]*Field, []Problem) {
	p := &problems{typeName: typeName}

	fields := make([]*Field, 0, len(infos))
	kwOnly := false

	for i := range infos {
		cfg := fieldConfig(tc, &infos[i], p)

		var f *Field
		f, kwOnly = ResolveField(tc, cfg, kwOnly)
		fields = append(fields, f)
	}

	return fields, p.list
}

// ResolveField is one step of the field fold. It combines cfg with the type
// configuration, computes eligibility, and returns the keyword-only
// accumulator for the next field.
func ResolveField(tc TypeConfig, cfg FieldConfig, kwOnly bool) (*Field, bool) {
	kwOnly = kwOnly || cfg.KwOnly.Get(false)

	f := &Field{
		FieldConfig:     cfg,
		External:        externalName(tc, cfg),
		EffectiveKwOnly: kwOnly,
	}

	for _, c := range Capabilities {
		f.eligible[c] = cfg.PerCapability[c].Get(fallback(c, cfg))
	}

	return f, kwOnly
}

func externalName(tc TypeConfig, cfg FieldConfig) string {
	if cfg.HasExplicitName {
		return cfg.ExplicitName
	}

	return rename.Apply(tc.Rule, cfg.DeclaredName)
}

// fallback is the eligibility of a field that does not override c.
func fallback(c Capability, cfg FieldConfig) bool {
	switch c {
	case Represent, Stringify, SequenceIter, Length:
		return cfg.Readable || cfg.Writable
	case MatchPattern:
		return cfg.Readable
	default:
		return true
	}
}

// fieldConfig merges the field's comment directives and struct tag, in that
// order, over the type defaults.
func fieldConfig(tc TypeConfig, info *analyze.FieldInfo, p *problems) FieldConfig {
	cfg := FieldConfig{
		DeclaredName: info.Name,
		DeclaredType: info.Type,
		TypeString:   info.TypeString,
		Pos:          info.Pos,
	}

	var all []options.Option

	for _, d := range info.Directives {
		opts, err := d.Options()
		if err != nil {
			p.add(KeyAll, diagnostic.KindMalformedLiteral, d.Pos, info.Name, err.Error())

			continue
		}

		all = append(all, opts...)
	}

	tagOpts, _, err := options.TagOptions(info.Tag, info.Pos)
	if err != nil {
		p.add(KeyAll, diagnostic.KindMalformedLiteral, info.Pos, info.Name, err.Error())
	}

	all = append(all, tagOpts...)

	var readable, writable Tristate

	seen := make(map[string]options.Option)

	for _, opt := range all {
		key := canonical(opt.Key)

		if !fieldKeys[key] {
			p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, info.Name, fmt.Sprintf("unexpected option %q%s", opt.Key, match.Hint(opt.Key, fieldKeyNames)))

			continue
		}

		if prev, dup := seen[key]; dup {
			p.add(key, diagnostic.KindDuplicateOption, opt.Pos, info.Name,
				fmt.Sprintf("duplicate option %q (first given as %q)", opt.Key, prev.String()))

			continue
		}

		seen[key] = opt

		switch key {
		case KeyGet:
			readable = boolOption(opt, key, info.Name, p)
		case KeySet:
			writable = boolOption(opt, key, info.Name, p)
		case KeyKwOnly:
			cfg.KwOnly = boolOption(opt, key, info.Name, p)
		case KeyDefaultFactory:
			cfg.DefaultIsFactory = boolOption(opt, key, info.Name, p).Get(false)
		case KeyName:
			if s, ok := stringOption(opt, key, info.Name, p); ok {
				cfg.ExplicitName, cfg.HasExplicitName = s, true
			}
		case KeyAnnotation:
			if s, ok := stringOption(opt, key, info.Name, p); ok {
				cfg.Annotation, cfg.HasAnnotation = s, true
			}
		case KeyDefault:
			if expr, ok := defaultOption(opt, info.Name, p); ok {
				cfg.Default, cfg.HasDefault = expr, true
			}
		default:
			for _, c := range Capabilities {
				if c.Key() == key {
					cfg.PerCapability[c] = boolOption(opt, key, info.Name, p)
				}
			}
		}
	}

	cfg.Readable = readable.Get(tc.ReadDefault)
	cfg.Writable = writable.Get(tc.WriteDefault)

	if _, gaveDefault := seen[KeyDefault]; cfg.DefaultIsFactory && !gaveDefault {
		msg := "default_factory requires a default expression"
		if !cfg.PerCapability[Construct].Get(true) {
			msg = "default_factory on a field excluded from construction requires a default expression"
		}

		p.add(KeyDefaultFactory, diagnostic.KindInvalidCombination, seen[KeyDefaultFactory].Pos, info.Name, msg)
	}

	return cfg
}

func boolOption(opt options.Option, key, field string, p *problems) Tristate {
	v, err := parseBool(opt)
	if err != nil {
		p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, field, err.Error())
	}

	return v
}

func stringOption(opt options.Option, key, field string, p *problems) (string, bool) {
	s, err := parseString(opt)
	if err != nil {
		p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, field, err.Error())

		return "", false
	}

	return s, true
}

// defaultOption validates that the default is a Go expression.
func defaultOption(opt options.Option, field string, p *problems) (string, bool) {
	if !opt.HasValue || opt.Value == "" {
		p.add(KeyDefault, diagnostic.KindMalformedLiteral, opt.Pos, field, "option default requires a value")

		return "", false
	}

	if _, err := parser.ParseExpr(opt.Value); err != nil {
		p.add(KeyDefault, diagnostic.KindMalformedLiteral, opt.Pos, field,
			fmt.Sprintf("default %q is not a valid expression: %v", opt.Value, err))

		return "", false
	}

	return opt.Value, true
}
