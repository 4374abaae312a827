package resolve

import (
	"fmt"

	"derive-generator/internal/diagnostic"
	"derive-generator/internal/match"
	"derive-generator/internal/options"
	"derive-generator/internal/rename"
)

// ResolveType merges the type directives of typeName into a TypeConfig and
// collects the requested features. Feature names are not validated here.
func ResolveType(typeName string, directives []options.Directive) (TypeConfig, []FeatureRequest, []Problem) {
	p := &problems{typeName: typeName}

	var (
		cfg      TypeConfig
		features []FeatureRequest
	)

	seenFeature := make(map[string]bool)
	seenOption := make(map[string]bool)

	for _, d := range directives {
		if d.Verb != options.ClassVerb {
			for _, name := range d.Features() {
				if seenFeature[name] {
					p.add(FeaturePrefix+name, diagnostic.KindDuplicateOption, d.Pos, "",
						fmt.Sprintf("feature %q requested more than once", name))

					continue
				}

				seenFeature[name] = true
				features = append(features, FeatureRequest{Name: name, Pos: d.Pos})
			}

			continue
		}

		opts, err := d.Options()
		if err != nil {
			p.add(KeyAll, diagnostic.KindMalformedLiteral, d.Pos, "", err.Error())

			continue
		}

		for _, opt := range opts {
			key := ClassPrefix + opt.Key

			if seenOption[opt.Key] {
				p.add(key, diagnostic.KindDuplicateOption, opt.Pos, "",
					fmt.Sprintf("duplicate type option %q", opt.Key))

				continue
			}

			seenOption[opt.Key] = true

			applyTypeOption(&cfg, opt, key, p)
		}
	}

	return cfg, features, p.list
}

func applyTypeOption(cfg *TypeConfig, opt options.Option, key string, p *problems) {
	switch opt.Key {
	case KeyGetAll, KeySetAll:
		v, err := parseBool(opt)
		if err != nil {
			p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, "", err.Error())

			return
		}

		if opt.Key == KeyGetAll {
			cfg.ReadDefault = v.Get(false)
		} else {
			cfg.WriteDefault = v.Get(false)
		}
	case KeyName:
		s, err := parseString(opt)
		if err != nil {
			p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, "", err.Error())

			return
		}

		cfg.ExternalName = s
	case KeyRenameAll:
		s, err := parseString(opt)
		if err != nil {
			p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, "", err.Error())

			return
		}

		rule, ok := rename.Lookup(s)
		if !ok {
			p.warn(key, diagnostic.KindMalformedLiteral, opt.Pos, "",
				fmt.Sprintf("unknown rename rule %q, names are kept as declared", s))
		}

		cfg.Rule = rule
	default:
		p.add(key, diagnostic.KindMalformedLiteral, opt.Pos, "", fmt.Sprintf("unexpected type option %q%s", opt.Key, match.Hint(opt.Key, typeKeyNames)))
	}
}

// parseBool reads a boolean option: a bare key is true, otherwise the value
// must be true or false.
func parseBool(opt options.Option) (Tristate, error) {
	if !opt.HasValue {
		return True, nil
	}

	switch opt.Value {
	case "true":
		return True, nil
	case "false":
		return False, nil
	default:
		return Unset, fmt.Errorf("option %s expects true or false, got %q", opt.Key, opt.Value)
	}
}

func parseString(opt options.Option) (string, error) {
	if !opt.HasValue {
		return "", fmt.Errorf("option %s requires a value", opt.Key)
	}

	return opt.Unquoted()
}
