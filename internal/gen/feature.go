package gen

import (
	"maps"
	"slices"

	"derive-generator/internal/resolve"
)

// Feature is one independently requestable unit of generated code.
type Feature struct {
	Name        string
	Description string
	// Methods are the methods the feature adds to the type.
	Methods []string
	// Consumes lists the option keys whose problems break the feature.
	Consumes []string

	generate func(*typeGen) error
}

// Option keys shared by several features.
var (
	namingKeys = []string{
		resolve.KeyName,
		resolve.ClassPrefix + resolve.KeyName,
		resolve.ClassPrefix + resolve.KeyRenameAll,
	}
	readKeys = []string{
		resolve.KeyGet,
		resolve.ClassPrefix + resolve.KeyGetAll,
	}
	accessKeys = []string{
		resolve.KeyGet,
		resolve.KeySet,
		resolve.ClassPrefix + resolve.KeyGetAll,
		resolve.ClassPrefix + resolve.KeySetAll,
	}
	defaultKeys = []string{
		resolve.KeyNew,
		resolve.KeyDefault,
		resolve.KeyDefaultFactory,
	}
)

var (
	// FeatureNew generates the host constructor.
	FeatureNew = &Feature{
		Name:        "new",
		Description: "Init binds dynamic arguments to fields, Signature describes them",
		Methods:     []string{"Init", "Signature"},
		Consumes:    slices.Concat(namingKeys, defaultKeys, []string{resolve.KeyKwOnly}),
		generate:    genConstruct,
	}

	// FeatureRepr generates the host representation.
	FeatureRepr = &Feature{
		Name:        "repr",
		Description: "Repr renders Name(field=value, ...) over represented fields",
		Methods:     []string{"Repr"},
		Consumes:    slices.Concat(namingKeys, accessKeys, []string{resolve.KeyRepr}),
		generate:    genRepr,
	}

	// FeatureStr generates the string conversion.
	FeatureStr = &Feature{
		Name:        "str",
		Description: "String renders Name(field=value, ...) over stringified fields",
		Methods:     []string{"String"},
		Consumes:    slices.Concat(namingKeys, accessKeys, []string{resolve.KeyStr}),
		generate:    genStr,
	}

	// FeatureIter generates forward iteration.
	FeatureIter = &Feature{
		Name:        "iter",
		Description: "Iter yields iterable field values in declaration order",
		Methods:     []string{"Iter"},
		Consumes:    slices.Concat(accessKeys, []string{resolve.KeyIter}),
		generate:    genIter,
	}

	// FeatureReversed generates reverse iteration.
	FeatureReversed = &Feature{
		Name:        "reversed",
		Description: "Reversed yields iterable field values in reverse declaration order",
		Methods:     []string{"Reversed"},
		Consumes:    slices.Concat(accessKeys, []string{resolve.KeyIter}),
		generate:    genReversed,
	}

	// FeatureLen generates the length.
	FeatureLen = &Feature{
		Name:        "len",
		Description: "Len counts length-eligible fields",
		Methods:     []string{"Len"},
		Consumes:    slices.Concat(accessKeys, []string{resolve.KeyLen}),
		generate:    genLen,
	}

	// FeatureEq generates structural equality.
	FeatureEq = &Feature{
		Name:        "eq",
		Description: "Eq and Ne compare all fields; foreign operands are unequal",
		Methods:     []string{"Eq", "Ne"},
		generate:    genEq,
	}

	// FeatureOrd generates lexicographic ordering.
	FeatureOrd = &Feature{
		Name:        "ord",
		Description: "Compare, Lt, Le, Gt and Ge order records field by field",
		Methods:     []string{"Compare", "Lt", "Le", "Gt", "Ge"},
		generate:    genOrd,
	}

	// FeatureRichCmp generates the single comparison entry point.
	FeatureRichCmp = &Feature{
		Name:        "richcmp",
		Description: "RichCompare dispatches the six comparison operators",
		Methods:     []string{"RichCompare"},
		generate:    genRichCompare,
	}

	// FeatureHash generates hashing.
	FeatureHash = &Feature{
		Name:        "hash",
		Description: "Hash combines the hashes of all fields in declaration order",
		Methods:     []string{"Hash"},
		generate:    genHash,
	}

	// FeatureMatchArgs generates pattern-matching metadata.
	FeatureMatchArgs = &Feature{
		Name:        "match_args",
		Description: "MatchArgs lists the external names of positional match fields",
		Methods:     []string{"MatchArgs"},
		Consumes:    slices.Concat(namingKeys, readKeys, []string{resolve.KeyMatchArgs}),
		generate:    genMatchArgs,
	}

	// FeatureFields generates reflection descriptors.
	FeatureFields = &Feature{
		Name:        "fields",
		Description: "FieldDescriptors builds and registers one host descriptor per field",
		Methods:     []string{"FieldDescriptors"},
		Consumes: slices.Concat(namingKeys, defaultKeys, []string{
			resolve.KeyDataclassField, resolve.KeyKwOnly, resolve.KeyRepr, resolve.KeyAnnotation,
		}),
		generate: genFieldDescriptors,
	}

	// FeatureAnnotations generates the annotation table.
	FeatureAnnotations = &Feature{
		Name:        "annotations",
		Description: "Annotations maps external field names to their annotations",
		Methods:     []string{"Annotations"},
		Consumes:    slices.Concat(namingKeys, []string{resolve.KeyAnnotation}),
		generate:    genAnnotations,
	}

	// FeatureAsDict generates the readable field map.
	FeatureAsDict = &Feature{
		Name:        "asdict",
		Description: "AsDict maps external names of readable fields to their values",
		Methods:     []string{"AsDict"},
		Consumes:    slices.Concat(namingKeys, readKeys),
		generate:    genAsDict,
	}

	// FeatureFieldNames generates the readable field names.
	FeatureFieldNames = &Feature{
		Name:        "fieldnames",
		Description: "FieldNames lists the external names of readable fields",
		Methods:     []string{"FieldNames"},
		Consumes:    slices.Concat(namingKeys, readKeys),
		generate:    genFieldNames,
	}

	// FeatureFieldDefaults generates the readable field defaults.
	FeatureFieldDefaults = &Feature{
		Name:        "fielddefaults",
		Description: "FieldDefaults maps readable fields to the value they get when not passed",
		Methods:     []string{"FieldDefaults"},
		Consumes:    slices.Concat(namingKeys, readKeys, defaultKeys),
		generate:    genFieldDefaults,
	}

	// FeatureMake generates positional filling.
	FeatureMake = &Feature{
		Name:        "make",
		Description: "Make fills readable fields from a positional list",
		Methods:     []string{"Make"},
		Consumes:    slices.Concat(namingKeys, readKeys),
		generate:    genMake,
	}

	// FeatureReplace generates copy-with-changes.
	FeatureReplace = &Feature{
		Name:        "replace",
		Description: "Replace copies the record with readable fields replaced by name",
		Methods:     []string{"Replace"},
		Consumes:    slices.Concat(namingKeys, readKeys),
		generate:    genReplace,
	}

	// AllFeatures holds every feature in generation order.
	AllFeatures = append([]*Feature{
		FeatureNew,
		FeatureRepr,
		FeatureStr,
		FeatureIter,
		FeatureReversed,
		FeatureLen,
		FeatureEq,
		FeatureOrd,
		FeatureRichCmp,
		FeatureHash,
		FeatureMatchArgs,
		FeatureFields,
		FeatureAnnotations,
		FeatureAsDict,
		FeatureFieldNames,
		FeatureFieldDefaults,
		FeatureMake,
		FeatureReplace,
	}, operatorFeatures()...)
)

// Bundles name groups of features requestable at once.
var Bundles = map[string][]string{
	"numeric": {
		"pos", "neg", "add", "sub", "mul", "truediv", "mod", "divmod",
		"iadd", "isub", "imul", "itruediv", "imod",
	},
	"bitwise": {
		"invert", "and", "or", "xor", "lshift", "rshift",
		"iand", "ior", "ixor", "ilshift", "irshift",
	},
}

// FeatureByName returns the feature called name.
func FeatureByName(name string) (*Feature, bool) {
	i := slices.IndexFunc(AllFeatures, func(f *Feature) bool {
		return f.Name == name
	})
	if i < 0 {
		return nil, false
	}

	return AllFeatures[i], true
}

// Known reports whether name is a feature or a bundle.
func Known(name string) bool {
	if _, ok := Bundles[name]; ok {
		return true
	}

	_, ok := FeatureByName(name)

	return ok
}

// Names returns every feature name in generation order, followed by the
// bundle names in sorted order.
func Names() []string {
	names := make([]string, 0, len(AllFeatures)+len(Bundles))
	for _, f := range AllFeatures {
		names = append(names, f.Name)
	}

	return append(names, slices.Sorted(maps.Keys(Bundles))...)
}

// request is a feature selected for one type. Origin is the name that
// selected it: the feature itself or its bundle.
type request struct {
	feature *Feature
	origin  string
}

// expand resolves feature and bundle names into requests in generation
// order. Unknown names are returned separately.
func expand(names []string) ([]request, []string) {
	origins := make(map[string]string)

	var unknown []string

	for _, name := range names {
		if members, ok := Bundles[name]; ok {
			for _, m := range members {
				if _, seen := origins[m]; !seen {
					origins[m] = name
				}
			}

			continue
		}

		if _, ok := FeatureByName(name); !ok {
			unknown = append(unknown, name)

			continue
		}

		if _, seen := origins[name]; !seen {
			origins[name] = name
		}
	}

	var out []request

	for _, f := range AllFeatures {
		if origin, ok := origins[f.Name]; ok {
			out = append(out, request{feature: f, origin: origin})
		}
	}

	return out, unknown
}

// keys returns every problem key that breaks the request.
func (r request) keys() []string {
	keys := slices.Concat(r.feature.Consumes, []string{resolve.FeaturePrefix + r.feature.Name})
	if r.origin != r.feature.Name {
		keys = append(keys, resolve.FeaturePrefix+r.origin)
	}

	return keys
}
