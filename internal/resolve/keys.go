package resolve

import (
	"maps"
	"slices"
)

// Type option keys, as written in "//derive:class" directives.
const (
	KeyGetAll    = "get_all"
	KeySetAll    = "set_all"
	KeyName      = "name"
	KeyRenameAll = "rename_all"
)

// Field option keys.
const (
	KeyGet            = "get"
	KeySet            = "set"
	KeyNew            = "new"
	KeyInit           = "init"
	KeyRepr           = "repr"
	KeyStr            = "str"
	KeyIter           = "iter"
	KeyLen            = "len"
	KeyMatchArgs      = "match_args"
	KeyDataclassField = "dataclass_field"
	KeyDefault        = "default"
	KeyDefaultFactory = "default_factory"
	KeyKwOnly         = "kw_only"
	KeyAnnotation     = "annotation"
)

// Problem keys that are not option keys.
const (
	// KeyAll marks problems that break every feature of the type.
	KeyAll = "*"
	// ClassPrefix prefixes problem keys raised by type options.
	ClassPrefix = "class."
	// FeaturePrefix prefixes problem keys raised by feature directives.
	FeaturePrefix = "feature."
)

// aliases maps alternative spellings to canonical keys.
var aliases = map[string]string{
	KeyInit: KeyNew,
}

// fieldKeys are the accepted field options.
var fieldKeys = map[string]bool{
	KeyGet: true, KeySet: true, KeyName: true, KeyNew: true, KeyRepr: true, KeyStr: true,
	KeyIter: true, KeyLen: true, KeyMatchArgs: true, KeyDataclassField: true,
	KeyDefault: true, KeyDefaultFactory: true, KeyKwOnly: true, KeyAnnotation: true,
}

// fieldKeyNames and typeKeyNames are offered as suggestions for unknown
// keys.
var (
	fieldKeyNames = append(slices.Sorted(maps.Keys(fieldKeys)), KeyInit)
	typeKeyNames  = []string{KeyGetAll, KeySetAll, KeyName, KeyRenameAll}
)

// canonical returns the canonical spelling of a field option key.
func canonical(key string) string {
	if c, ok := aliases[key]; ok {
		return c
	}

	return key
}
