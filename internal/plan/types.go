package plan

// Plan is the resolved view of a set of packages.
type Plan struct {
	Packages []Package `yaml:"packages" json:"packages"`
}

// Package lists the annotated types of one package.
type Package struct {
	Path  string `yaml:"path" json:"path"`
	Name  string `yaml:"name" json:"name"`
	Types []Type `yaml:"types" json:"types"`
}

// Type is one resolved annotated type.
type Type struct {
	Name      string `yaml:"name" json:"name"`
	External  string `yaml:"external" json:"external"`
	Shape     string `yaml:"shape" json:"shape"`
	GetAll    bool   `yaml:"get_all,omitempty" json:"get_all,omitempty"`
	SetAll    bool   `yaml:"set_all,omitempty" json:"set_all,omitempty"`
	RenameAll string `yaml:"rename_all,omitempty" json:"rename_all,omitempty"`

	Features []string  `yaml:"features,omitempty" json:"features,omitempty"`
	Fields   []Field   `yaml:"fields,omitempty" json:"fields,omitempty"`
	Problems []Problem `yaml:"problems,omitempty" json:"problems,omitempty"`
}

// Field is one resolved field.
type Field struct {
	Name     string `yaml:"name" json:"name"`
	External string `yaml:"external" json:"external"`
	Type     string `yaml:"type" json:"type"`
	Get      bool   `yaml:"get,omitempty" json:"get,omitempty"`
	Set      bool   `yaml:"set,omitempty" json:"set,omitempty"`
	KwOnly   bool   `yaml:"kw_only,omitempty" json:"kw_only,omitempty"`

	Default        string `yaml:"default,omitempty" json:"default,omitempty"`
	DefaultFactory bool   `yaml:"default_factory,omitempty" json:"default_factory,omitempty"`
	Annotation     string `yaml:"annotation,omitempty" json:"annotation,omitempty"`

	// Capabilities names the capabilities the field takes part in.
	Capabilities []string `yaml:"capabilities,flow" json:"capabilities"`
}

// Problem is a diagnostic found while resolving.
type Problem struct {
	Severity string `yaml:"severity" json:"severity"`
	Kind     string `yaml:"kind" json:"kind"`
	Position string `yaml:"position,omitempty" json:"position,omitempty"`
	Field    string `yaml:"field,omitempty" json:"field,omitempty"`
	Message  string `yaml:"message" json:"message"`
}
