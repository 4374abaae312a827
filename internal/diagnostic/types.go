package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	KindUnknown Kind = iota
	// KindDuplicateOption: the same option key appears twice for one target.
	KindDuplicateOption
	// KindMalformedLiteral: an option value or default expression does not parse.
	KindMalformedLiteral
	// KindUnsupportedShape: the annotated type is not a plain field record.
	KindUnsupportedShape
	// KindInvalidCombination: options that cannot be used together.
	KindInvalidCombination
	// KindMissingMethod: an operator feature names a method the type lacks.
	KindMissingMethod
)

// String returns the diagnostic code of the kind.
func (k Kind) String() string {
	switch k {
	case KindDuplicateOption:
		return "duplicate-option"
	case KindMalformedLiteral:
		return "malformed-literal"
	case KindUnsupportedShape:
		return "unsupported-shape"
	case KindInvalidCombination:
		return "invalid-combination"
	case KindMissingMethod:
		return "missing-method"
	default:
		return "unknown"
	}
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Kind classifies the violation.
	Kind Kind
	// Pos is the source position of the offending annotation.
	Pos token.Position
	// Message is the human-readable description.
	Message string
	// Type is the declared name of the type this relates to (if any).
	Type string
	// Field is the declared name of the field this relates to (if any).
	Field string
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Pos.IsValid() {
		sb.WriteString(d.Pos.String())
		sb.WriteString(": ")
	}

	fmt.Fprintf(&sb, "[%s] ", d.Kind)

	switch {
	case d.Type != "" && d.Field != "":
		sb.WriteString(d.Type + "." + d.Field + ": ")
	case d.Type != "":
		sb.WriteString(d.Type + ": ")
	}

	sb.WriteString(d.Message)

	return sb.String()
}

// Diagnostics holds all diagnostics of one generation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Add records d under its severity unless an identical diagnostic was
// already recorded.
func (d *Diagnostics) Add(diag Diagnostic) {
	list := d.list(diag.Severity)
	if slices.Contains(*list, diag) {
		return
	}

	*list = append(*list, diag)
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(kind Kind, pos token.Position, typeName, field, message string) {
	d.Add(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Pos:      pos,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(kind Kind, pos token.Position, typeName, field, message string) {
	d.Add(Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Pos:      pos,
		Message:  message,
		Type:     typeName,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(pos token.Position, typeName, message string) {
	d.Add(Diagnostic{
		Severity: SeverityInfo,
		Pos:      pos,
		Message:  message,
		Type:     typeName,
	})
}

func (d *Diagnostics) list(s Severity) *[]Diagnostic {
	switch s {
	case SeverityError:
		return &d.Errors
	case SeverityWarning:
		return &d.Warnings
	default:
		return &d.Infos
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	for _, list := range [][]Diagnostic{other.Errors, other.Warnings, other.Infos} {
		for _, diag := range list {
			d.Add(diag)
		}
	}
}

// Sort orders every severity list by position, then message.
func (d *Diagnostics) Sort() {
	for _, list := range []*[]Diagnostic{&d.Errors, &d.Warnings, &d.Infos} {
		slices.SortStableFunc(*list, compare)
	}
}

func compare(a, b Diagnostic) int {
	if c := strings.Compare(a.Pos.Filename, b.Pos.Filename); c != 0 {
		return c
	}

	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line - b.Pos.Line
	}

	if a.Pos.Column != b.Pos.Column {
		return a.Pos.Column - b.Pos.Column
	}

	return strings.Compare(a.Message, b.Message)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, errors.New(e.String()))
	}

	return errors.Join(errs...)
}
