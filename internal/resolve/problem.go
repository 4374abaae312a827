package resolve

import (
	"go/token"

	"derive-generator/internal/diagnostic"
)

// Problem is a diagnostic attached to the option key that caused it.
type Problem struct {
	// Key is the option key, prefixed with ClassPrefix or FeaturePrefix for
	// type-level keys, or KeyAll.
	Key        string
	Diagnostic diagnostic.Diagnostic
}

type problems struct {
	typeName string
	list     []Problem
}

func (p *problems) add(key string, kind diagnostic.Kind, pos token.Position, field, msg string) {
	p.list = append(p.list, Problem{
		Key: key,
		Diagnostic: diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Kind:     kind,
			Pos:      pos,
			Message:  msg,
			Type:     p.typeName,
			Field:    field,
		},
	})
}

func (p *problems) warn(key string, kind diagnostic.Kind, pos token.Position, field, msg string) {
	p.add(key, kind, pos, field, msg)
	p.list[len(p.list)-1].Diagnostic.Severity = diagnostic.SeverityWarning
}
