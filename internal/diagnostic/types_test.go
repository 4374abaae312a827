package diagnostic

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddDeduplicates(t *testing.T) {
	var d Diagnostics

	pos := token.Position{Filename: "a.go", Line: 3, Column: 2}
	d.AddError(KindDuplicateOption, pos, "Point", "X", "duplicate option 'kw_only'")
	d.AddError(KindDuplicateOption, pos, "Point", "X", "duplicate option 'kw_only'")
	d.AddWarning(KindMalformedLiteral, pos, "Point", "", "unknown rename rule")

	assert.Len(t, d.Errors, 1)
	assert.Len(t, d.Warnings, 1)
	assert.True(t, d.HasErrors())
}

func TestDiagnostic_String(t *testing.T) {
	diag := Diagnostic{
		Severity: SeverityError,
		Kind:     KindInvalidCombination,
		Pos:      token.Position{Filename: "point.go", Line: 10, Column: 2},
		Message:  "default_factory requires default",
		Type:     "Point",
		Field:    "Tags",
	}

	assert.Equal(t, "point.go:10:2: [invalid-combination] Point.Tags: default_factory requires default", diag.String())

	diag.Pos = token.Position{}
	diag.Field = ""
	assert.Equal(t, "[invalid-combination] Point: default_factory requires default", diag.String())
}

func TestDiagnostics_SortAndError(t *testing.T) {
	var d Diagnostics

	d.AddError(KindMissingMethod, token.Position{Filename: "b.go", Line: 1, Column: 1}, "B", "", "second")
	d.AddError(KindUnsupportedShape, token.Position{Filename: "a.go", Line: 9, Column: 1}, "A", "", "first")
	d.Sort()

	require.Len(t, d.Errors, 2)
	assert.Equal(t, "first", d.Errors[0].Message)

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unsupported-shape] A: first")
	assert.Contains(t, err.Error(), "[missing-method] B: second")
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddInfo(token.Position{}, "A", "generated")
	b.AddInfo(token.Position{}, "A", "generated")
	b.AddError(KindMalformedLiteral, token.Position{}, "A", "", "bad")
	a.Merge(b)

	assert.Len(t, a.Infos, 1)
	assert.Len(t, a.Errors, 1)
	assert.NoError(t, (&Diagnostics{}).Error())
}
