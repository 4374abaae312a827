package object_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/object"
)

func TestSignature_Bind(t *testing.T) {
	sig := object.NewSignature("Point",
		object.Param{Name: "a"},
		object.Param{Name: "b", Optional: true},
		object.Param{Name: "c", KwOnly: true},
	)

	tests := []struct {
		name    string
		args    object.Args
		want    []any
		wantErr string
	}{
		{
			name: "positional and keyword",
			args: object.Call(1, 2).With("c", 3),
			want: []any{1, 2, 3},
		},
		{
			name: "optional omitted",
			args: object.Call(1).With("c", 3),
			want: []any{1, object.Missing, 3},
		},
		{
			name: "all keywords",
			args: object.Args{Keyword: map[string]any{"a": 1, "b": 2, "c": 3}},
			want: []any{1, 2, 3},
		},
		{
			name:    "keyword-only given positionally",
			args:    object.Call(1, 2, 3),
			wantErr: "Point(): takes 2 positional arguments but 3 were given",
		},
		{
			name:    "missing keyword-only",
			args:    object.Call(1, 2),
			wantErr: "Point(): missing required keyword-only argument: 'c'",
		},
		{
			name:    "missing positional",
			args:    object.Args{Keyword: map[string]any{"c": 3}},
			wantErr: "Point(): missing required positional argument: 'a'",
		},
		{
			name:    "unexpected keyword",
			args:    object.Call(1).With("c", 3).With("d", 4),
			wantErr: "Point(): got an unexpected keyword argument 'd'",
		},
		{
			name:    "duplicate value",
			args:    object.Call(1).With("a", 1).With("c", 3),
			wantErr: "Point(): got multiple values for argument 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sig.Bind(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				assert.ErrorIs(t, err, object.ErrConstruction)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignature_String(t *testing.T) {
	sig := object.NewSignature("Point",
		object.Param{Name: "a"},
		object.Param{Name: "b", Optional: true},
		object.Param{Name: "c", KwOnly: true},
	)

	assert.Equal(t, "Point(a, b=..., *, c)", sig.String())
	assert.Equal(t, 2, sig.NumPositional())
}

func TestNewSignature_PositionalAfterKwOnly(t *testing.T) {
	assert.Panics(t, func() {
		object.NewSignature("Bad", object.Param{Name: "a", KwOnly: true}, object.Param{Name: "b"})
	})
}

func TestSignature_ArgError(t *testing.T) {
	sig := object.NewSignature("Point", object.Param{Name: "a"})

	_, cause := object.Extract[int]("x")
	err := sig.ArgError("a", cause)

	assert.ErrorIs(t, err, object.ErrConstruction)
	assert.ErrorIs(t, err, object.ErrTypeMismatch)

	var extractErr *object.ExtractError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "int", extractErr.Want)
	assert.Equal(t, "string", extractErr.Got)
}

func TestArgs_WithDoesNotMutate(t *testing.T) {
	base := object.Call(1).With("a", 1)
	_ = base.With("b", 2)

	assert.Len(t, base.Keyword, 1)
}
