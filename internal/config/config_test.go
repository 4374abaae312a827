package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"derive-generator/internal/gen"
)

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, []string{"./..."}, f.Packages)
	assert.Equal(t, "derive_gen.go", f.Output)
	assert.Equal(t, "derivegen", f.BuildTag)
	assert.Zero(t, f.Workers)
}

func TestParse(t *testing.T) {
	data := []byte(`
version: "1"
packages:
  - ./models
  - ./api/...
output: zz_derive.go
workers: 2
features: [repr, eq]
header: Copyright Example
`)

	f, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"./models", "./api/..."}, f.Packages)
	assert.Equal(t, "zz_derive.go", f.Output)
	assert.Equal(t, 2, f.Workers)
	assert.Equal(t, []string{"repr", "eq"}, f.Features)
	assert.Equal(t, "Copyright Example", f.Header)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		option string
	}{
		{name: "version", yaml: "version: \"2\"", option: "version"},
		{name: "output with directory", yaml: "output: gen/out.go", option: "output"},
		{name: "output not go", yaml: "output: out.txt", option: "output"},
		{name: "output test file", yaml: "output: out_test.go", option: "output"},
		{name: "negative workers", yaml: "workers: -1", option: "workers"},
		{name: "unknown feature", yaml: "features: [repr, bogus]", option: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.option, cerr.Option)
		})
	}
}

func TestParse_UnknownFeatureHint(t *testing.T) {
	_, err := Parse([]byte("features: [reprr]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown feature (did you mean "repr"?)`)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("outptu: x.go"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outptu")
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Option: "workers", Value: -1, Message: "must not be negative"}
	assert.Equal(t, `config error for "workers" (value: -1): must not be negative`, err.Error())

	err = &ConfigError{Option: "packages", Message: "empty"}
	assert.Equal(t, `config error for "packages": empty`, err.Error())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: custom_gen.go\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom_gen.go", f.Output)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	orig := Default()
	orig.Features = []string{"numeric"}
	orig.Workers = 3

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, WriteFile(orig, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, orig, loaded)
}

func TestFile_Apply(t *testing.T) {
	f := Default()
	f.Output = "zz_gen.go"
	f.Features = []string{"hash"}
	f.Header = "hdr"

	cfg := gen.DefaultGeneratorConfig()
	cfg.Workers = 8
	f.Apply(&cfg)

	assert.Equal(t, "zz_gen.go", cfg.Filename)
	assert.Equal(t, []string{"hash"}, cfg.Features)
	assert.Equal(t, "hdr", cfg.Header)
	assert.Equal(t, 8, cfg.Workers, "zero workers keeps the current value")

	f.Workers = 2
	f.Apply(&cfg)
	assert.Equal(t, 2, cfg.Workers)
}
