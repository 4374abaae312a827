package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"derive-generator/internal/gen"
	"derive-generator/internal/match"
)

// DefaultFile is the file looked up when no path is given.
const DefaultFile = "derive.yaml"

// ErrInvalidConfig marks configuration errors.
var ErrInvalidConfig = errors.New("derive: invalid configuration")

// ConfigError reports an invalid configuration option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}

	return fmt.Sprintf("config error for %q: %s", e.Option, e.Message)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// File is the content of derive.yaml.
type File struct {
	Version string `yaml:"version"`
	// Packages are package patterns, as accepted by go list.
	Packages []string `yaml:"packages"`
	// Output is the generated filename in each package directory.
	Output   string   `yaml:"output"`
	Workers  int      `yaml:"workers,omitempty"`
	BuildTag string   `yaml:"build_tag,omitempty"`
	Features []string `yaml:"features,omitempty"`
	Header   string   `yaml:"header,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Load loads path, or DefaultFile when path is empty. A missing default
// file yields the default configuration.
func Load(path string) (*File, error) {
	if path != "" {
		return LoadFile(path)
	}

	f, err := LoadFile(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return f, err
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	def := gen.DefaultGeneratorConfig()

	if f.Version == "" {
		f.Version = "1"
	}

	if len(f.Packages) == 0 {
		f.Packages = []string{"./..."}
	}

	if f.Output == "" {
		f.Output = def.Filename
	}

	if f.BuildTag == "" {
		f.BuildTag = def.BuildTag
	}
}

// Validate checks option values.
func (f *File) Validate() error {
	var errs []error

	if f.Version != "1" {
		errs = append(errs, &ConfigError{Option: "version", Value: f.Version, Message: "unsupported version"})
	}

	if filepath.Base(f.Output) != f.Output || !strings.HasSuffix(f.Output, ".go") ||
		strings.HasSuffix(f.Output, "_test.go") {
		errs = append(errs, &ConfigError{Option: "output", Value: f.Output, Message: "must be a plain .go filename"})
	}

	if f.Workers < 0 {
		errs = append(errs, &ConfigError{Option: "workers", Value: f.Workers, Message: "must not be negative"})
	}

	for _, name := range f.Features {
		if !gen.Known(name) {
			errs = append(errs, &ConfigError{Option: "features", Value: name, Message: "unknown feature" + match.Hint(name, gen.Names())})
		}
	}

	return errors.Join(errs...)
}

// Apply copies file values into cfg.
func (f *File) Apply(cfg *gen.GeneratorConfig) {
	cfg.Filename = f.Output
	cfg.BuildTag = f.BuildTag
	cfg.Header = f.Header
	cfg.Features = append(cfg.Features, f.Features...)

	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
