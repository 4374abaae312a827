// Package config loads the optional derive.yaml project file.
//
// The file names the packages to generate, the output filename, the worker
// count, the build tag excluded by generated files, features applied to
// every annotated type and an extra header comment. Command-line flags
// override file values.
package config
