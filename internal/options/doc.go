// Package options tokenizes derive annotations.
//
// Annotations come from two places: "//derive:" comment directives on type
// and field declarations, and the `derive:"..."` struct tag. Both carry a
// comma-separated option list of bare keys and key=value pairs. This package
// only splits; interpreting keys and values is left to the resolver.
package options
