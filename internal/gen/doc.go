// Package gen provides deterministic Go code generation for annotated
// record types.
//
// Generation uses jennifer to build each declaration and
// golang.org/x/tools/imports to format the file and import packages named
// by user default expressions.
//
// Every feature is generated independently:
//   - new, repr, str: construction and representation
//   - iter, reversed, len: the sequence view
//   - eq, ord, richcmp, hash: equality, ordering and hashing
//   - match_args, fields, annotations: host metadata
//   - asdict, fieldnames, fielddefaults, make, replace: record helpers
//   - operator and conversion features, driven by a single table
//
// A feature is skipped when a problem is attached to one of the option keys
// it consumes; other features of the same type are still generated.
package gen
