// Package resolve merges layered derive annotations into the immutable
// configuration consumed by the generators.
//
// Resolution runs in three steps per type:
//   - ResolveType merges the "//derive:class" options into a TypeConfig.
//   - ResolveFields folds over the fields in declaration order, merging
//     field options over the type defaults and carrying the sticky
//     keyword-only flag.
//   - Each resolved Field precomputes its eligibility for every Capability.
//
// Problems found on the way are recorded against the option key that
// caused them, so that a generator fails only when it consumes a broken
// option.
package resolve
